// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis already decodes
// to float32, so samples pass through without conversion.
//
// # Decoding Vorbis Files
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // errors.Is(err, vorbis.ErrNotOggVorbis)
//	}
//
//	buf, err := audio.ReadAll(source)
//
// ReadSamples only ever fills whole frames. A destination shorter than one
// frame reads nothing.
//
// # Output Format
//
//   - Sample format: float32, nominally in [-1.0, 1.0]
//   - Channels: as encoded, interleaved in Vorbis channel order
//   - Sample rate: as encoded
package vorbis
