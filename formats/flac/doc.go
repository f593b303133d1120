// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC (Free Lossless Audio Codec) decoding.
//
// This package uses github.com/mewkiz/flac. Each FLAC frame carries one
// subframe per channel; the decoder interleaves them so the result looks
// like any other audio.Source.
//
// # Decoding FLAC Files
//
//	decoder := flac.Decoder{}
//	file, _ := os.Open("audio.flac")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // errors.Is(err, flac.ErrNotFlacFile)
//	}
//	defer source.Close()
//
//	buf, err := audio.ReadAll(source)
//
// Samples are normalized by 2^(bits-1) using the bit depth from STREAMINFO,
// so 16 and 24 bit files both land in [-1.0, 1.0).
//
// Close releases the underlying stream. audio.ReadAll closes it for you.
package flac
