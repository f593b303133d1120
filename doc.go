// SPDX-License-Identifier: EPL-2.0

// Package audcut cuts a time window out of an audio file and exports it as
// a 16-bit PCM WAV.
//
// The flow is one way: raw bytes are decoded into an audio.Buffer, the
// buffer is trimmed to a window of its first channel, and the result is
// serialized with the canonical 44-byte WAV header.
//
// # Quick Start
//
//	data, _ := os.ReadFile("song.mp3")
//
//	res, err := audcut.Cut(audcut.CutRequest{
//	    Data:     data,
//	    MIMEType: "audio/mpeg",
//	    Window:   audio.Window{Start: 12.5, End: 20},
//	})
//	if err != nil {
//	    // *audio.DecodeError, *audio.WindowError or *audio.EncodeError
//	}
//
//	os.WriteFile(audio.DefaultFileName, res.Blob.Bytes, 0o644)
//
// # Format Detection
//
// The declared MIME type is a hint. Content is identified by its magic
// bytes, and a declaration that contradicts the content fails with
// audio.ErrFormatMismatch. Generic types such as application/octet-stream
// defer to the content. Supported inputs:
//   - WAV (integer PCM 16/24/32) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//
// # Pipelines
//
// Decoders live in an explicit audio.Registry. DefaultRegistry builds a new
// one on every call; NewPipeline accepts a custom registry:
//
//	reg := audcut.DefaultRegistry()
//	reg.Register("wav", myWavDecoder{})
//	p := audcut.NewPipeline(reg)
//	buf, err := p.Decode(data, "audio/wav")
//
// The package level Decode, Trim, Encode and Cut use the default decoders.
//
// # Windows
//
// Window bounds are seconds. They are floored to frames and clamped to the
// buffer, so a window running past the end is shortened rather than
// rejected. An empty selection encodes to a header-only WAV unless
// CutRequest.RequireNonEmpty is set. CutRequest.WholeFile selects every frame.
//
// See the audio and formats/wav packages for the lower level pieces.
package audcut
