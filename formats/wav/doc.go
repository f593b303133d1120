// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is built on github.com/go-audio/wav. Encoding writes the
// canonical 44-byte RIFF/WAVE header directly, so output never carries
// extension chunks.
//
// # Supported Formats
//
// Decoding:
//   - Integer PCM: 16, 24 and 32 bit
//   - WAVE_FORMAT_EXTENSIBLE wrapping integer PCM
//   - Any channel count and sample rate
//   - Unknown chunks before the data chunk are skipped
//
// Encoding:
//   - 16-bit little-endian PCM only
//
// # Decoding WAV Files
//
//	decoder := wav.Decoder{}
//	file, _ := os.Open("audio.wav")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf, err := audio.ReadAll(source)
//
// The decoder returns an audio.Source that provides interleaved float32
// samples in the range [-1.0, 1.0]. Readers that are not io.Seeker are
// buffered in memory first.
//
// # Writing WAV Files
//
// Encode turns an audio.Buffer into a complete in-memory blob:
//
//	blob, err := wav.Encode(buf)
//	os.WriteFile("out.wav", blob.Bytes, 0o644)
//
// Write streams the same bytes to any io.Writer. WriteWAV16 writes mono
// samples that are already int16.
//
// Float samples are scaled by 32767, rounded to nearest and clamped to
// [-32768, 32767]. NaN is written as silence.
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrOnlyPCMSupported: float, A-law and other compressed formats
//   - ErrUnsupportedBitDepth: PCM at a depth other than 16, 24 or 32
//   - ErrUnsupportedWavLayout: no usable data chunk
//
// Encoding failures are *audio.EncodeError values wrapping
// audio.ErrSizeOverflow or a buffer validation error.
package wav
