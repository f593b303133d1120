// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core audio types and the trim engine.
//
// This package contains the building blocks shared by every format:
//   - Source and Decoder interfaces for streaming decode
//   - Registry for decoder lookup by format key
//   - Buffer, the fully decoded in-memory audio
//   - Window and Trim for cutting a time range out of a Buffer
//   - EncodedBlob, the output container handed back to the caller
//
// # Source Interface
//
// Decoders stream interleaved float32 samples through Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadAll drains a Source into a Buffer:
//
//	src, _ := decoder.Decode(reader)
//	buf, err := audio.ReadAll(src)
//
// # Trimming
//
// Trim copies the selected range of channel 0 into a new mono Buffer:
//
//	out, err := audio.Trim(buf, audio.Window{Start: 1.5, End: 4})
//
// Window bounds are seconds. They are converted to frames with floor and then
// clamped to the buffer, so a window running past the end is shortened rather
// than rejected, and a window with Start == End gives an empty Buffer.
// Only NaN or infinite bounds and End < Start are errors.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Failures are returned as one of three typed errors, each wrapping a
// sentinel that can be matched with errors.Is:
//   - *DecodeError: the input bytes are not usable audio
//   - *WindowError: the trim window cannot be applied
//   - *EncodeError: the buffer cannot be serialized
//
// Example:
//
//	var werr *audio.WindowError
//	if errors.As(err, &werr) && errors.Is(err, audio.ErrInvertedWindow) {
//	    // end before start
//	}
package audio
