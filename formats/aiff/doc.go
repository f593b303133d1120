// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff. AIFF stores samples
// big-endian; the decoder hands them out as normalized float32 like every
// other format.
//
// # Supported Formats
//
//   - AIFF and uncompressed AIFF-C
//   - 8, 16, 24 and 32 bit signed PCM
//   - Any channel count and sample rate
//
// # Decoding AIFF Files
//
//	decoder := aiff.Decoder{}
//	file, _ := os.Open("audio.aif")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf, err := audio.ReadAll(source)
//
// Readers that are not io.Seeker are buffered in memory first, since
// go-audio needs to seek between chunks.
//
// # Errors
//
//   - ErrNotAiffFile: missing FORM/AIFF header
//   - ErrUnsupportedBitDepth: sample size outside 8/16/24/32
//   - ErrUnsupportedAiffLayout: COMM chunk missing or unreadable
package aiff
