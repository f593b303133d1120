// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MPEG-1/2
// Layer III streams. A leading ID3v2 tag is skipped by the library.
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // errors.Is(err, mp3.ErrNotMP3File)
//	}
//
//	buf, err := audio.ReadAll(source)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: always 2, mono files are duplicated by go-mp3
//   - Sample rate: whatever the stream declares
//
// Decoding only. Use the wav package to write the result.
package mp3
