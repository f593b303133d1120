// SPDX-License-Identifier: EPL-2.0

package audcut

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/ik5/audcut/audio"
)

// Format keys used in the decoder registry.
const (
	FormatWAV  = "wav"
	FormatMP3  = "mp3"
	FormatOgg  = "ogg"
	FormatAIFF = "aiff"
	FormatFLAC = "flac"
)

var mimeFormats = map[string]string{
	"audio/wav":      FormatWAV,
	"audio/x-wav":    FormatWAV,
	"audio/wave":     FormatWAV,
	"audio/vnd.wave": FormatWAV,

	"audio/mpeg":     FormatMP3,
	"audio/mp3":      FormatMP3,
	"audio/mpeg3":    FormatMP3,
	"audio/x-mpeg-3": FormatMP3,

	"audio/ogg":          FormatOgg,
	"audio/vorbis":       FormatOgg,
	"application/ogg":    FormatOgg,
	"audio/x-vorbis+ogg": FormatOgg,

	"audio/aiff":   FormatAIFF,
	"audio/x-aiff": FormatAIFF,

	"audio/flac":   FormatFLAC,
	"audio/x-flac": FormatFLAC,
}

// FormatForMIME maps a declared MIME type to a format key. Parameters and
// case are ignored. Generic types such as "audio/*" or
// "application/octet-stream" report false.
func FormatForMIME(mimeType string) (string, bool) {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mt, _, _ = strings.Cut(mimeType, ";")
		mt = strings.ToLower(strings.TrimSpace(mt))
	}

	f, ok := mimeFormats[mt]
	return f, ok
}

// Sniff identifies the container from its leading magic bytes.
func Sniff(data []byte) (string, bool) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV, true
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return FormatAIFF, true
	case bytes.HasPrefix(data, []byte("OggS")):
		return FormatOgg, true
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC, true
	case bytes.HasPrefix(data, []byte("ID3")):
		return FormatMP3, true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return FormatMP3, true
	}

	return "", false
}

// DetectFormat picks the decoder for data. A declared type that contradicts
// the content is an error; an unknown or generic declaration defers to the
// content.
func DetectFormat(data []byte, mimeType string) (string, error) {
	declared, declaredOK := FormatForMIME(mimeType)
	sniffed, sniffedOK := Sniff(data)

	switch {
	case declaredOK && sniffedOK && declared != sniffed:
		return "", fmt.Errorf("declared %s, content is %s: %w", declared, sniffed, audio.ErrFormatMismatch)
	case sniffedOK:
		return sniffed, nil
	case declaredOK:
		return declared, nil
	}

	return "", audio.ErrUnknownFormat
}
