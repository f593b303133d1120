// SPDX-License-Identifier: EPL-2.0

package audio

const (
	// WAVMIMEType is the MIME type of every blob produced by the encoder.
	WAVMIMEType = "audio/wav"

	// DefaultFileName is the suggested name when offering a blob for download.
	DefaultFileName = "trimmed-audio.wav"
)

// EncodedBlob is a complete, self-describing container. The producer keeps no
// reference to Bytes after returning it.
type EncodedBlob struct {
	Bytes    []byte
	MIMEType string
}

func (b EncodedBlob) Len() int { return len(b.Bytes) }
