// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/audcut/audio"
	"github.com/ik5/audcut/utils"
)

const (
	headerSize     = 44
	bitsPerSample  = 16
	bytesPerSample = bitsPerSample / 8

	// samples per Write call
	chunkSize = 8192
)

// containerSize checks that a PCM16 stream of the given shape fits the RIFF
// size fields and returns the data chunk size in bytes.
func containerSize(sampleRate, channels, frames int) (uint32, error) {
	switch {
	case channels <= 0:
		return 0, &audio.EncodeError{Err: audio.ErrNoChannels}
	case sampleRate <= 0:
		return 0, &audio.EncodeError{Err: audio.ErrInvalidSampleRate}
	case frames < 0:
		return 0, &audio.EncodeError{Err: audio.ErrSizeOverflow}
	case channels > math.MaxUint16/bytesPerSample:
		return 0, &audio.EncodeError{Err: fmt.Errorf("%d channels: %w", channels, audio.ErrSizeOverflow)}
	}

	blockAlign := uint64(channels) * bytesPerSample
	if uint64(sampleRate)*blockAlign > math.MaxUint32 {
		return 0, &audio.EncodeError{Err: fmt.Errorf("byte rate at %d Hz: %w", sampleRate, audio.ErrSizeOverflow)}
	}

	// RIFF size is 36 + dataSize and must fit uint32
	if uint64(frames) > (math.MaxUint32-(headerSize-8))/blockAlign {
		return 0, &audio.EncodeError{Err: fmt.Errorf("%d frames: %w", frames, audio.ErrSizeOverflow)}
	}

	return uint32(uint64(frames) * blockAlign), nil
}

// blobSize returns the in-memory length of a WAV with dataSize bytes of
// samples, or ErrSizeOverflow when it exceeds maxLen.
func blobSize(dataSize uint32, maxLen int) (int, error) {
	if uint64(dataSize) > uint64(maxLen-headerSize) {
		return 0, &audio.EncodeError{Err: fmt.Errorf("%d data bytes in memory: %w", dataSize, audio.ErrSizeOverflow)}
	}

	return headerSize + int(dataSize), nil
}

// header returns the 44-byte canonical RIFF/WAVE header for 16-bit PCM.
func header(sampleRate, channels int, dataSize uint32) []byte {
	numChannels := uint16(channels)
	byteRate := uint32(sampleRate) * uint32(numChannels) * bytesPerSample
	blockAlign := numChannels * bytesPerSample
	riffSize := 36 + dataSize

	h := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], riffSize)
	copy(h[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(h[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(h[22:24], numChannels)
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	binary.LittleEndian.PutUint16(h[32:34], blockAlign)
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.  samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	dataSize, err := containerSize(sampleRate, 1, len(samples))
	if err != nil {
		return err
	}

	if _, err := w.Write(header(sampleRate, 1, dataSize)); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*bytesPerSample)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		b := buf[:len(chunk)*bytesPerSample]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(b[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}

// Write streams buf as a 16-bit PCM WAV, interleaving channels frame by frame.
// Samples are converted with utils.Float32ToInt16.
func Write(w io.Writer, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return &audio.EncodeError{Err: err}
	}

	channels := buf.ChannelCount()
	frames := buf.FrameCount()

	dataSize, err := containerSize(buf.SampleRate, channels, frames)
	if err != nil {
		return err
	}

	if _, err := w.Write(header(buf.SampleRate, channels, dataSize)); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	if frames == 0 {
		return nil
	}

	framesPerChunk := max(chunkSize/channels, 1)
	tmp := make([]byte, min(frames, framesPerChunk)*channels*bytesPerSample)

	for start := 0; start < frames; start += framesPerChunk {
		end := min(start+framesPerChunk, frames)
		b := tmp[:(end-start)*channels*bytesPerSample]

		i := 0
		for f := start; f < end; f++ {
			for c := range channels {
				binary.LittleEndian.PutUint16(b[i:i+2], uint16(utils.Float32ToInt16(buf.Channels[c][f])))
				i += 2
			}
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}

// Encode returns buf as a complete in-memory WAV blob. The output is exactly
// 44 + frames*channels*2 bytes, with no extension chunks.
func Encode(buf *audio.Buffer) (audio.EncodedBlob, error) {
	if err := buf.Validate(); err != nil {
		return audio.EncodedBlob{}, &audio.EncodeError{Err: err}
	}

	dataSize, err := containerSize(buf.SampleRate, buf.ChannelCount(), buf.FrameCount())
	if err != nil {
		return audio.EncodedBlob{}, err
	}

	size, err := blobSize(dataSize, math.MaxInt)
	if err != nil {
		return audio.EncodedBlob{}, err
	}

	out := bytes.NewBuffer(make([]byte, 0, size))
	if err := Write(out, buf); err != nil {
		return audio.EncodedBlob{}, err
	}

	return audio.EncodedBlob{Bytes: out.Bytes(), MIMEType: audio.WAVMIMEType}, nil
}
