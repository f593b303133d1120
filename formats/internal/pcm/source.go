// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM readers of go-audio/wav and
// go-audio/aiff to audio.Source.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audcut/utils"
)

const defaultBufSize = 4096

// Reader is the read side shared by wav.Decoder and aiff.Decoder.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source normalizes integer samples of a fixed bit depth to [-1, 1).
type Source struct {
	r        Reader
	format   goaudio.Format
	bitDepth int
	name     string
	intBuf   *goaudio.IntBuffer
}

// NewSource reads from r. name prefixes read errors ("read <name> pcm").
func NewSource(r Reader, sampleRate, channels, bitDepth int, name string) *Source {
	return &Source{
		r:        r,
		format:   goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		bitDepth: bitDepth,
		name:     name,
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

// BufSize is the capacity of the last read, or a default before any read.
func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return defaultBufSize
}

// ReadSamples fills dst with normalized samples. Both go-audio readers
// signal the end of the sound data with either (0, nil) or io.EOF, so a
// zero count always ends the stream.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst)), Format: &s.format}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.r.PCMBuffer(s.intBuf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read %s pcm: %w", s.name, err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	return n, err
}
