// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audcut/audio"
	"github.com/ik5/audcut/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// frameReader is the part of flac.Stream the source reads from
type frameReader interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameReader
	sampleRate int
	channels   int
	bitDepth   int

	// interleaved samples of the current frame not yet handed out
	pending []float32
	off     int
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return s.stream.Close() }

func (s *source) BufSize() int {
	if len(s.pending) > 0 {
		return len(s.pending)
	}
	return 4096 - 4096%s.channels
}

// fill decodes the next frame into pending.
func (s *source) fill() error {
	f, err := s.stream.ParseNext()
	if err != nil {
		return err
	}

	if len(f.Subframes) != s.channels {
		return fmt.Errorf("%d subframes for %d channels: %w", len(f.Subframes), s.channels, ErrChannelMismatch)
	}

	blockSize := len(f.Subframes[0].Samples)
	for _, sub := range f.Subframes[1:] {
		if len(sub.Samples) != blockSize {
			return fmt.Errorf("subframe lengths differ: %w", ErrChannelMismatch)
		}
	}

	need := blockSize * s.channels
	if cap(s.pending) < need {
		s.pending = make([]float32, need)
	}
	s.pending = s.pending[:need]
	s.off = 0

	// subframes hold one channel each, interleave them frame by frame
	for c, sub := range f.Subframes {
		for i, v := range sub.Samples {
			s.pending[i*s.channels+c] = utils.IntToFloat32(int(v), s.bitDepth)
		}
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(dst) {
		if s.off >= len(s.pending) {
			if s.eof {
				break
			}

			if err := s.fill(); err != nil {
				if errors.Is(err, io.EOF) {
					s.eof = true
					s.pending = s.pending[:0]
					s.off = 0
					break
				}
				return n, fmt.Errorf("parse flac frame: %w", err)
			}
		}

		c := copy(dst[n:], s.pending[s.off:])
		n += c
		s.off += c
	}

	if n == 0 && s.eof {
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	src, err := newSource(stream, stream.Info)
	if err != nil {
		return nil, err
	}

	return src, nil
}

// newSource checks info and wraps stream. stream is closed when info is
// rejected.
func newSource(stream frameReader, info *meta.StreamInfo) (*source, error) {
	var err error
	switch {
	case info == nil || info.NChannels == 0 || info.SampleRate == 0:
		err = ErrNotFlacFile
	case info.BitsPerSample < 4 || info.BitsPerSample > 32:
		err = fmt.Errorf("%d-bit: %w", info.BitsPerSample, ErrUnsupportedBitDepth)
	}
	if err != nil {
		return nil, errors.Join(err, stream.Close())
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
