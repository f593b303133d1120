// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audcut/audio"
	"github.com/jfreymuth/oggvorbis"
)

var ErrNotOggVorbis = errors.New("not an Ogg Vorbis stream")

// oggReader is the part of oggvorbis.Reader the source reads from
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	lastRead   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

func (s *source) BufSize() int {
	if s.lastRead > 0 {
		return s.lastRead
	}
	return 4096 - 4096%s.channels
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	// oggvorbis wants room for whole frames and reports values, not frames
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}
	s.lastRead = want

	n, err := s.dec.Read(dst[:want])
	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("read vorbis packet: %w", err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbis, err)
	}

	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotOggVorbis, dec.Channels())
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
