// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource streams a Buffer as interleaved samples. It is the inverse of
// ReadAll and lets an already decoded Buffer feed anything that takes a Source.
type BufferSource struct {
	buf   *Buffer
	frame int
}

// NewBufferSource returns a Source over buf. buf is not copied and must not be
// modified while the source is being read.
func NewBufferSource(buf *Buffer) (*BufferSource, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	return &BufferSource{buf: buf}, nil
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return s.buf.ChannelCount() }
func (s *BufferSource) BufSize() int    { return 4096 - 4096%s.buf.ChannelCount() }
func (s *BufferSource) Close() error    { return nil }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.ChannelCount()
	remaining := s.buf.FrameCount() - s.frame
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.buf.Channels[c][s.frame+f]
		}
	}
	s.frame += frames

	return frames * channels, nil
}
