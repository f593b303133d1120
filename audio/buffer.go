// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadAll tolerates.
const maxEmptyReads = 64

// Buffer is fully decoded audio held in memory, one slice per channel.
// Samples are float32 normalized to [-1.0, 1.0]. All channels have the same length.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NewBuffer builds a Buffer and checks it with Validate.
func NewBuffer(sampleRate int, channels ...[]float32) (*Buffer, error) {
	b := &Buffer{SampleRate: sampleRate, Channels: channels}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Buffer) ChannelCount() int { return len(b.Channels) }

// FrameCount is the number of samples in each channel.
func (b *Buffer) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}

	return len(b.Channels[0])
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}

	return float64(b.FrameCount()) / float64(b.SampleRate)
}

func (b *Buffer) Validate() error {
	if b == nil {
		return ErrNilBuffer
	}
	if b.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if len(b.Channels) == 0 {
		return ErrNoChannels
	}

	frames := len(b.Channels[0])
	for i, ch := range b.Channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("channel %d has %d frames, channel 0 has %d: %w", i+1, len(ch), frames, ErrChannelLength)
		}
	}

	return nil
}

// ReadAll drains src into a Buffer, splitting the interleaved stream into
// per-channel slices. src is closed before returning. A trailing partial
// frame is dropped.
func ReadAll(src Source) (buf *Buffer, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			buf, err = nil, fmt.Errorf("close source: %w", cerr)
		}
	}()

	rate := src.SampleRate()
	channels := src.Channels()
	if rate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	if size == 0 {
		size = channels
	}

	tmp := make([]float32, size)
	out := make([][]float32, channels)
	var pending []float32
	empty := 0

	for {
		n, rerr := src.ReadSamples(tmp)
		if n > 0 {
			empty = 0
			pending = append(pending, tmp[:n]...)

			frames := len(pending) / channels
			for c := range channels {
				for f := range frames {
					out[c] = append(out[c], pending[f*channels+c])
				}
			}
			pending = pending[:copy(pending, pending[frames*channels:])]
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("read samples: %w", rerr)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	for c := range out {
		if out[c] == nil {
			out[c] = []float32{}
		}
	}

	return &Buffer{SampleRate: rate, Channels: out}, nil
}
