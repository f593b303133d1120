// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds helpers shared by tests: generated sources and
// hand-built container bytes.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the sample for a frame index and channel.
type Waveform func(frame, channel int) float32

// GeneratedSource is an audio.Source whose samples come from a Waveform.
// It satisfies the interface structurally so audio can import this package
// from its tests.
type GeneratedSource struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	wave       Waveform
}

// NewGeneratedSource returns a source of frames frames produced by wave.
func NewGeneratedSource(sampleRate, channels, frames int, wave Waveform) *GeneratedSource {
	return &GeneratedSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		wave:       wave,
	}
}

// NewSilentSource yields zeros.
func NewSilentSource(sampleRate, channels, frames int) *GeneratedSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

// NewConstantSource yields value on every channel.
func NewConstantSource(sampleRate, channels, frames int, value float32) *GeneratedSource {
	return NewGeneratedSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource yields the same sine at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *GeneratedSource {
	return NewGeneratedSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (g *GeneratedSource) SampleRate() int { return g.sampleRate }
func (g *GeneratedSource) Channels() int   { return g.channels }
func (g *GeneratedSource) BufSize() int    { return 4096 }
func (g *GeneratedSource) Close() error    { return nil }

// ReadSamples writes whole frames only and returns io.EOF together with the
// last frames.
func (g *GeneratedSource) ReadSamples(dst []float32) (int, error) {
	if g.channels <= 0 || g.pos >= g.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.wave(g.pos+f, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * g.channels, io.EOF
	}

	return n * g.channels, nil
}
