// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"github.com/ik5/audcut/internal/audiotest"
)

// mockSource wraps a generated source with a configurable read size,
// an injected read error and close tracking.
type mockSource struct {
	*audiotest.GeneratedSource

	bufSize  int
	closed   bool
	closeErr error

	// readErr is returned once failAfter frames have been read
	readErr   error
	failAfter int
	frames    int
}

func newMockSource(gen *audiotest.GeneratedSource) *mockSource {
	return &mockSource{GeneratedSource: gen, bufSize: 4096}
}

func newSilentSource(sampleRate, channels, frames int) *mockSource {
	return newMockSource(audiotest.NewSilentSource(sampleRate, channels, frames))
}

func newConstantSource(sampleRate, channels, frames int, value float32) *mockSource {
	return newMockSource(audiotest.NewConstantSource(sampleRate, channels, frames, value))
}

func (m *mockSource) BufSize() int { return m.bufSize }

func (m *mockSource) Close() error {
	m.closed = true
	return m.closeErr
}

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.readErr != nil && m.frames >= m.failAfter {
		return 0, m.readErr
	}

	n, err := m.GeneratedSource.ReadSamples(dst)
	if ch := m.Channels(); ch > 0 {
		m.frames += n / ch
	}

	return n, err
}

// stallSource never makes progress: every read returns (0, nil).
type stallSource struct{}

func (stallSource) SampleRate() int { return 8000 }
func (stallSource) Channels() int   { return 1 }
func (stallSource) BufSize() int    { return 16 }
func (stallSource) Close() error    { return nil }

func (stallSource) ReadSamples([]float32) (int, error) { return 0, nil }

// oddSource writes a fixed interleaved slice in reads of chunk values,
// so frames can straddle read boundaries.
type oddSource struct {
	rate     int
	channels int
	data     []float32
	chunk    int
	off      int
}

func (o *oddSource) SampleRate() int { return o.rate }
func (o *oddSource) Channels() int   { return o.channels }
func (o *oddSource) BufSize() int    { return 64 }
func (o *oddSource) Close() error    { return nil }

func (o *oddSource) ReadSamples(dst []float32) (int, error) {
	if o.off >= len(o.data) {
		return 0, io.EOF
	}

	n := min(o.chunk, len(dst), len(o.data)-o.off)
	copy(dst, o.data[o.off:o.off+n])
	o.off += n

	return n, nil
}
