// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// frameEpsilon absorbs float drift in seconds*rate products (0.29*100 is
// 28.999999999999996) so that flooring lands on the intended frame.
const frameEpsilon = 1e-9

// Window is a [Start, End) selection in seconds.
type Window struct {
	Start float64
	End   float64
}

// FullWindow selects the whole of buf.
func FullWindow(buf *Buffer) Window {
	return Window{Start: 0, End: buf.Duration()}
}

// Length in seconds, before any clamping.
func (w Window) Length() float64 { return w.End - w.Start }

// IsZero reports whether both bounds are zero.
func (w Window) IsZero() bool { return w.Start == 0 && w.End == 0 }

// Validate rejects bounds that cannot be clamped into a frame range.
// Out of range but finite bounds are accepted; Frames clamps them.
func (w Window) Validate() error {
	if !finite(w.Start) || !finite(w.End) {
		return &WindowError{Window: w, Err: ErrInvalidBound}
	}
	if w.End < w.Start {
		return &WindowError{Window: w, Err: ErrInvertedWindow}
	}

	return nil
}

// Frames converts the window to a frame range for a stream of frameCount
// frames at sampleRate. start is clamped to [0, frameCount] and end to
// [start, frameCount], so the range is always well formed.
func (w Window) Frames(sampleRate, frameCount int) (start, end int) {
	rate := float64(sampleRate)
	start = clampFrame(math.Floor(w.Start*rate+frameEpsilon), 0, frameCount)
	end = clampFrame(math.Floor(w.End*rate+frameEpsilon), start, frameCount)

	return start, end
}

func clampFrame(f float64, lo, hi int) int {
	switch {
	case math.IsNaN(f), f < float64(lo):
		return lo
	case f > float64(hi):
		return hi
	default:
		return int(f)
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
