// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Trim copies the frames of w out of channel 0 of buf into a new mono Buffer.
//
// Multi-channel input is reduced to its first channel; the other channels are
// dropped, not averaged. Samples are copied verbatim, with no resampling or
// gain. A window that clamps to zero frames yields an empty Buffer, not an error.
func Trim(buf *Buffer, w Window) (*Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("trim: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	start, end := w.Frames(buf.SampleRate, buf.FrameCount())

	samples := make([]float32, end-start)
	copy(samples, buf.Channels[0][start:end])

	return &Buffer{
		SampleRate: buf.SampleRate,
		Channels:   [][]float32{samples},
	}, nil
}
