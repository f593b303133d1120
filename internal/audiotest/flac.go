// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"fmt"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

const flacBlockSize = 4096

// PCMFLAC encodes interleaved samples of the given bit depth as a mono or
// stereo FLAC stream using verbatim subframes.
func PCMFLAC(sampleRate, channels, bitsPerSample int, samples []int32) ([]byte, error) {
	var layout frame.Channels
	switch channels {
	case 1:
		layout = frame.ChannelsMono
	case 2:
		layout = frame.ChannelsLR
	default:
		return nil, fmt.Errorf("audiotest: %d channels not supported", channels)
	}

	frames := len(samples) / channels

	info := &meta.StreamInfo{
		BlockSizeMin:  16,
		BlockSizeMax:  flacBlockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(channels),
		BitsPerSample: uint8(bitsPerSample),
		NSamples:      uint64(frames),
	}

	out := new(bytes.Buffer)
	enc, err := flac.NewEncoder(out, info)
	if err != nil {
		return nil, err
	}

	for start := 0; start < frames; start += flacBlockSize {
		end := min(start+flacBlockSize, frames)
		n := end - start

		subframes := make([]*frame.Subframe, channels)
		for c := range channels {
			chSamples := make([]int32, n)
			for i := range n {
				chSamples[i] = samples[(start+i)*channels+c]
			}

			subframes[c] = &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   chSamples,
				NSamples:  n,
			}
		}

		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(n),
				Num:               uint64(start / flacBlockSize),
				SampleRate:        uint32(sampleRate),
				Channels:          layout,
				BitsPerSample:     uint8(bitsPerSample),
			},
			Subframes: subframes,
		}

		if err := enc.WriteFrame(f); err != nil {
			return nil, err
		}
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
