// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/ik5/audcut/audio"
	"github.com/ik5/audcut/formats/internal/pcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// leading uint16 of the SubFormat GUID in an extensible fmt chunk
	subFormatOffset = 24
)

// Decoder reads integer PCM WAV files of 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	// go-audio reports the format tag only, never the extensible SubFormat
	sub, extensible, err := extensibleSubFormat(rs)
	if err != nil {
		return nil, err
	}
	if extensible && sub != formatPCM {
		return nil, fmt.Errorf("extensible subformat %#04x: %w", sub, ErrOnlyPCMSupported)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, ErrOnlyPCMSupported
	}

	switch dec.BitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%d-bit: %w", dec.BitDepth, ErrUnsupportedBitDepth)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return pcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth), "wav"), nil
}

// extensibleSubFormat walks the RIFF chunks of rs up to "fmt " and returns
// the SubFormat code when the format tag is WAVE_FORMAT_EXTENSIBLE. ok is
// false for other tags and for input go-audio should reject on its own.
// rs is rewound before returning.
func extensibleSubFormat(rs io.ReadSeeker) (sub uint16, ok bool, err error) {
	defer func() {
		if _, serr := rs.Seek(0, io.SeekStart); serr != nil && err == nil {
			err = fmt.Errorf("rewinding wav data: %w", serr)
		}
	}()

	var hdr [12]byte
	if _, rerr := io.ReadFull(rs, hdr[:]); rerr != nil {
		return 0, false, nil
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return 0, false, nil
	}

	for {
		var ch [8]byte
		if _, rerr := io.ReadFull(rs, ch[:]); rerr != nil {
			return 0, false, nil
		}

		size := int64(binary.LittleEndian.Uint32(ch[4:8]))
		if string(ch[0:4]) != "fmt " {
			if _, serr := rs.Seek(size+size%2, io.SeekCurrent); serr != nil {
				return 0, false, nil
			}
			continue
		}

		body := make([]byte, min(size, subFormatOffset+2))
		if _, rerr := io.ReadFull(rs, body); rerr != nil || len(body) < 2 {
			return 0, false, nil
		}
		if binary.LittleEndian.Uint16(body) != formatExtensible {
			return 0, false, nil
		}
		if len(body) < subFormatOffset+2 {
			return 0, true, fmt.Errorf("extensible fmt chunk of %d bytes: %w", size, ErrUnsupportedWavLayout)
		}

		return binary.LittleEndian.Uint16(body[subFormatOffset:]), true, nil
	}
}
