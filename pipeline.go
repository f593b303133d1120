// SPDX-License-Identifier: EPL-2.0

package audcut

import (
	"bytes"
	"fmt"

	"github.com/ik5/audcut/audio"
	"github.com/ik5/audcut/formats/aiff"
	"github.com/ik5/audcut/formats/flac"
	"github.com/ik5/audcut/formats/mp3"
	"github.com/ik5/audcut/formats/vorbis"
	"github.com/ik5/audcut/formats/wav"
)

// DefaultRegistry returns a new registry holding every bundled decoder.
// Each call builds a fresh registry.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(FormatWAV, wav.Decoder{})
	reg.Register(FormatMP3, mp3.Decoder{})
	reg.Register(FormatOgg, vorbis.Decoder{})
	reg.Register(FormatAIFF, aiff.Decoder{})
	reg.Register(FormatFLAC, flac.Decoder{})

	return reg
}

// Pipeline decodes, trims and encodes using the decoders in its registry.
// A Pipeline holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	reg *audio.Registry
}

// NewPipeline returns a Pipeline over reg, or over DefaultRegistry when reg is nil.
func NewPipeline(reg *audio.Registry) *Pipeline {
	if reg == nil {
		reg = DefaultRegistry()
	}

	return &Pipeline{reg: reg}
}

// Decode turns raw file bytes into a fully materialized Buffer. Every
// failure is a *audio.DecodeError.
func (p *Pipeline) Decode(data []byte, mimeType string) (*audio.Buffer, error) {
	if len(data) == 0 {
		return nil, &audio.DecodeError{MIMEType: mimeType, Err: audio.ErrEmptyInput}
	}

	format, err := DetectFormat(data, mimeType)
	if err != nil {
		return nil, &audio.DecodeError{MIMEType: mimeType, Err: err}
	}

	dec, ok := p.reg.Get(format)
	if !ok {
		return nil, &audio.DecodeError{
			Format:   format,
			MIMEType: mimeType,
			Err:      fmt.Errorf("no decoder registered: %w", audio.ErrUnknownFormat),
		}
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &audio.DecodeError{Format: format, MIMEType: mimeType, Err: err}
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		return nil, &audio.DecodeError{Format: format, MIMEType: mimeType, Err: err}
	}

	if buf.FrameCount() == 0 {
		return nil, &audio.DecodeError{Format: format, MIMEType: mimeType, Err: audio.ErrNoAudio}
	}

	return buf, nil
}

// CutRequest is one trim-and-export job.
type CutRequest struct {
	// Data is the complete input file.
	Data []byte
	// MIMEType is the declared type of Data. It may be empty.
	MIMEType string
	// Window selects the output range in seconds.
	Window audio.Window
	// WholeFile ignores Window and selects every decoded frame.
	WholeFile bool
	// RequireNonEmpty rejects selections that contain no frames.
	RequireNonEmpty bool
}

// CutResult is the output of Cut along with what was read to produce it.
type CutResult struct {
	Blob audio.EncodedBlob

	// Decoded input
	SampleRate int
	Channels   int
	Duration   float64

	// Window actually applied and the frames it selected
	Window audio.Window
	Frames int
}

// Cut decodes req.Data, keeps the first channel inside req.Window and encodes
// it as 16-bit PCM WAV.
func (p *Pipeline) Cut(req CutRequest) (CutResult, error) {
	buf, err := p.Decode(req.Data, req.MIMEType)
	if err != nil {
		return CutResult{}, err
	}

	w := req.Window
	if req.WholeFile {
		w = audio.FullWindow(buf)
	}

	clip, err := audio.Trim(buf, w)
	if err != nil {
		return CutResult{}, err
	}

	if req.RequireNonEmpty && clip.FrameCount() == 0 {
		return CutResult{}, &audio.WindowError{Window: w, Err: audio.ErrEmptySelection}
	}

	blob, err := wav.Encode(clip)
	if err != nil {
		return CutResult{}, err
	}

	return CutResult{
		Blob:       blob,
		SampleRate: buf.SampleRate,
		Channels:   buf.ChannelCount(),
		Duration:   buf.Duration(),
		Window:     w,
		Frames:     clip.FrameCount(),
	}, nil
}

// Decode runs Pipeline.Decode with the default decoders.
func Decode(data []byte, mimeType string) (*audio.Buffer, error) {
	return NewPipeline(nil).Decode(data, mimeType)
}

// Trim keeps channel 0 of buf inside w. See audio.Trim.
func Trim(buf *audio.Buffer, w audio.Window) (*audio.Buffer, error) {
	return audio.Trim(buf, w)
}

// Encode serializes buf as a canonical 16-bit PCM WAV. See wav.Encode.
func Encode(buf *audio.Buffer) (audio.EncodedBlob, error) {
	return wav.Encode(buf)
}

// Cut runs Pipeline.Cut with the default decoders.
func Cut(req CutRequest) (CutResult, error) {
	return NewPipeline(nil).Cut(req)
}
