// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/audcut/audio"
)

type headerFields struct {
	riffSize   uint32
	fmtSize    uint32
	format     uint16
	channels   uint16
	sampleRate uint32
	byteRate   uint32
	blockAlign uint16
	bits       uint16
	dataSize   uint32
}

func parseHeader(t *testing.T, data []byte) headerFields {
	t.Helper()

	if len(data) < headerSize {
		t.Fatalf("output is %d bytes, shorter than the header", len(data))
	}

	for off, id := range map[int]string{0: "RIFF", 8: "WAVE", 12: "fmt ", 36: "data"} {
		if got := string(data[off : off+4]); got != id {
			t.Errorf("chunk id at %d = %q, want %q", off, got, id)
		}
	}

	le := binary.LittleEndian
	return headerFields{
		riffSize:   le.Uint32(data[4:8]),
		fmtSize:    le.Uint32(data[16:20]),
		format:     le.Uint16(data[20:22]),
		channels:   le.Uint16(data[22:24]),
		sampleRate: le.Uint32(data[24:28]),
		byteRate:   le.Uint32(data[28:32]),
		blockAlign: le.Uint16(data[32:34]),
		bits:       le.Uint16(data[34:36]),
		dataSize:   le.Uint32(data[40:44]),
	}
}

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    int
		samples []int16
	}{
		{"empty", 8000, nil},
		{"single sample", 16000, []int16{12345}},
		{"short", 44100, []int16{100, 200, 300, 400}},
		{"96 kHz", 96000, []int16{1, 2, 3}},
		{"ten seconds", 44100, make([]int16, 441000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			if err := WriteWAV16(&out, tt.rate, tt.samples); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			dataSize := uint32(len(tt.samples) * 2)
			if out.Len() != headerSize+int(dataSize) {
				t.Fatalf("output length = %d, want %d", out.Len(), headerSize+int(dataSize))
			}

			want := headerFields{
				riffSize:   36 + dataSize,
				fmtSize:    16,
				format:     1,
				channels:   1,
				sampleRate: uint32(tt.rate),
				byteRate:   uint32(tt.rate * 2),
				blockAlign: 2,
				bits:       16,
				dataSize:   dataSize,
			}
			if got := parseHeader(t, out.Bytes()); got != want {
				t.Errorf("header = %+v, want %+v", got, want)
			}
		})
	}
}

func TestWriteWAV16_SampleBytes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := WriteWAV16(&out, 8000, []int16{0x1234, -200, 32767, -32768}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	want := []byte{0x34, 0x12, 0x38, 0xFF, 0xFF, 0x7F, 0x00, 0x80}
	if got := out.Bytes()[headerSize:]; !bytes.Equal(got, want) {
		t.Errorf("data = % x, want % x", got, want)
	}
}

func TestWriteWAV16_RoundTrip(t *testing.T) {
	t.Parallel()

	original := []int16{0, 100, -100, 32767, -32768, 12345, -6789}

	var out bytes.Buffer
	if err := WriteWAV16(&out, 16000, original); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	src, err := Decoder{}.Decode(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.SampleRate != 16000 || buf.ChannelCount() != 1 || buf.FrameCount() != len(original) {
		t.Fatalf("decoded %d Hz, %d ch, %d frames", buf.SampleRate, buf.ChannelCount(), buf.FrameCount())
	}

	for i, s := range original {
		if want := float32(s) / 32768; buf.Channels[0][i] != want {
			t.Errorf("sample[%d] = %v, want %v", i, buf.Channels[0][i], want)
		}
	}
}

func TestWriteWAV16_InvalidRate(t *testing.T) {
	t.Parallel()

	err := WriteWAV16(io.Discard, 0, []int16{1})
	if !errors.Is(err, audio.ErrInvalidSampleRate) {
		t.Errorf("WriteWAV16() error = %v, want ErrInvalidSampleRate", err)
	}
}

// failWriter fails every write after the first okWrites calls.
type failWriter struct {
	okWrites int
	calls    int
}

var errWriteFailed = errors.New("write failed")

func (f *failWriter) Write(p []byte) (int, error) {
	f.calls++
	if f.calls > f.okWrites {
		return 0, errWriteFailed
	}
	return len(p), nil
}

func TestEncode_MonoScenario(t *testing.T) {
	t.Parallel()

	buf, err := audio.NewBuffer(8000, []float32{0.5, -0.5, 1.0})
	if err != nil {
		t.Fatalf("NewBuffer() error = %v", err)
	}

	blob, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if blob.MIMEType != "audio/wav" {
		t.Errorf("MIMEType = %q, want \"audio/wav\"", blob.MIMEType)
	}

	if blob.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", blob.Len())
	}

	want := []byte{0x00, 0x40, 0x00, 0xC0, 0xFF, 0x7F}
	if !bytes.Equal(blob.Bytes[44:], want) {
		t.Errorf("data = % x, want % x", blob.Bytes[44:], want)
	}

	if got := binary.LittleEndian.Uint32(blob.Bytes[4:8]); got != 42 {
		t.Errorf("RIFF size = %d, want 42", got)
	}
	if got := binary.LittleEndian.Uint32(blob.Bytes[40:44]); got != 6 {
		t.Errorf("data size = %d, want 6", got)
	}
}

func TestEncode_StereoHeader(t *testing.T) {
	t.Parallel()

	left := []float32{0.1, 0.2, 0.3, 0.4}
	right := []float32{-0.1, -0.2, -0.3, -0.4}
	buf, _ := audio.NewBuffer(48000, left, right)

	blob, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	data := blob.Bytes
	if len(data) != 44+4*2*2 {
		t.Fatalf("len = %d, want %d", len(data), 44+4*2*2)
	}

	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"channels", uint32(binary.LittleEndian.Uint16(data[22:24])), 2},
		{"sample rate", binary.LittleEndian.Uint32(data[24:28]), 48000},
		{"byte rate", binary.LittleEndian.Uint32(data[28:32]), 48000 * 2 * 2},
		{"block align", uint32(binary.LittleEndian.Uint16(data[32:34])), 4},
		{"bits per sample", uint32(binary.LittleEndian.Uint16(data[34:36])), 16},
		{"data size", binary.LittleEndian.Uint32(data[40:44]), 16},
		{"riff size", binary.LittleEndian.Uint32(data[4:8]), 36 + 16},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	// frames are interleaved L, R
	first := int16(binary.LittleEndian.Uint16(data[44:46]))
	second := int16(binary.LittleEndian.Uint16(data[46:48]))
	if first <= 0 || second >= 0 {
		t.Errorf("first frame = (%d, %d), want (+, -)", first, second)
	}
}

func TestEncode_Clamping(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(8000, []float32{2.0, -2.0, -1.0, float32(math.NaN())})

	blob, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []int16{32767, -32768, -32767, 0}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(blob.Bytes[44+i*2:]))
		if got != w {
			t.Errorf("sample[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestEncode_EmptyBuffer(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(16000, []float32{})

	blob, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if blob.Len() != 44 {
		t.Fatalf("Len() = %d, want 44", blob.Len())
	}
	if got := binary.LittleEndian.Uint32(blob.Bytes[40:44]); got != 0 {
		t.Errorf("data size = %d, want 0", got)
	}
	if got := binary.LittleEndian.Uint32(blob.Bytes[4:8]); got != 36 {
		t.Errorf("RIFF size = %d, want 36", got)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(22050, []float32{0.25, -0.75, 0.125, 0.9})

	a, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !bytes.Equal(a.Bytes, b.Bytes) {
		t.Error("Encode() is not deterministic")
	}
}

func TestEncode_RoundTripThroughGoAudio(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 16000))
	}
	buf, _ := audio.NewBuffer(16000, samples)

	blob, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	dec := gowav.NewDecoder(bytes.NewReader(blob.Bytes))
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}

	if dec.SampleRate != 16000 || dec.NumChans != 1 || dec.BitDepth != 16 {
		t.Fatalf("format = %d Hz, %d ch, %d bit, want 16000 Hz, 1 ch, 16 bit", dec.SampleRate, dec.NumChans, dec.BitDepth)
	}

	if len(pcm.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(pcm.Data), len(samples))
	}

	for i, s := range samples {
		diff := math.Abs(float64(pcm.Data[i]) - float64(s)*32767)
		if diff > 1 {
			t.Fatalf("sample[%d] = %d, want ≈%.1f", i, pcm.Data[i], float64(s)*32767)
		}
	}
}

func TestWrite_MatchesEncode(t *testing.T) {
	t.Parallel()

	// more frames than one write chunk
	frames := chunkSize + 17
	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := range frames {
		left[i] = float32(i%200)/200 - 0.5
		right[i] = -left[i]
	}
	buf, _ := audio.NewBuffer(44100, left, right)

	var streamed bytes.Buffer
	if err := Write(&streamed, buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	blob, err := Encode(buf)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !bytes.Equal(streamed.Bytes(), blob.Bytes) {
		t.Error("Write() and Encode() produced different output")
	}
	if blob.Len() != headerSize+frames*2*bytesPerSample {
		t.Errorf("Len() = %d, want %d", blob.Len(), headerSize+frames*2*bytesPerSample)
	}
}

func TestEncode_InvalidBuffer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *audio.Buffer
		want error
	}{
		{"nil buffer", nil, audio.ErrNilBuffer},
		{"no channels", &audio.Buffer{SampleRate: 8000}, audio.ErrNoChannels},
		{"zero rate", &audio.Buffer{Channels: [][]float32{{0}}}, audio.ErrInvalidSampleRate},
		{"ragged channels", &audio.Buffer{SampleRate: 8000, Channels: [][]float32{{0, 0}, {0}}}, audio.ErrChannelLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Encode(tt.buf)

			var eerr *audio.EncodeError
			if !errors.As(err, &eerr) {
				t.Fatalf("Encode() error = %v, want *audio.EncodeError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}

			if err := Write(io.Discard, tt.buf); !errors.Is(err, tt.want) {
				t.Errorf("Write() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestContainerSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		frames   int
		want     uint32
		wantErr  error
	}{
		{"mono", 8000, 1, 3, 6, nil},
		{"stereo", 44100, 2, 100, 400, nil},
		{"empty", 8000, 1, 0, 0, nil},
		{"largest mono", 8000, 1, (math.MaxUint32 - 36) / 2, uint32((math.MaxUint32 - 36) / 2 * 2), nil},
		{"too many frames", 8000, 1, (math.MaxUint32-36)/2 + 1, 0, audio.ErrSizeOverflow},
		{"too many channels", 8000, math.MaxUint16, 1, 0, audio.ErrSizeOverflow},
		{"byte rate overflow", math.MaxUint32, 2, 1, 0, audio.ErrSizeOverflow},
		{"no channels", 8000, 0, 1, 0, audio.ErrNoChannels},
		{"bad rate", 0, 1, 1, 0, audio.ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := containerSize(tt.rate, tt.channels, tt.frames)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("containerSize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("containerSize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("containerSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBlobSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dataSize uint32
		maxLen   int
		want     int
		wantErr  error
	}{
		{"empty", 0, math.MaxInt, 44, nil},
		{"mono", 6, math.MaxInt, 50, nil},
		{"one gigabyte", 1 << 30, math.MaxInt, 44 + 1<<30, nil},
		{"fits exactly", 100, 144, 144, nil},
		{"one byte over", 101, 144, 0, audio.ErrSizeOverflow},
		{"32-bit int limit", math.MaxUint32 - 36, math.MaxInt32, 0, audio.ErrSizeOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := blobSize(tt.dataSize, tt.maxLen)
			if tt.wantErr != nil {
				var eerr *audio.EncodeError
				if !errors.As(err, &eerr) || !errors.Is(err, tt.wantErr) {
					t.Errorf("blobSize() error = %v, want *audio.EncodeError wrapping %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("blobSize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("blobSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrite_WriterFailure(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(8000, make([]float32, 100))

	tests := []struct {
		name     string
		okWrites int
	}{
		{"header", 0},
		{"data", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Write(&failWriter{okWrites: tt.okWrites}, buf)
			if !errors.Is(err, errWriteFailed) {
				t.Errorf("Write() error = %v, want %v", err, errWriteFailed)
			}
		})
	}

	if err := WriteWAV16(&failWriter{}, 8000, []int16{1}); !errors.Is(err, errWriteFailed) {
		t.Errorf("WriteWAV16() error = %v, want %v", err, errWriteFailed)
	}
}

func BenchmarkEncode(b *testing.B) {
	samples := make([]float32, 44100)
	for i := range samples {
		samples[i] = float32(i%1000)/1000 - 0.5
	}
	buf, _ := audio.NewBuffer(44100, samples)

	b.ReportAllocs()

	for b.Loop() {
		if _, err := Encode(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	b.ReportAllocs()

	for b.Loop() {
		_ = WriteWAV16(io.Discard, 44100, samples)
	}
}
