// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// PCMWAV builds a WAV file with the given interleaved 16-bit samples.
// extra chunks (id -> payload) are written between "fmt " and "data".
func PCMWAV(sampleRate, channels int, samples []int16, extra ...Chunk) []byte {
	body := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(body, binary.LittleEndian, s)
	}
	return RawWAV(1, sampleRate, channels, 16, body.Bytes(), extra...)
}

// Chunk is an arbitrary RIFF sub-chunk.
type Chunk struct {
	ID   string
	Data []byte
}

// RawWAV builds a WAV file around an already encoded data payload.
func RawWAV(format uint16, sampleRate, channels, bitsPerSample int, data []byte, extra ...Chunk) []byte {
	return riffWAV(fmtChunk(format, sampleRate, channels, bitsPerSample), data, extra...)
}

// ExtensibleWAV builds a WAVE_FORMAT_EXTENSIBLE file whose 40-byte fmt
// chunk carries subFormat as the leading code of the SubFormat GUID.
func ExtensibleWAV(subFormat uint16, sampleRate, channels, bitsPerSample int, data []byte) []byte {
	fmtBody := bytes.NewBuffer(fmtChunk(0xFFFE, sampleRate, channels, bitsPerSample))
	binary.Write(fmtBody, binary.LittleEndian, uint16(22))
	binary.Write(fmtBody, binary.LittleEndian, uint16(bitsPerSample))
	binary.Write(fmtBody, binary.LittleEndian, uint32(1<<channels-1))
	binary.Write(fmtBody, binary.LittleEndian, subFormat)
	fmtBody.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})

	return riffWAV(fmtBody.Bytes(), data)
}

func fmtChunk(format uint16, sampleRate, channels, bitsPerSample int) []byte {
	buf := new(bytes.Buffer)
	blockAlign := channels * bitsPerSample / 8

	binary.Write(buf, binary.LittleEndian, format)
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	return buf.Bytes()
}

func riffWAV(fmtBody, data []byte, extra ...Chunk) []byte {
	buf := new(bytes.Buffer)

	riffSize := 4 + (8 + len(fmtBody)) + (8 + len(data))
	for _, c := range extra {
		riffSize += 8 + len(c.Data) + len(c.Data)%2
	}

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(riffSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(len(fmtBody)))
	buf.Write(fmtBody)

	for _, c := range extra {
		buf.WriteString(c.ID)
		binary.Write(buf, binary.LittleEndian, uint32(len(c.Data)))
		buf.Write(c.Data)
		if len(c.Data)%2 == 1 {
			buf.WriteByte(0)
		}
	}

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)

	return buf.Bytes()
}
