// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

// PCMAIFF builds a big-endian AIFF file holding interleaved 16-bit samples.
func PCMAIFF(sampleRate, channels int, samples []int16) []byte {
	data := new(bytes.Buffer)
	for _, s := range samples {
		binary.Write(data, binary.BigEndian, s)
	}

	frames := 0
	if channels > 0 {
		frames = len(samples) / channels
	}

	buf := new(bytes.Buffer)
	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, uint32(4+(8+18)+(8+8+data.Len())))
	buf.WriteString("AIFF")

	buf.WriteString("COMM")
	binary.Write(buf, binary.BigEndian, uint32(18))
	binary.Write(buf, binary.BigEndian, uint16(channels))
	binary.Write(buf, binary.BigEndian, uint32(frames))
	binary.Write(buf, binary.BigEndian, uint16(16))
	buf.Write(extended(uint64(sampleRate)))

	buf.WriteString("SSND")
	binary.Write(buf, binary.BigEndian, uint32(8+data.Len()))
	binary.Write(buf, binary.BigEndian, uint32(0)) // offset
	binary.Write(buf, binary.BigEndian, uint32(0)) // block size
	buf.Write(data.Bytes())

	return buf.Bytes()
}

// extended encodes an integer as an 80-bit IEEE 754 extended float.
func extended(v uint64) []byte {
	out := make([]byte, 10)
	if v == 0 {
		return out
	}

	shift := bits.LeadingZeros64(v)
	exp := uint16(16383 + 63 - shift)
	binary.BigEndian.PutUint16(out[0:2], exp)
	binary.BigEndian.PutUint64(out[2:10], v<<shift)

	return out
}
