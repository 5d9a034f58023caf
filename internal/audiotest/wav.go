// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
)

// Chunk is an extra RIFF chunk placed before "fmt ".
type Chunk struct {
	ID   string
	Data []byte
}

// WAV builds a PCM 16-bit WAV container in memory.
func WAV(sampleRate, channels int, samples []int16, extra ...Chunk) []byte {
	return WAVFormat(1, sampleRate, channels, 16, samples, extra...)
}

// WAVFormat builds a WAV container with an arbitrary format tag and bit
// depth. Sample data is always written as int16 values.
func WAVFormat(format uint16, sampleRate, channels, bits int, samples []int16, extra ...Chunk) []byte {
	var body bytes.Buffer
	body.WriteString("WAVE")

	for _, c := range extra {
		body.WriteString(c.ID)
		_ = binary.Write(&body, binary.LittleEndian, uint32(len(c.Data)))
		body.Write(c.Data)
		if len(c.Data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	blockAlign := channels * bits / 8
	body.WriteString("fmt ")
	_ = binary.Write(&body, binary.LittleEndian, uint32(16))
	_ = binary.Write(&body, binary.LittleEndian, format)
	_ = binary.Write(&body, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&body, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&body, binary.LittleEndian, uint32(sampleRate*blockAlign))
	_ = binary.Write(&body, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&body, binary.LittleEndian, uint16(bits))

	body.WriteString("data")
	_ = binary.Write(&body, binary.LittleEndian, uint32(len(samples)*2))
	for _, s := range samples {
		_ = binary.Write(&body, binary.LittleEndian, s)
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// Silence returns n zero samples.
func Silence(n int) []int16 {
	return make([]int16, n)
}

// Ramp returns n samples stepping by step from zero, wrapping at int16 range.
func Ramp(n int, step int16) []int16 {
	out := make([]int16, n)
	var v int16
	for i := range out {
		out[i] = v
		v += step
	}
	return out
}
