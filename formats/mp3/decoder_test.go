// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// chunkedReader hands out PCM bytes in fixed, possibly odd-sized, pieces.
type chunkedReader struct {
	rate  int
	data  []byte
	chunk int
}

func (m *chunkedReader) SampleRate() int { return m.rate }

func (m *chunkedReader) Read(p []byte) (int, error) {
	if len(m.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), m.chunk)], m.data)
	m.data = m.data[n:]
	if len(m.data) == 0 {
		return n, io.EOF
	}
	return n, nil
}

func pcmBytes(samples ...int16) []byte {
	var buf bytes.Buffer
	for _, s := range samples {
		_ = binary.Write(&buf, binary.LittleEndian, s)
	}
	return buf.Bytes()
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chunk int
	}{
		{"whole", 1 << 20},
		{"odd chunks", 3},
		{"single bytes", 1},
	}

	samples := []int16{0, 16384, -16384, -32768, 100, -100}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(&chunkedReader{rate: 44100, data: pcmBytes(samples...), chunk: tt.chunk})
			if src.Channels() != 2 || src.SampleRate() != 44100 {
				t.Fatalf("format = %d Hz %d ch", src.SampleRate(), src.Channels())
			}

			var got []float32
			buf := make([]float32, 4)
			for range 100 {
				n, err := src.ReadSamples(buf)
				got = append(got, buf[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(samples))
			}
			for i, s := range samples {
				if got[i] != float32(s)/32768 {
					t.Errorf("got[%d] = %v, want %v", i, got[i], float32(s)/32768)
				}
			}
		})
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("definitely not an mp3"))); err == nil {
		t.Error("Decode() error = nil, want error for garbage input")
	}
}
