// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Collect drains src into a single slice of interleaved samples.
// bufSize controls the read chunk; values below 1 fall back to src.BufSize().
func Collect(src Source, bufSize int) ([]float32, error) {
	if bufSize < 1 {
		bufSize = src.BufSize()
	}
	if bufSize < 1 {
		bufSize = 4096
	}
	if ch := src.Channels(); ch > 1 {
		bufSize -= bufSize % ch
		if bufSize == 0 {
			bufSize = ch
		}
	}

	out := make([]float32, 0, bufSize)
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
	}
}

// ResampleToMono runs src through NewResampler and NewMonoMixer and returns
// every sample at targetRate.
func ResampleToMono(src Source, targetRate int, bufSize int) ([]float32, error) {
	mono := NewMonoMixer(NewResampler(src, targetRate))

	return Collect(mono, bufSize)
}
