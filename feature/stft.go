// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// periodicHann is the Hann window used by torch.hann_window(n).
func periodicHann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// reflectPad mirrors p samples around each end of x, not repeating the
// edge sample. p must be smaller than len(x).
func reflectPad(x []float32, p int) []float64 {
	n := len(x)
	out := make([]float64, n+2*p)
	for i, v := range x {
		out[p+i] = float64(v)
	}
	for i := 1; i <= p; i++ {
		out[p-i] = float64(x[i])
		out[p+n-1+i] = float64(x[n-1-i])
	}
	return out
}

// stftPlan holds per-call state. fourier.FFT keeps scratch space, so a plan
// is not shared between goroutines.
type stftPlan struct {
	nFFT   int
	hop    int
	window []float64
	fft    *fourier.FFT
	frame  []float64
	coeffs []complex128
}

func newSTFTPlan(nFFT, hop int, window []float64) *stftPlan {
	return &stftPlan{
		nFFT:   nFFT,
		hop:    hop,
		window: window,
		fft:    fourier.NewFFT(nFFT),
		frame:  make([]float64, nFFT),
		coeffs: make([]complex128, nFFT/2+1),
	}
}

// power returns |X|² of the centred STFT of x as a row-major
// [frames, nFFT/2+1] matrix. The last frame is dropped.
func (p *stftPlan) power(x []float32) ([]float64, int, error) {
	half := p.nFFT / 2
	if len(x) <= half {
		return nil, 0, fmt.Errorf("%d samples, need more than %d: %w", len(x), half, ErrInputTooShort)
	}

	padded := reflectPad(x, half)
	total := 1 + (len(padded)-p.nFFT)/p.hop
	frames := total - 1
	bins := half + 1

	out := make([]float64, frames*bins)
	for t := range frames {
		start := t * p.hop
		for i, w := range p.window {
			p.frame[i] = padded[start+i] * w
		}
		p.coeffs = p.fft.Coefficients(p.coeffs, p.frame)

		row := out[t*bins : (t+1)*bins]
		for k, c := range p.coeffs {
			re, im := real(c), imag(c)
			row[k] = re*re + im*im
		}
	}

	return out, frames, nil
}
