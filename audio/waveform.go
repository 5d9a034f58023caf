// SPDX-License-Identifier: EPL-2.0

package audio

import "time"

// Waveform is decoded mono audio at a fixed sample rate.
type Waveform struct {
	Samples    []float32
	SampleRate int
}

// NewWaveform takes ownership of samples.
func NewWaveform(samples []float32, sampleRate int) *Waveform {
	return &Waveform{Samples: samples, SampleRate: sampleRate}
}

// Len is the number of samples.
func (w *Waveform) Len() int { return len(w.Samples) }

// Duration in seconds, len(Samples)/SampleRate.
func (w *Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Time is Duration as a time.Duration, truncated to the nanosecond.
func (w *Waveform) Time() time.Duration {
	return time.Duration(w.Duration() * float64(time.Second))
}
