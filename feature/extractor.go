// SPDX-License-Identifier: EPL-2.0

// Package feature computes normalised log-mel spectrograms.
package feature

import (
	"fmt"
	"math"
)

// Extractor turns equal-length waveforms into log-mel features. It is safe
// for concurrent use; each call computes serially.
type Extractor struct {
	cfg    Config
	fb     *Filterbank
	window []float64
}

// New checks cfg and fb. A nil fb means the shared filterbank for cfg.
func New(cfg Config, fb *Filterbank) (*Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if fb == nil {
		var err error
		fb, err = CachedFilterbank(cfg.SampleRate, cfg.NFFT, cfg.NMels)
		if err != nil {
			return nil, err
		}
	}
	if fb.Mels != cfg.NMels || fb.Bins != cfg.Bins() || len(fb.Weights) != fb.Mels*fb.Bins {
		return nil, fmt.Errorf("got %d x %d, want %d x %d: %w", fb.Mels, fb.Bins, cfg.NMels, cfg.Bins(), ErrFilterbankShape)
	}

	return &Extractor{cfg: cfg, fb: fb, window: periodicHann(cfg.NFFT)}, nil
}

func (e *Extractor) Config() Config          { return e.cfg }
func (e *Extractor) Filterbank() *Filterbank { return e.fb }

// Extract computes features for a batch of equal-length waveforms.
// lengths[i] is the number of real samples in batch[i] before shaping; the
// returned valid lengths are lengths[i] / HopLength. A nil lengths uses
// the length of each item.
func (e *Extractor) Extract(batch [][]float32, lengths []int) (*Tensor, []int, error) {
	if len(batch) == 0 {
		return nil, nil, ErrEmptyBatch
	}
	if lengths == nil {
		lengths = make([]int, len(batch))
		for i, x := range batch {
			lengths[i] = len(x)
		}
	}
	if len(lengths) != len(batch) {
		return nil, nil, fmt.Errorf("%d lengths for %d items: %w", len(lengths), len(batch), ErrLengthMismatch)
	}

	n := len(batch[0])
	valid := make([]int, len(batch))
	for i, x := range batch {
		if len(x) != n {
			return nil, nil, fmt.Errorf("item %d has %d samples, item 0 has %d: %w", i, len(x), n, ErrRaggedBatch)
		}
		if lengths[i] < 0 {
			return nil, nil, fmt.Errorf("item %d length %d: %w", i, lengths[i], ErrLengthMismatch)
		}
		valid[i] = lengths[i] / e.cfg.HopLength
	}

	plan := newSTFTPlan(e.cfg.NFFT, e.cfg.HopLength, e.window)

	var out *Tensor
	for i, x := range batch {
		if e.cfg.Padding > 0 {
			x = append(append(make([]float32, 0, len(x)+e.cfg.Padding), x...), make([]float32, e.cfg.Padding)...)
		}

		power, frames, err := plan.power(x)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d: %w", i, err)
		}
		if out == nil {
			out = newTensor(len(batch), e.cfg.NMels, frames)
		}

		e.logMel(out.Item(i), power, frames)
	}

	return out, valid, nil
}

// ExtractOne computes features for a single waveform as a batch of one,
// with len(samples) as its length.
func (e *Extractor) ExtractOne(samples []float32) (*Tensor, int, error) {
	t, valid, err := e.Extract([][]float32{samples}, nil)
	if err != nil {
		return nil, 0, err
	}
	return t, valid[0], nil
}

// logMel writes the normalised log-mel spectrogram of one utterance into
// dst, a [Mels, frames] view. power is [frames, Bins].
func (e *Extractor) logMel(dst []float32, power []float64, frames int) {
	bins := e.fb.Bins
	peak := math.Inf(-1)
	logs := make([]float64, len(dst))

	for m := range e.fb.Mels {
		filter := e.fb.Row(m)
		for t := range frames {
			spec := power[t*bins : (t+1)*bins]
			var sum float64
			for k, w := range filter {
				if w != 0 {
					sum += float64(w) * spec[k]
				}
			}
			v := math.Log10(max(sum, LogFloor))
			logs[m*frames+t] = v
			peak = max(peak, v)
		}
	}

	floor := peak - ClipRange
	for i, v := range logs {
		dst[i] = float32((max(v, floor) + Offset) / Scale)
	}
}
