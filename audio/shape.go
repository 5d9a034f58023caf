// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Fit returns a copy of x with exactly n samples: the first n samples when
// x is longer, x followed by zeros when it is shorter. It never crops from
// the middle and never pads at the front.
func Fit(x []float32, n int) []float32 {
	if n < 0 {
		n = 0
	}
	out := make([]float32, n)
	copy(out, x)

	return out
}

// FitBatch applies Fit to every row of a batch.
func FitBatch(xs [][]float32, n int) [][]float32 {
	out := make([][]float32, len(xs))
	for i, x := range xs {
		out[i] = Fit(x, n)
	}

	return out
}

// FitAxis resizes a row-major array of the given shape along one axis to
// length n, truncating or zero-padding at the end of that axis. A negative
// axis counts from the last one, so -1 is the time axis of both a single
// waveform [T] and a batch [B, T]. The returned data and shape are new.
func FitAxis(data []float32, shape []int, axis, n int) ([]float32, []int, error) {
	if n < 0 {
		return nil, nil, ErrNegativeLength
	}
	if axis < 0 {
		axis += len(shape)
	}
	if axis < 0 || axis >= len(shape) {
		return nil, nil, fmt.Errorf("axis %d for %d-d shape: %w", axis, len(shape), ErrInvalidAxis)
	}

	total := 1
	for _, d := range shape {
		total *= d
	}
	if total != len(data) {
		return nil, nil, fmt.Errorf("shape %v holds %d values, got %d: %w", shape, total, len(data), ErrShapeMismatch)
	}

	outer := 1
	for _, d := range shape[:axis] {
		outer *= d
	}
	inner := 1
	for _, d := range shape[axis+1:] {
		inner *= d
	}

	have := shape[axis]
	keep := min(have, n)

	out := make([]float32, outer*n*inner)
	for o := range outer {
		src := data[o*have*inner : o*have*inner+keep*inner]
		copy(out[o*n*inner:], src)
	}

	newShape := append([]int(nil), shape...)
	newShape[axis] = n

	return out, newShape, nil
}
