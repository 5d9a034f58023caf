// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidAxis    = errors.New("axis out of range")
	ErrShapeMismatch  = errors.New("shape does not match data length")
	ErrNegativeLength = errors.New("target length must not be negative")
	ErrEmptyInput     = errors.New("audio input is empty")
)
