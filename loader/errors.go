// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"

	"github.com/ik5/speechfront/formats/wav"
)

var (
	ErrFormat         = errors.New("converted audio has an unexpected format")
	ErrDispatch       = errors.New("concurrent dispatch failed")
	ErrExecutorClosed = errors.New("executor is closed")
	ErrNoConverter    = errors.New("no audio converter configured")
	ErrEmptyPath      = errors.New("empty audio path")
	ErrTaskPanic      = errors.New("decode task panicked")
)

// FormatError is returned when the converter succeeded but its output is
// still not the canonical layout.
type FormatError struct {
	Input string
	Got   wav.Info
	Want  wav.Info
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: got %v, want %v", e.Input, e.Got, e.Want)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// DispatchError means the concurrent strategy could not be set up. The
// batch loader recovers from it by decoding sequentially.
type DispatchError struct {
	Submitted int
	Err       error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch after %d tasks: %v", e.Submitted, e.Err)
}

func (e *DispatchError) Unwrap() []error { return []error{ErrDispatch, e.Err} }
