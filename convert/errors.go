// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"errors"
	"fmt"
)

// InstallHint is appended to startup failures.
const InstallHint = "https://ffmpeg.org/download.html"

var (
	ErrStartup        = errors.New("audio converter unavailable")
	ErrConversion     = errors.New("audio conversion failed")
	ErrUnknownBackend = errors.New("unknown resampler backend")
)

// ConversionError reports a failed conversion of a single input. ExitCode
// is the tool's exit status, or -1 when the process never ran or the
// in-process converter failed.
type ConversionError struct {
	Input    string
	Backend  Backend
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %q with %s resampler: exit status %d", e.Input, e.Backend, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversion}
	}
	return []error{ErrConversion, e.Err}
}

// StartupError means the converter cannot be used at all. It is fatal for
// process initialisation.
type StartupError struct {
	Reason string
	Err    error
}

func (e *StartupError) Error() string {
	msg := "startup check failed: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + "\nCheck: " + InstallHint
}

func (e *StartupError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStartup}
	}
	return []error{ErrStartup, e.Err}
}
