// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"context"
	"fmt"
	"strings"
)

// Backend selects the resampling algorithm used during conversion.
type Backend int

const (
	// BackendSoxr is the SoX resampler, preferred when available.
	BackendSoxr Backend = iota
	// BackendSwr is ffmpeg's built-in resampler.
	BackendSwr
)

// ProbeOrder is the order backends are tried at startup.
var ProbeOrder = []Backend{BackendSoxr, BackendSwr}

func (b Backend) String() string {
	switch b {
	case BackendSoxr:
		return "soxr"
	case BackendSwr:
		return "swr"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend accepts "soxr" or "swr", case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soxr":
		return BackendSoxr, nil
	case "swr":
		return BackendSwr, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownBackend)
	}
}

// Converter turns any audio file at in into a 16-bit mono PCM WAV at out
// with the given sample rate. Implementations are safe for concurrent use.
type Converter interface {
	Convert(ctx context.Context, in, out string, sampleRate int) error
	Backend() Backend
}
