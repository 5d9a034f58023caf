// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultFFmpeg is the binary looked up on PATH when none is configured.
const DefaultFFmpeg = "ffmpeg"

// FFmpeg converts through the ffmpeg command line tool. The backend is
// fixed at construction, normally by Probe.
type FFmpeg struct {
	path    string
	backend Backend
	log     logrus.FieldLogger
}

// NewFFmpeg builds a converter without probing. Prefer Probe at startup.
func NewFFmpeg(path string, backend Backend, log logrus.FieldLogger) *FFmpeg {
	if path == "" {
		path = DefaultFFmpeg
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &FFmpeg{path: path, backend: backend, log: log}
}

func (f *FFmpeg) Backend() Backend { return f.backend }
func (f *FFmpeg) Path() string     { return f.path }

// Args is the ffmpeg argument list for one conversion.
func (f *FFmpeg) Args(in, out string, sampleRate int) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "panic",
		"-i", in,
		"-threads", "1",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-af", "aresample=resampler=" + f.backend.String(),
		"-ar", strconv.Itoa(sampleRate),
		out,
		"-y",
	}
}

func (f *FFmpeg) Convert(ctx context.Context, in, out string, sampleRate int) error {
	args := f.Args(in, out, sampleRate)

	f.log.WithFields(logrus.Fields{
		"function": "Convert",
		"input":    in,
		"rate":     sampleRate,
		"backend":  f.backend.String(),
	}).Debug("Running ffmpeg")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.path, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}

		return &ConversionError{
			Input:    in,
			Backend:  f.backend,
			ExitCode: code,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}

	return nil
}
