// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ik5/speechfront/formats/wav"
)

// referenceRate is deliberately not the usual target so that the probe
// conversion exercises the resampler.
const referenceRate = 44100

// ProbeOptions configures the startup self-check.
type ProbeOptions struct {
	// Path of the ffmpeg binary; DefaultFFmpeg when empty.
	Path string
	// Asset is a reference recording to convert. A generated second of
	// silence is used when empty.
	Asset string
	// Backends to try, in order. ProbeOrder when empty.
	Backends []Backend
	// SampleRate the reference is converted to; 16000 when zero.
	SampleRate int
	Logger     logrus.FieldLogger
}

// Probe verifies that ffmpeg is installed and working, and picks the first
// backend in opts.Backends that converts the reference asset. It runs once
// per process; the returned converter keeps the choice for its lifetime.
func Probe(ctx context.Context, opts ProbeOptions) (*FFmpeg, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	path := opts.Path
	if path == "" {
		path = DefaultFFmpeg
	}
	rate := opts.SampleRate
	if rate == 0 {
		rate = 16000
	}
	backends := opts.Backends
	if len(backends) == 0 {
		backends = ProbeOrder
	}

	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, &StartupError{Reason: fmt.Sprintf("%q is not installed", path), Err: err}
	}
	if err := exec.CommandContext(ctx, resolved, "-version").Run(); err != nil {
		return nil, &StartupError{Reason: fmt.Sprintf("%q -version failed", resolved), Err: err}
	}

	tmpDir, err := os.MkdirTemp("", "speechfront-probe-")
	if err != nil {
		return nil, &StartupError{Reason: "cannot create temp dir", Err: err}
	}
	defer os.RemoveAll(tmpDir)

	asset := opts.Asset
	if asset == "" {
		asset = filepath.Join(tmpDir, "silent.wav")
		if err := writeSilence(asset, referenceRate, referenceRate); err != nil {
			return nil, &StartupError{Reason: "cannot write reference asset", Err: err}
		}
	}
	out := filepath.Join(tmpDir, "tmp.wav")

	var errs []error
	for i, b := range backends {
		ff := NewFFmpeg(resolved, b, log)
		if err := ff.Convert(ctx, asset, out, rate); err != nil {
			log.WithFields(logrus.Fields{
				"function": "Probe",
				"backend":  b.String(),
				"error":    err.Error(),
			}).Warn("ffmpeg failed with this resampler, trying the next one")
			errs = append(errs, err)
			continue
		}

		fields := logrus.Fields{
			"function": "Probe",
			"ffmpeg":   resolved,
			"backend":  b.String(),
		}
		if i > 0 {
			log.WithFields(fields).Warnf("Using '%s' resampler. This may degrade performance.", b)
		} else {
			log.WithFields(fields).Info("Audio converter ready")
		}

		return ff, nil
	}

	return nil, &StartupError{
		Reason: fmt.Sprintf("%q could not convert the reference audio with any resampler", resolved),
		Err:    errors.Join(errs...),
	}
}

func writeSilence(path string, sampleRate, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := wav.WriteWAV16(f, sampleRate, make([]int16, n)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
