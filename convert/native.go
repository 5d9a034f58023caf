// SPDX-License-Identifier: EPL-2.0

package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/formats"
	"github.com/ik5/speechfront/formats/wav"
	"github.com/ik5/speechfront/utils"
)

// Native converts in-process using the decoders in package formats.
// BackendSoxr resamples with the pure Go soxr port; BackendSwr uses the
// cubic audio.Resampler.
type Native struct {
	registry *audio.Registry
	backend  Backend
	log      logrus.FieldLogger
}

// NewNative builds an in-process converter. A nil registry means
// formats.NewRegistry().
func NewNative(reg *audio.Registry, backend Backend, log logrus.FieldLogger) *Native {
	if reg == nil {
		reg = formats.NewRegistry()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Native{registry: reg, backend: backend, log: log}
}

func (n *Native) Backend() Backend { return n.backend }

func (n *Native) Convert(ctx context.Context, in, out string, sampleRate int) error {
	fail := func(err error) error {
		return &ConversionError{Input: in, Backend: n.backend, ExitCode: -1, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	samples, err := n.decode(in, sampleRate)
	if err != nil {
		return fail(err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	pcm := make([]int16, len(samples))
	for i, v := range samples {
		pcm[i] = utils.Float32ToInt16(v)
	}

	f, err := os.Create(out)
	if err != nil {
		return fail(err)
	}
	if err := wav.WriteWAV16(f, sampleRate, pcm); err != nil {
		f.Close()
		return fail(err)
	}
	if err := f.Close(); err != nil {
		return fail(err)
	}

	n.log.WithFields(logrus.Fields{
		"function": "Convert",
		"input":    in,
		"samples":  len(pcm),
		"backend":  n.backend.String(),
	}).Debug("Converted in-process")

	return nil
}

// decode returns mono samples of in at sampleRate.
func (n *Native) decode(in string, sampleRate int) ([]float32, error) {
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	src, _, err := formats.Open(n.registry, f)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if n.backend == BackendSwr || src.SampleRate() == sampleRate {
		return audio.ResampleToMono(src, sampleRate, 0)
	}

	mono, err := audio.Collect(audio.NewMonoMixer(src), 0)
	if err != nil {
		return nil, err
	}

	return soxrResample(mono, src.SampleRate(), sampleRate)
}

func soxrResample(in []float32, from, to int) ([]float32, error) {
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}

	buf := make([]float64, len(in))
	for i, v := range in {
		buf[i] = float64(v)
	}

	body, err := r.Process(buf)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("flush resampler: %w", err)
	}

	out := make([]float32, 0, len(body)+len(tail))
	for _, v := range body {
		out = append(out, float32(v))
	}
	for _, v := range tail {
		out = append(out, float32(v))
	}

	return out, nil
}
