// SPDX-License-Identifier: EPL-2.0

package speechfront

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/config"
	"github.com/ik5/speechfront/convert"
	"github.com/ik5/speechfront/feature"
	"github.com/ik5/speechfront/loader"
)

// Frontend wires the decoder, batch loader and feature extractor for one
// configuration. It is safe for concurrent use.
type Frontend struct {
	cfg       config.Config
	log       logrus.FieldLogger
	conv      convert.Converter
	decoder   *loader.Decoder
	loader    *loader.Loader
	extractor *feature.Extractor
}

type options struct {
	log  logrus.FieldLogger
	conv convert.Converter
	fb   *feature.Filterbank
}

type Option func(*options)

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithConverter skips converter construction and the ffmpeg probe.
func WithConverter(conv convert.Converter) Option {
	return func(o *options) { o.conv = conv }
}

// WithFilterbank overrides both the computed filterbank and
// config.MelFiltersPath.
func WithFilterbank(fb *feature.Filterbank) Option {
	return func(o *options) { o.fb = fb }
}

// New validates cfg and runs the one-time startup work: building the
// converter (probing ffmpeg unless the native converter is configured) and
// the mel filterbank. A broken ffmpeg install returns *convert.StartupError.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Frontend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		log := logrus.New()
		log.SetLevel(cfg.Level())
		o.log = log
	}

	if o.conv == nil {
		conv, err := NewConverter(ctx, cfg, o.log)
		if err != nil {
			return nil, err
		}
		o.conv = conv
	}

	if o.fb == nil && cfg.MelFiltersPath != "" {
		fb, err := loadFilterbank(cfg.MelFiltersPath, cfg.NMels)
		if err != nil {
			return nil, err
		}
		o.fb = fb
	}

	ext, err := feature.New(cfg.Feature(), o.fb)
	if err != nil {
		return nil, err
	}

	dec := loader.NewDecoder(o.conv, o.log)
	dec.SampleRate = cfg.SampleRate
	dec.TempDir = cfg.TempDir

	ld := loader.New(dec, o.log)
	ld.Workers = cfg.Workers
	ld.Parallel = cfg.Parallel

	o.log.WithFields(logrus.Fields{
		"function":    "New",
		"sample_rate": cfg.SampleRate,
		"n_mels":      cfg.NMels,
		"converter":   cfg.Converter,
		"backend":     o.conv.Backend().String(),
		"workers":     cfg.Workers,
	}).Debug("Front end ready")

	return &Frontend{
		cfg:       cfg,
		log:       o.log,
		conv:      o.conv,
		decoder:   dec,
		loader:    ld,
		extractor: ext,
	}, nil
}

// NewConverter builds the converter named by cfg.Converter. For ffmpeg it
// runs the startup probe.
func NewConverter(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (convert.Converter, error) {
	backends, err := cfg.Backends()
	if err != nil {
		return nil, err
	}

	if cfg.Converter == config.ConverterNative {
		return convert.NewNative(nil, backends[0], log), nil
	}

	return convert.Probe(ctx, convert.ProbeOptions{
		Path:       cfg.FFmpegPath,
		Asset:      cfg.ProbeAsset,
		Backends:   backends,
		SampleRate: cfg.SampleRate,
		Logger:     log,
	})
}

func loadFilterbank(path string, nMels int) (*feature.Filterbank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mel filters: %w", err)
	}
	defer f.Close()

	fbs, err := feature.LoadFilterbanks(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fb, ok := fbs[nMels]
	if !ok {
		return nil, fmt.Errorf("%s has mel counts %v, not %d: %w", path, feature.MelCounts(fbs), nMels, feature.ErrFilterbankShape)
	}

	return fb, nil
}

func (f *Frontend) Config() config.Config         { return f.cfg }
func (f *Frontend) Converter() convert.Converter  { return f.conv }
func (f *Frontend) Extractor() *feature.Extractor { return f.extractor }
func (f *Frontend) Logger() logrus.FieldLogger    { return f.log }

// LoadAudio decodes a single input.
func (f *Frontend) LoadAudio(ctx context.Context, in audio.Input) (*audio.Waveform, error) {
	return f.decoder.Decode(ctx, in)
}

// LoadMany starts decoding inputs; see loader.Loader.LoadMany.
func (f *Frontend) LoadMany(ctx context.Context, ins []audio.Input) *loader.Batch {
	return f.loader.LoadMany(ctx, ins)
}

// Features shapes every waveform to the configured chunk length and
// extracts log-mel features. Valid lengths come from the unshaped
// waveforms.
func (f *Frontend) Features(waves []*audio.Waveform) (*feature.Tensor, []int, error) {
	n := f.cfg.NSamples()
	batch := make([][]float32, len(waves))
	lengths := make([]int, len(waves))
	for i, wf := range waves {
		lengths[i] = wf.Len()
		batch[i] = audio.Fit(wf.Samples, n)
	}

	return f.extractor.Extract(batch, lengths)
}

// Process loads every input and extracts features for all of them. The
// first failing input aborts the call.
func (f *Frontend) Process(ctx context.Context, ins []audio.Input) (*feature.Tensor, []int, error) {
	batch := f.LoadMany(ctx, ins)
	defer batch.Close()

	waves := make([]*audio.Waveform, 0, len(ins))
	i := 0
	for wf, err := range batch.All() {
		if err != nil {
			if i < len(ins) {
				return nil, nil, fmt.Errorf("load %s: %w", ins[i], err)
			}
			return nil, nil, err
		}
		waves = append(waves, wf)
		i++
	}

	return f.Features(waves)
}
