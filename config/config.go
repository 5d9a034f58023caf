// SPDX-License-Identifier: EPL-2.0

// Package config loads front end settings from YAML and SPEECHFRONT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/ik5/speechfront/convert"
	"github.com/ik5/speechfront/feature"
	"github.com/ik5/speechfront/loader"
)

// EnvPrefix is prepended to the upper-cased YAML key of every setting.
const EnvPrefix = "SPEECHFRONT_"

const (
	ConverterFFmpeg = "ffmpeg"
	ConverterNative = "native"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	SampleRate  int `yaml:"sample_rate"`
	NMels       int `yaml:"n_mels"`
	NFFT        int `yaml:"n_fft"`
	HopLength   int `yaml:"hop_length"`
	Padding     int `yaml:"padding"`
	ChunkLength int `yaml:"chunk_length"` // seconds

	Workers  int  `yaml:"workers"`
	Parallel bool `yaml:"parallel"`

	// Converter is "ffmpeg" or "native".
	Converter  string `yaml:"converter"`
	FFmpegPath string `yaml:"ffmpeg_path,omitempty"`
	// Backend forces "soxr" or "swr" instead of probing both.
	Backend    string `yaml:"backend,omitempty"`
	ProbeAsset string `yaml:"probe_asset,omitempty"`

	MelFiltersPath string `yaml:"mel_filters_path,omitempty"`
	TempDir        string `yaml:"temp_dir,omitempty"`
	LogLevel       string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		SampleRate:  feature.SampleRate,
		NMels:       feature.NMels,
		NFFT:        feature.NFFT,
		HopLength:   feature.HopLength,
		ChunkLength: feature.ChunkLength,
		Workers:     loader.DefaultWorkers,
		Parallel:    true,
		Converter:   ConverterFFmpeg,
		LogLevel:    logrus.InfoLevel.String(),
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from variables named EnvPrefix + KEY, where KEY
// is the upper-cased YAML key.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"sample_rate":  &c.SampleRate,
		"n_mels":       &c.NMels,
		"n_fft":        &c.NFFT,
		"hop_length":   &c.HopLength,
		"padding":      &c.Padding,
		"chunk_length": &c.ChunkLength,
		"workers":      &c.Workers,
	}
	strs := map[string]*string{
		"converter":        &c.Converter,
		"ffmpeg_path":      &c.FFmpegPath,
		"backend":          &c.Backend,
		"probe_asset":      &c.ProbeAsset,
		"mel_filters_path": &c.MelFiltersPath,
		"temp_dir":         &c.TempDir,
		"log_level":        &c.LogLevel,
	}

	for key, dst := range ints {
		v, ok := lookup(envName(key))
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q: %w", envName(key), v, ErrInvalid)
		}
		*dst = n
	}
	for key, dst := range strs {
		if v, ok := lookup(envName(key)); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := lookup(envName("parallel")); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q: %w", envName("parallel"), v, ErrInvalid)
		}
		c.Parallel = b
	}

	return nil
}

func envName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

func (c Config) Validate() error {
	if err := c.Feature().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var errs []error
	if c.ChunkLength <= 0 {
		errs = append(errs, fmt.Errorf("chunk_length %d must be positive", c.ChunkLength))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d must be at least 1", c.Workers))
	}
	if c.Converter != ConverterFFmpeg && c.Converter != ConverterNative {
		errs = append(errs, fmt.Errorf("converter %q is neither %q nor %q", c.Converter, ConverterFFmpeg, ConverterNative))
	}
	if c.Backend != "" {
		if _, err := convert.ParseBackend(c.Backend); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// Feature is the extractor part of the config.
func (c Config) Feature() feature.Config {
	return feature.Config{
		NMels:      c.NMels,
		NFFT:       c.NFFT,
		HopLength:  c.HopLength,
		Padding:    c.Padding,
		SampleRate: c.SampleRate,
	}
}

// NSamples is the length every waveform is shaped to before extraction.
func (c Config) NSamples() int { return c.ChunkLength * c.SampleRate }

// Backends is the probe order, or just the forced backend.
func (c Config) Backends() ([]convert.Backend, error) {
	if c.Backend == "" {
		return convert.ProbeOrder, nil
	}
	b, err := convert.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	return []convert.Backend{b}, nil
}

// Level is LogLevel parsed, InfoLevel when it does not parse.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// Write encodes the config as YAML.
func (c Config) Write(w io.Writer) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
