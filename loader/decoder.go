// SPDX-License-Identifier: EPL-2.0

// Package loader turns audio inputs into mono waveforms at a fixed rate,
// one at a time or as an ordered batch.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/convert"
	"github.com/ik5/speechfront/formats/wav"
)

const (
	DefaultSampleRate = 16000
	DefaultChannels   = 1

	bytesName     = "audio"
	convertedName = "tmp.wav"
)

// Decoder produces a Waveform from any Input. Canonical WAV input is read
// directly; everything else goes through the Converter in a private temp
// directory that is removed before Decode returns.
type Decoder struct {
	SampleRate int
	Channels   int
	Converter  convert.Converter
	// TempDir is the parent of per-call temp directories; os.TempDir when
	// empty.
	TempDir string
	Log     logrus.FieldLogger
}

func NewDecoder(conv convert.Converter, log logrus.FieldLogger) *Decoder {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Decoder{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		Converter:  conv,
		Log:        log,
	}
}

func (d *Decoder) Decode(ctx context.Context, in audio.Input) (*audio.Waveform, error) {
	switch in.Kind() {
	case audio.KindSamples:
		return audio.NewWaveform(in.Samples(), d.SampleRate), nil
	case audio.KindPath:
		if in.Path() == "" {
			return nil, ErrEmptyPath
		}
	case audio.KindBytes:
		if len(in.Bytes()) == 0 {
			return nil, audio.ErrEmptyInput
		}
	default:
		return nil, fmt.Errorf("%v: %w", in.Kind(), audio.ErrEmptyInput)
	}

	samples, err := d.readDirect(in)
	if err == nil {
		return audio.NewWaveform(samples, d.SampleRate), nil
	}

	d.logger().WithFields(logrus.Fields{
		"function": "Decode",
		"input":    in.String(),
		"reason":   err.Error(),
	}).Debug("Not canonical, converting")

	return d.convert(ctx, in)
}

// readDirect is the fast path: no subprocess, no temp files.
func (d *Decoder) readDirect(in audio.Input) ([]float32, error) {
	if in.Kind() == audio.KindBytes {
		samples, _, err := wav.ReadCanonical(bytes.NewReader(in.Bytes()), d.SampleRate, d.Channels)
		return samples, err
	}

	f, err := os.Open(in.Path())
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	samples, _, err := wav.ReadCanonical(f, d.SampleRate, d.Channels)
	return samples, err
}

func (d *Decoder) convert(ctx context.Context, in audio.Input) (*audio.Waveform, error) {
	if d.Converter == nil {
		return nil, fmt.Errorf("%s: %w", in, ErrNoConverter)
	}

	tmp, err := os.MkdirTemp(d.TempDir, "speechfront-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			d.logger().WithFields(logrus.Fields{
				"function": "Decode",
				"dir":      tmp,
				"error":    err.Error(),
			}).Warn("Failed to remove temp dir")
		}
	}()

	src := in.Path()
	if in.Kind() == audio.KindBytes {
		src = filepath.Join(tmp, bytesName)
		if err := os.WriteFile(src, in.Bytes(), 0o600); err != nil {
			return nil, fmt.Errorf("write temp input: %w", err)
		}
	}

	out := filepath.Join(tmp, convertedName)
	if err := d.Converter.Convert(ctx, src, out, d.SampleRate); err != nil {
		return nil, err
	}

	samples, err := d.readConverted(in, out)
	if err != nil {
		return nil, err
	}

	return audio.NewWaveform(samples, d.SampleRate), nil
}

func (d *Decoder) readConverted(in audio.Input, path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open converted audio: %w", err)
	}
	defer f.Close()

	samples, info, err := wav.ReadCanonical(f, d.SampleRate, d.Channels)
	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, wav.ErrNotCanonical), errors.Is(err, wav.ErrNotWavFile), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &FormatError{
			Input: in.String(),
			Got:   info,
			Want:  wav.Info{SampleRate: d.SampleRate, Channels: d.Channels, BitDepth: 16, Format: 1},
		}
	default:
		return nil, err
	}
}

func (d *Decoder) logger() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}
