// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through jfreymuth/oggvorbis.
package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/speechfront/audio"
)

const bufSize = 4096

type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// stream passes oggvorbis output through; it is already interleaved
// float32 in [-1, 1].
type stream struct {
	r        oggReader
	rate     int
	channels int
}

func newStream(r oggReader) *stream {
	return &stream{r: r, rate: r.SampleRate(), channels: r.Channels()}
}

func (s *stream) SampleRate() int { return s.rate }
func (s *stream) Channels() int   { return s.channels }
func (s *stream) BufSize() int    { return bufSize - bufSize%s.channels }
func (s *stream) Close() error    { return nil }

// ReadSamples never splits a frame across calls.
func (s *stream) ReadSamples(dst []float32) (int, error) {
	whole := len(dst) / s.channels * s.channels
	if whole == 0 {
		return 0, nil
	}

	return s.r.Read(dst[:whole])
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() < 1 {
		return nil, fmt.Errorf("vorbis: %d channels", dec.Channels())
	}

	return newStream(dec), nil
}
