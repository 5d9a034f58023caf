// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/speechfront/utils"
)

const defaultBufSize = 4096

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source streams 16-bit integer PCM as float32 in [-1, 1).
type Source struct {
	r          Reader
	sampleRate int
	channels   int
	buf        *goaudio.IntBuffer
}

func NewSource(r Reader, sampleRate, channels int) *Source {
	return &Source{
		r:          r,
		sampleRate: sampleRate,
		channels:   channels,
		buf: &goaudio.IntBuffer{
			Data:           make([]int, defaultBufSize-defaultBufSize%max(channels, 1)),
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return cap(s.buf.Data) }
func (s *Source) Close() error    { return nil }

// ReadSamples returns io.EOF together with the last short read.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	if err != nil {
		err = fmt.Errorf("read pcm: %w", err)
	}
	switch {
	case n == 0 && err == nil:
		return 0, io.EOF
	case n < len(dst) && err == nil:
		err = io.EOF
	}

	utils.IntsToFloat32(dst, s.buf.Data[:n])

	return n, err
}

// Seekable returns r itself when it can seek, otherwise its contents in
// memory.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffer input: %w", err)
	}

	return bytes.NewReader(data), nil
}
