// SPDX-License-Identifier: EPL-2.0

// Package formats picks a container decoder by looking at the first bytes
// of a stream.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/formats/aiff"
	"github.com/ik5/speechfront/formats/mp3"
	"github.com/ik5/speechfront/formats/vorbis"
	"github.com/ik5/speechfront/formats/wav"
)

const (
	WAV    = "wav"
	MP3    = "mp3"
	Vorbis = "ogg"
	AIFF   = "aiff"
)

// sniffLen covers the longest magic we look at.
const sniffLen = 12

var ErrUnknownFormat = errors.New("unknown audio container")

// NewRegistry returns a registry with every built-in decoder.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(MP3, mp3.Decoder{})
	reg.Register(Vorbis, vorbis.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})

	return reg
}

// Sniff names the container whose magic starts header, or "" when none
// matches.
func Sniff(header []byte) string {
	switch {
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("RIFF")) && bytes.Equal(header[8:12], []byte("WAVE")):
		return WAV
	case len(header) >= 12 && bytes.Equal(header[:4], []byte("FORM")) &&
		(bytes.Equal(header[8:12], []byte("AIFF")) || bytes.Equal(header[8:12], []byte("AIFC"))):
		return AIFF
	case bytes.HasPrefix(header, []byte("OggS")):
		return Vorbis
	case bytes.HasPrefix(header, []byte("ID3")):
		return MP3
	case len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		// MPEG audio frame sync
		return MP3
	default:
		return ""
	}
}

// Open sniffs r and decodes it with the matching decoder from reg.
func Open(reg *audio.Registry, r io.Reader) (audio.Source, string, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("read header: %w", err)
	}

	name := Sniff(header)
	if name == "" {
		return nil, "", ErrUnknownFormat
	}
	dec, ok := reg.Get(name)
	if !ok {
		return nil, name, fmt.Errorf("%s: %w", name, ErrUnknownFormat)
	}

	src, err := dec.Decode(br)
	if err != nil {
		return nil, name, fmt.Errorf("decode %s: %w", name, err)
	}

	return src, name, nil
}
