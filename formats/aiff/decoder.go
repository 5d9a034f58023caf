// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF through go-audio/aiff.
package aiff

import (
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/formats/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return pcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans)), nil
}
