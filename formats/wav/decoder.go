// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"io"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/formats/internal/pcm"
)

// Decoder decodes 16-bit PCM WAV of any rate and channel count.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	wr, err := NewReader(rs)
	if err != nil {
		return nil, err
	}
	if !wr.Info.PCM16() {
		return nil, ErrOnlyPCM16bitSupported
	}

	return pcm.NewSource(wr.dec, wr.Info.SampleRate, wr.Info.Channels), nil
}
