// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/speechfront/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Info is the fmt chunk of a WAV container.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Format     int
}

// PCM16 reports whether samples are plain 16-bit integer PCM.
func (i Info) PCM16() bool {
	return (i.Format == formatPCM || i.Format == formatExtensible) && i.BitDepth == 16
}

// Matches reports whether the container is 16-bit PCM at exactly the given
// rate and channel count.
func (i Info) Matches(sampleRate, channels int) bool {
	return i.PCM16() && i.SampleRate == sampleRate && i.Channels == channels
}

func (i Info) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit, format %d", i.SampleRate, i.Channels, i.BitDepth, i.Format)
}

// Reader parses a RIFF/WAVE container. Headers are read by NewReader; the
// data chunk is read lazily.
type Reader struct {
	dec  *gowav.Decoder
	Info Info
}

// NewReader parses the RIFF header and fmt chunk. Unknown chunks before
// "fmt " are skipped.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	dec := gowav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, ErrNotWavFile
	}

	return &Reader{
		dec: dec,
		Info: Info{
			SampleRate: int(dec.SampleRate),
			Channels:   int(dec.NumChans),
			BitDepth:   int(dec.BitDepth),
			Format:     int(dec.WavAudioFormat),
		},
	}, nil
}

// ReadAll returns every sample, interleaved, divided by 32768.
func (r *Reader) ReadAll() ([]float32, error) {
	if !r.Info.PCM16() {
		return nil, ErrOnlyPCM16bitSupported
	}

	buf, err := r.dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}

	out := make([]float32, len(buf.Data))
	utils.IntsToFloat32(out, buf.Data)

	return out, nil
}

// ReadCanonical reads rs only when it is 16-bit PCM with exactly the given
// rate and channel count. Otherwise it returns ErrNotCanonical along with
// the Info it found, so callers can fall back to a converter.
func ReadCanonical(rs io.ReadSeeker, sampleRate, channels int) ([]float32, Info, error) {
	r, err := NewReader(rs)
	if err != nil {
		return nil, Info{}, err
	}
	if !r.Info.Matches(sampleRate, channels) {
		return nil, r.Info, fmt.Errorf("%v: %w", r.Info, ErrNotCanonical)
	}

	samples, err := r.ReadAll()
	if err != nil {
		return nil, r.Info, err
	}

	return samples, r.Info, nil
}
