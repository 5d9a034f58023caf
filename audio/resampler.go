// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/speechfront/utils"
)

// Resampler streams src at a new sample rate using Catmull-Rom cubic
// interpolation. Channel count is preserved. When downsampling, a one-pole
// low-pass runs on the input to tame aliasing.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// win[1] and win[2] bracket the output position; win[0] and win[3]
	// are the outer taps. valid marks frames that came from src rather
	// than edge duplication.
	win   [4][]float32
	valid [4]bool
	pos   float64

	buf      []float32
	off      int
	fill     int
	srcErr   error
	primed   bool
	finished bool

	lowpass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		buf:      make([]float32, 4096-4096%channels),
		lowpass:  ratio > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies one source frame into dst, refilling the read buffer as
// needed. It returns io.EOF once src is drained.
func (r *Resampler) nextFrame(dst []float32, first bool) error {
	for r.off >= r.fill {
		if r.srcErr != nil {
			return r.srcErr
		}
		n, err := r.src.ReadSamples(r.buf)
		r.off, r.fill = 0, n-n%r.channels
		if err != nil {
			r.srcErr = err
		}
	}

	copy(dst, r.buf[r.off:r.off+r.channels])
	r.off += r.channels

	if r.lowpass {
		if first {
			copy(r.state, dst)
		}
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return nil
}

func (r *Resampler) prime() error {
	if err := r.nextFrame(r.win[1], true); err != nil {
		return err
	}
	copy(r.win[0], r.win[1])
	r.valid[0], r.valid[1] = true, true

	for i := 2; i < 4; i++ {
		err := r.nextFrame(r.win[i], false)
		if errors.Is(err, io.EOF) {
			copy(r.win[i], r.win[i-1])
			continue
		}
		if err != nil {
			return err
		}
		r.valid[i] = true
	}
	r.primed = true

	return nil
}

func (r *Resampler) advance() error {
	w0 := r.win[0]
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], w0
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	err := r.nextFrame(r.win[3], false)
	if errors.Is(err, io.EOF) {
		copy(r.win[3], r.win[2])
		r.valid[3] = false
		return nil
	}
	if err != nil {
		return err
	}
	r.valid[3] = true

	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.finished {
		return 0, io.EOF
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			if errors.Is(err, io.EOF) {
				r.finished = true
			}
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0
	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, fmt.Errorf("%w", err)
			}
		}

		if !r.valid[1] {
			r.finished = true
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CatmullRom(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
