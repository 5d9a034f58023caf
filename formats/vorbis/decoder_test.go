// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

type fakeOgg struct {
	rate, channels int
	data           []float32
}

func (f *fakeOgg) SampleRate() int { return f.rate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestSource_WholeFrames(t *testing.T) {
	t.Parallel()

	src := newStream(&fakeOgg{rate: 48000, channels: 2, data: []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}})

	buf := make([]float32, 5)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Errorf("ReadSamples() n = %d, want 4 (two stereo frames)", n)
	}

	n, _ = src.ReadSamples(buf)
	if n != 2 {
		t.Errorf("second ReadSamples() n = %d, want 2", n)
	}

	if _, err := src.ReadSamples(buf); err != io.EOF {
		t.Errorf("final ReadSamples() error = %v, want io.EOF", err)
	}
}

func TestSource_TinyBuffer(t *testing.T) {
	t.Parallel()

	src := newStream(&fakeOgg{rate: 48000, channels: 2, data: []float32{0.1, 0.2}})
	if n, err := src.ReadSamples(make([]float32, 1)); n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v; want 0, nil", n, err)
	}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader([]byte("OggS but not really"))); err == nil {
		t.Error("Decode() error = nil, want error")
	}
}

func TestSource_Format(t *testing.T) {
	t.Parallel()

	src := newStream(&fakeOgg{rate: 44100, channels: 3})
	if src.SampleRate() != 44100 || src.Channels() != 3 {
		t.Errorf("format = %d Hz %d ch, want 44100 Hz 3 ch", src.SampleRate(), src.Channels())
	}
	if src.BufSize()%3 != 0 {
		t.Errorf("BufSize() = %d, not a whole number of frames", src.BufSize())
	}
}
