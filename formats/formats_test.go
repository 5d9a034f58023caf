// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/speechfront/internal/audiotest"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"wav", audiotest.WAV(16000, 1, nil), WAV},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFF"), AIFF},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFC"), AIFF},
		{"ogg", []byte("OggS\x00\x02"), Vorbis},
		{"id3", []byte("ID3\x04\x00"), MP3},
		{"mpeg sync", []byte{0xFF, 0xFB, 0x90, 0x64}, MP3},
		{"riff but not wave", []byte("RIFF\x00\x00\x00\x00AVI "), ""},
		{"text", []byte("hello"), ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		if got := Sniff(tt.header); got != tt.want {
			t.Errorf("%s: Sniff() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, name := range []string{WAV, MP3, Vorbis, AIFF} {
		if _, ok := reg.Get(name); !ok {
			t.Errorf("registry is missing %q", name)
		}
	}
}

func TestOpen_WAV(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(22050, 2, audiotest.Ramp(200, 3))
	src, name, err := Open(NewRegistry(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if name != WAV {
		t.Errorf("name = %q, want wav", name)
	}
	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Errorf("format = %d Hz %d ch, want 22050 Hz 2 ch", src.SampleRate(), src.Channels())
	}
}

func TestOpen_Unknown(t *testing.T) {
	t.Parallel()

	_, _, err := Open(NewRegistry(), bytes.NewReader([]byte("plain text, no audio")))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Open() error = %v, want ErrUnknownFormat", err)
	}
}
