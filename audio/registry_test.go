// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/ik5/speechfront/internal/audiotest"
)

type stubDecoder struct {
	name string
}

func (d *stubDecoder) Decode(io.Reader) (Source, error) {
	return audiotest.NewSilentSource(44100, 2, 100), nil
}

type failingDecoder struct{}

func (failingDecoder) Decode(io.Reader) (Source, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &stubDecoder{name: "wav"}
	registry.Register("wav", wav)
	registry.Register("broken", failingDecoder{})

	tests := []struct {
		format string
		wantOK bool
	}{
		{"wav", true},
		{"broken", true},
		{"flac", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
		})
	}

	got, _ := registry.Get("wav")
	if got != wav {
		t.Error("Get() returned a different decoder instance")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := &stubDecoder{name: "first"}
	second := &stubDecoder{name: "second"}
	registry.Register("wav", first)
	registry.Register("wav", second)

	got, _ := registry.Get("wav")
	if got != second {
		t.Error("Register() did not replace the previous decoder")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, name := range []string{"ogg", "wav", "mp3"} {
		registry.Register(name, &stubDecoder{name: name})
	}

	got := registry.Formats()
	want := []string{"mp3", "ogg", "wav"}
	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &stubDecoder{name: "wav"})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				registry.Register("mp3", &stubDecoder{name: "mp3"})
				return
			}
			if _, ok := registry.Get("wav"); !ok {
				t.Error("Get(wav) failed under concurrent access")
			}
		}(i)
	}
	wg.Wait()
}
