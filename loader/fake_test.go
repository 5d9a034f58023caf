// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/ik5/speechfront/convert"
	"github.com/ik5/speechfront/internal/audiotest"
)

// fakeConverter reads the first byte of its input as an item id and writes
// a canonical WAV holding id+1 samples. Hooks let a test slow down, fail or
// panic on a given id.
type fakeConverter struct {
	rate  int // output rate, the requested rate when zero
	delay func(id int) time.Duration
	fail  map[int]error
	panic map[int]bool

	mu     sync.Mutex
	inputs []string
}

func (f *fakeConverter) Backend() convert.Backend { return convert.BackendSoxr }

func (f *fakeConverter) Convert(ctx context.Context, in, out string, sampleRate int) error {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()

	data, err := os.ReadFile(in)
	if err != nil {
		return &convert.ConversionError{Input: in, ExitCode: 1, Err: err}
	}
	id := 0
	if len(data) > 0 {
		id = int(data[0])
	}

	if f.delay != nil {
		select {
		case <-time.After(f.delay(id)):
		case <-ctx.Done():
			return &convert.ConversionError{Input: in, ExitCode: -1, Err: ctx.Err()}
		}
	}
	if f.panic[id] {
		panic("converter exploded")
	}
	if err := f.fail[id]; err != nil {
		return &convert.ConversionError{Input: in, ExitCode: 1, Err: err}
	}

	rate := f.rate
	if rate == 0 {
		rate = sampleRate
	}

	return os.WriteFile(out, audiotest.WAV(rate, 1, audiotest.Ramp(id+1, 1)), 0o600)
}

func (f *fakeConverter) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}

// item is an encoded input that never parses as WAV, so it always goes
// through the converter.
func item(id int) []byte {
	return []byte{byte(id), 'n', 'o', 't', 'w', 'a', 'v'}
}

var errBoom = errors.New("boom")
