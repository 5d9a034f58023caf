// SPDX-License-Identifier: EPL-2.0

package feature

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Filterbank is a row-major [Mels, Bins] matrix of triangular mel filters.
// It is read-only once built.
type Filterbank struct {
	Mels    int       `msgpack:"mels"`
	Bins    int       `msgpack:"bins"`
	Weights []float32 `msgpack:"weights"`
}

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melBreakHz    = 1000.0
	melBreak      = melBreakHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

func hzToMel(hz float64) float64 {
	if hz < melBreakHz {
		return hz / melLinearStep
	}
	return melBreak + math.Log(hz/melBreakHz)/melLogStep
}

func melToHz(mel float64) float64 {
	if mel < melBreak {
		return mel * melLinearStep
	}
	return melBreakHz * math.Exp(melLogStep*(mel-melBreak))
}

// NewFilterbank builds nMels Slaney-normalised triangular filters covering
// 0 Hz to the Nyquist frequency over nFFT/2+1 bins.
func NewFilterbank(sampleRate, nFFT, nMels int) (*Filterbank, error) {
	if sampleRate <= 0 || nFFT < 2 || nMels <= 0 {
		return nil, fmt.Errorf("filterbank sr=%d n_fft=%d n_mels=%d: %w", sampleRate, nFFT, nMels, ErrInvalidConfig)
	}

	bins := nFFT/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * float64(sampleRate) / float64(nFFT)
	}

	top := hzToMel(float64(sampleRate) / 2)
	melFreqs := make([]float64, nMels+2)
	for i := range melFreqs {
		melFreqs[i] = melToHz(top * float64(i) / float64(nMels+1))
	}

	fb := &Filterbank{Mels: nMels, Bins: bins, Weights: make([]float32, nMels*bins)}
	for m := range nMels {
		lo, mid, hi := melFreqs[m], melFreqs[m+1], melFreqs[m+2]
		norm := 2 / (hi - lo)
		row := fb.Weights[m*bins : (m+1)*bins]
		for k, f := range fftFreqs {
			lower := (f - lo) / (mid - lo)
			upper := (hi - f) / (hi - mid)
			row[k] = float32(max(0, min(lower, upper)) * norm)
		}
	}

	return fb, nil
}

// Row is filter m as a view into Weights.
func (fb *Filterbank) Row(m int) []float32 {
	return fb.Weights[m*fb.Bins : (m+1)*fb.Bins]
}

func (fb *Filterbank) validate() error {
	if fb.Mels <= 0 || fb.Bins <= 0 || len(fb.Weights) != fb.Mels*fb.Bins {
		return fmt.Errorf("%d x %d with %d weights: %w", fb.Mels, fb.Bins, len(fb.Weights), ErrBadAsset)
	}
	return nil
}

type cacheKey struct{ sampleRate, nFFT, nMels int }

var (
	cacheMu sync.Mutex
	cache   = map[cacheKey]*Filterbank{}
)

// CachedFilterbank returns a process-wide shared filterbank, building it on
// first use.
func CachedFilterbank(sampleRate, nFFT, nMels int) (*Filterbank, error) {
	key := cacheKey{sampleRate, nFFT, nMels}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if fb, ok := cache[key]; ok {
		return fb, nil
	}
	fb, err := NewFilterbank(sampleRate, nFFT, nMels)
	if err != nil {
		return nil, err
	}
	cache[key] = fb

	return fb, nil
}

const assetPrefix = "mel_"

// SaveFilterbanks writes filterbanks as a msgpack map keyed "mel_<n>".
func SaveFilterbanks(w io.Writer, fbs ...*Filterbank) error {
	asset := make(map[string]*Filterbank, len(fbs))
	for _, fb := range fbs {
		if err := fb.validate(); err != nil {
			return err
		}
		asset[assetPrefix+strconv.Itoa(fb.Mels)] = fb
	}

	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(asset); err != nil {
		return fmt.Errorf("encode filterbanks: %w", err)
	}

	return nil
}

// LoadFilterbanks reads an asset written by SaveFilterbanks and returns the
// filterbanks by mel count.
func LoadFilterbanks(r io.Reader) (map[int]*Filterbank, error) {
	var asset map[string]*Filterbank
	if err := msgpack.NewDecoder(r).Decode(&asset); err != nil {
		return nil, fmt.Errorf("decode filterbanks: %w", err)
	}

	out := make(map[int]*Filterbank, len(asset))
	for key, fb := range asset {
		n, err := strconv.Atoi(strings.TrimPrefix(key, assetPrefix))
		if err != nil || !strings.HasPrefix(key, assetPrefix) {
			return nil, fmt.Errorf("key %q: %w", key, ErrBadAsset)
		}
		if fb == nil {
			return nil, fmt.Errorf("key %q is empty: %w", key, ErrBadAsset)
		}
		if err := fb.validate(); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if fb.Mels != n {
			return nil, fmt.Errorf("key %q holds %d mels: %w", key, fb.Mels, ErrBadAsset)
		}
		out[n] = fb
	}

	return out, nil
}

// MelCounts lists the keys of a loaded asset in ascending order.
func MelCounts(fbs map[int]*Filterbank) []int {
	out := make([]int, 0, len(fbs))
	for n := range fbs {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
