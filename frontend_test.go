// SPDX-License-Identifier: EPL-2.0

package speechfront

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/config"
	"github.com/ik5/speechfront/convert"
	"github.com/ik5/speechfront/feature"
	"github.com/ik5/speechfront/internal/audiotest"
)

func nativeConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Converter = config.ConverterNative
	cfg.TempDir = t.TempDir()
	return cfg
}

func newTestFrontend(t *testing.T, cfg config.Config, opts ...Option) *Frontend {
	t.Helper()
	log, _ := test.NewNullLogger()
	fe, err := New(context.Background(), cfg, append([]Option{WithLogger(log)}, opts...)...)
	require.NoError(t, err)
	return fe
}

func TestFrontend_OneSecondSilence(t *testing.T) {
	t.Parallel()

	fe := newTestFrontend(t, nativeConfig(t))

	wf, err := fe.LoadAudio(context.Background(), audio.FromSamples(make([]float32, 16000)))
	require.NoError(t, err)
	assert.Equal(t, 16000, wf.Len())
	assert.InDelta(t, 1.0, wf.Duration(), 1e-12)

	mel, valid, err := fe.Features([]*audio.Waveform{wf})
	require.NoError(t, err)
	assert.Equal(t, []int{1, feature.NMels, feature.NFrames}, mel.Shape())
	assert.Equal(t, []int{100}, valid)
	for _, v := range mel.Data {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
	}
}

func TestFrontend_Process(t *testing.T) {
	t.Parallel()

	cfg := nativeConfig(t)
	fe := newTestFrontend(t, cfg)

	dir := t.TempDir()
	resampled := filepath.Join(dir, "cd.wav")
	require.NoError(t, os.WriteFile(resampled, audiotest.WAV(44100, 2, audiotest.Silence(2*44100)), 0o644))

	ins := []audio.Input{
		audio.FromPath(resampled),
		audio.FromBytes(audiotest.WAV(16000, 1, audiotest.Ramp(8000, 3))),
		audio.FromSamples(make([]float32, 3200)),
	}

	mel, valid, err := fe.Process(context.Background(), ins)
	require.NoError(t, err)
	assert.Equal(t, 3, mel.Batch)
	assert.InDelta(t, 100, valid[0], 2)
	assert.Equal(t, []int{50, 20}, valid[1:])

	entries, err := os.ReadDir(cfg.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFrontend_ProcessReportsFailingInput(t *testing.T) {
	t.Parallel()

	fe := newTestFrontend(t, nativeConfig(t))

	_, _, err := fe.Process(context.Background(), []audio.Input{
		audio.FromSamples(make([]float32, 1600)),
		audio.FromBytes([]byte("plain text, not audio")),
	})
	assert.ErrorIs(t, err, convert.ErrConversion)
	assert.Contains(t, err.Error(), "<21 bytes>")
}

func TestFrontend_StrategyFollowsConfig(t *testing.T) {
	t.Parallel()

	cfg := nativeConfig(t)
	cfg.Parallel = false
	fe := newTestFrontend(t, cfg)

	b := fe.LoadMany(context.Background(), []audio.Input{audio.FromSamples([]float32{0})})
	defer b.Close()
	assert.Equal(t, "sequential", b.Strategy().String())
}

func TestNew_MissingFFmpeg(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.FFmpegPath = filepath.Join(t.TempDir(), "no-ffmpeg-here")
	log, _ := test.NewNullLogger()

	_, err := New(context.Background(), cfg, WithLogger(log))

	var startErr *convert.StartupError
	require.ErrorAs(t, err, &startErr)
	assert.Contains(t, err.Error(), convert.InstallHint)
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := nativeConfig(t)
	cfg.Workers = 0

	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNew_Filterbank(t *testing.T) {
	t.Parallel()

	fb128, err := feature.NewFilterbank(feature.SampleRate, feature.NFFT, feature.NMelsLarge)
	require.NoError(t, err)

	log, _ := test.NewNullLogger()
	_, err = New(context.Background(), nativeConfig(t), WithLogger(log), WithFilterbank(fb128))
	assert.ErrorIs(t, err, feature.ErrFilterbankShape)

	path := filepath.Join(t.TempDir(), "mel_filters.msgpack")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, feature.SaveFilterbanks(f, fb128))
	require.NoError(t, f.Close())

	cfg := nativeConfig(t)
	cfg.MelFiltersPath = path
	_, err = New(context.Background(), cfg, WithLogger(log))
	assert.ErrorIs(t, err, feature.ErrFilterbankShape, "asset has no 80 mel filterbank")

	cfg.NMels = feature.NMelsLarge
	fe := newTestFrontend(t, cfg)
	assert.Equal(t, fb128, fe.Extractor().Filterbank())
}

func TestNew_WithConverter(t *testing.T) {
	t.Parallel()

	cfg := config.Default() // ffmpeg, but never probed
	conv := convert.NewNative(nil, convert.BackendSwr, nil)
	fe := newTestFrontend(t, cfg, WithConverter(conv))
	assert.Same(t, conv, fe.Converter())
}
