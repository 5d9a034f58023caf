// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/convert"
	"github.com/ik5/speechfront/internal/audiotest"
)

func newTestDecoder(t *testing.T, conv convert.Converter) *Decoder {
	t.Helper()
	log, _ := test.NewNullLogger()
	dec := NewDecoder(conv, log)
	dec.TempDir = t.TempDir()
	return dec
}

func assertNoTempLeft(t *testing.T, dec *Decoder) {
	t.Helper()
	entries, err := os.ReadDir(dec.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp dirs must be removed")
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecode_Samples(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{}
	dec := newTestDecoder(t, conv)
	in := []float32{0.1, 0.2, 0.3}

	wf, err := dec.Decode(context.Background(), audio.FromSamples(in))
	require.NoError(t, err)
	assert.Equal(t, in, wf.Samples)
	assert.Equal(t, 16000, wf.SampleRate)
	assert.Empty(t, conv.seen())
}

func TestDecode_CanonicalFastPath(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV(16000, 1, audiotest.Ramp(16000, 2))
	path := writeFile(t, "speech.wav", data)

	tests := []struct {
		name string
		in   audio.Input
	}{
		{"path", audio.FromPath(path)},
		{"bytes", audio.FromBytes(data)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &fakeConverter{}
			dec := newTestDecoder(t, conv)

			wf, err := dec.Decode(context.Background(), tt.in)
			require.NoError(t, err)
			assert.Empty(t, conv.seen(), "canonical input must not be converted")
			assert.Equal(t, 16000, wf.Len())
			assert.InDelta(t, 1.0, wf.Duration(), 1e-9)
			assert.Equal(t, float32(2)/32768, wf.Samples[1])
		})
	}
}

func TestDecode_NonCanonicalIsConverted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"other rate", audiotest.WAV(44100, 1, audiotest.Silence(441))},
		{"stereo at target rate", audiotest.WAV(16000, 2, audiotest.Silence(320))},
		{"not a wav", item(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/path", func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "in.bin", tt.data)
			conv := &fakeConverter{}
			dec := newTestDecoder(t, conv)

			wf, err := dec.Decode(context.Background(), audio.FromPath(path))
			require.NoError(t, err)
			assert.Equal(t, []string{path}, conv.seen())
			assert.Equal(t, 16000, wf.SampleRate)
			assert.Positive(t, wf.Len())
			assertNoTempLeft(t, dec)
		})

		t.Run(tt.name+"/bytes", func(t *testing.T) {
			t.Parallel()

			conv := &fakeConverter{}
			dec := newTestDecoder(t, conv)

			_, err := dec.Decode(context.Background(), audio.FromBytes(tt.data))
			require.NoError(t, err)

			seen := conv.seen()
			require.Len(t, seen, 1)
			assert.Equal(t, bytesName, filepath.Base(seen[0]))
			assert.Equal(t, dec.TempDir, filepath.Dir(filepath.Dir(seen[0])))
			assertNoTempLeft(t, dec)
		})
	}
}

func TestDecode_ConversionFailure(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{fail: map[int]error{3: errBoom}}
	dec := newTestDecoder(t, conv)

	_, err := dec.Decode(context.Background(), audio.FromBytes(item(3)))

	var convErr *convert.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, 1, convErr.ExitCode)
	assert.ErrorIs(t, err, convert.ErrConversion)
	assert.ErrorIs(t, err, errBoom)
	assertNoTempLeft(t, dec)
}

func TestDecode_ConvertedOutputWrongFormat(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{rate: 8000}
	dec := newTestDecoder(t, conv)

	_, err := dec.Decode(context.Background(), audio.FromBytes(item(1)))

	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, 8000, fmtErr.Got.SampleRate)
	assert.Equal(t, 16000, fmtErr.Want.SampleRate)
	assertNoTempLeft(t, dec)
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	dec := newTestDecoder(t, &fakeConverter{})

	_, err := dec.Decode(context.Background(), audio.FromPath(""))
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = dec.Decode(context.Background(), audio.FromBytes(nil))
	assert.ErrorIs(t, err, audio.ErrEmptyInput)

	noConv := newTestDecoder(t, nil)
	_, err = noConv.Decode(context.Background(), audio.FromBytes(item(1)))
	assert.ErrorIs(t, err, ErrNoConverter)
}

func TestDecode_MissingFile(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{}
	dec := newTestDecoder(t, conv)

	_, err := dec.Decode(context.Background(), audio.FromPath(filepath.Join(t.TempDir(), "gone.mp3")))
	assert.ErrorIs(t, err, convert.ErrConversion)
	assertNoTempLeft(t, dec)
}
