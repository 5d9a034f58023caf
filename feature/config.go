// SPDX-License-Identifier: EPL-2.0

package feature

import "fmt"

// Config sets the shape of the log-mel features.
type Config struct {
	NMels     int
	NFFT      int
	HopLength int
	// Padding zeros are appended to every waveform before the STFT.
	Padding    int
	SampleRate int
}

func DefaultConfig() Config {
	return Config{
		NMels:      NMels,
		NFFT:       NFFT,
		HopLength:  HopLength,
		SampleRate: SampleRate,
	}
}

func (c Config) Validate() error {
	switch {
	case c.NMels <= 0:
		return fmt.Errorf("n_mels %d: %w", c.NMels, ErrInvalidConfig)
	case c.NFFT < 2:
		return fmt.Errorf("n_fft %d: %w", c.NFFT, ErrInvalidConfig)
	case c.HopLength <= 0:
		return fmt.Errorf("hop_length %d: %w", c.HopLength, ErrInvalidConfig)
	case c.Padding < 0:
		return fmt.Errorf("padding %d: %w", c.Padding, ErrInvalidConfig)
	case c.SampleRate <= 0:
		return fmt.Errorf("sample_rate %d: %w", c.SampleRate, ErrInvalidConfig)
	}

	return nil
}

// Bins is the number of frequency bins of one STFT frame.
func (c Config) Bins() int { return c.NFFT/2 + 1 }
