// SPDX-License-Identifier: EPL-2.0

package feature

// Defaults for 16 kHz speech models with 30 second windows.
const (
	SampleRate  = 16000
	NFFT        = 400
	HopLength   = 160
	ChunkLength = 30 // seconds
	NSamples    = ChunkLength * SampleRate
	NFrames     = NSamples / HopLength
	NMels       = 80
	NMelsLarge  = 128

	LogFloor  = 1e-10
	ClipRange = 8.0
	Offset    = 4.0
	Scale     = 4.0
)
