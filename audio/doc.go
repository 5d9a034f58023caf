// SPDX-License-Identifier: EPL-2.0

// Package audio holds the in-memory audio types and streaming primitives
// shared by the decoder, converter and feature packages.
//
// # Inputs and waveforms
//
// An Input is what callers hand to the loader: a path, an encoded
// container in memory, or samples that are already decoded.
//
//	in := audio.FromPath("speech.mp3")
//	in = audio.FromBytes(data)
//	in = audio.FromSamples(pcm) // mono, already at the target rate
//
// Decoding yields a Waveform, mono float32 samples at one sample rate.
// Duration is always Len()/SampleRate.
//
// # Shaping
//
// Fit gives a waveform an exact length by truncating the end or appending
// zeros, never touching the front:
//
//	chunk := audio.Fit(wf.Samples, 480000)
//
// FitBatch applies Fit to every row and FitAxis does the same along one
// axis of a row-major N-d array.
//
// # Streams
//
// Source is a pull-based stream of interleaved float32 samples in [-1, 1].
// Container decoders return a Source; Resampler and MonoMixer wrap one:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//	samples, err := audio.Collect(mono, 4096)
//
// ReadSamples returns io.EOF once the stream is drained, possibly with the
// final samples in the same call.
//
// # Registry
//
// A Registry maps container names to decoders. Package formats fills one
// with every built-in decoder and sniffs the container from its first
// bytes.
package audio
