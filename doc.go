// SPDX-License-Identifier: EPL-2.0

// Package speechfront is the audio front end of a speech recognizer: it
// turns audio files, encoded bytes or raw samples into batches of
// normalised log-mel spectrograms.
//
// # Pipeline
//
// Every input goes through the same stages:
//
//	Input -> loader.Decoder -> loader.Batch -> audio.Fit -> feature.Extractor
//
// The decoder reads canonical WAV (16-bit PCM, mono, target rate) directly
// and hands everything else to a convert.Converter. The batch loader keeps
// input order and falls back to sequential decoding when concurrent
// dispatch is unavailable. Waveforms are shaped to a fixed number of
// samples and the extractor produces a [batch, mels, frames] tensor along
// with the number of frames that hold real audio.
//
// # Quick Start
//
//	cfg := config.Default()
//	fe, err := speechfront.New(ctx, cfg)
//	if err != nil {
//	    // convert.StartupError: ffmpeg is missing or broken
//	}
//
//	batch := fe.LoadMany(ctx, []audio.Input{
//	    audio.FromPath("a.mp3"),
//	    audio.FromPath("b.wav"),
//	})
//	defer batch.Close()
//
//	var waves []*audio.Waveform
//	for wf, err := range batch.All() {
//	    if err != nil {
//	        // this item failed, the others are still delivered
//	        continue
//	    }
//	    waves = append(waves, wf)
//	}
//
//	mel, valid, err := fe.Features(waves)
//
// # Converters
//
// Two converters are available. convert.FFmpeg runs the ffmpeg binary and
// is chosen by convert.Probe at startup, which prefers the soxr resampler
// and falls back to swr with a warning. convert.Native decodes WAV, MP3,
// Ogg Vorbis and AIFF in process and needs no external tools.
//
// # Configuration
//
// See package config for the YAML keys and SPEECHFRONT_* environment
// variables.
package speechfront
