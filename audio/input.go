// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Kind tells which variant an Input holds.
type Kind int

const (
	KindPath Kind = iota
	KindBytes
	KindSamples
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindBytes:
		return "bytes"
	case KindSamples:
		return "samples"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Input is one audio source handed to the loader: a file on disk, an
// encoded container held in memory, or samples that are already decoded.
// The zero value is an empty path and is rejected by the decoder.
type Input struct {
	kind    Kind
	path    string
	data    []byte
	samples []float32
}

// FromPath refers to an audio file of any container ffmpeg understands.
func FromPath(path string) Input {
	return Input{kind: KindPath, path: path}
}

// FromBytes wraps an encoded container kept in memory. The slice is not
// copied; callers must not modify it until decoding finishes.
func FromBytes(data []byte) Input {
	return Input{kind: KindBytes, data: data}
}

// FromSamples wraps mono samples that are already at the decoder's target
// rate. No resampling is done for this variant.
func FromSamples(samples []float32) Input {
	return Input{kind: KindSamples, samples: samples}
}

func (in Input) Kind() Kind         { return in.kind }
func (in Input) Path() string       { return in.path }
func (in Input) Bytes() []byte      { return in.data }
func (in Input) Samples() []float32 { return in.samples }

// String describes the input for logs without dumping its payload.
func (in Input) String() string {
	switch in.kind {
	case KindPath:
		return in.path
	case KindBytes:
		return fmt.Sprintf("<%d bytes>", len(in.data))
	case KindSamples:
		return fmt.Sprintf("<%d samples>", len(in.samples))
	default:
		return in.kind.String()
	}
}
