// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/internal/audiotest"
)

// Example_resampleToMono converts a one second stereo 44.1 kHz tone into
// the mono 16 kHz stream the feature extractor expects.
func Example_resampleToMono() {
	src := audiotest.NewSineSource(44100, 2, 44100, 440.0)

	samples, err := audio.ResampleToMono(src, 16000, 4096)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	w := audio.NewWaveform(samples, 16000)
	fmt.Printf("%.1f seconds\n", w.Duration())
	// Output: 1.0 seconds
}

// ExampleFit pads a short clip to a fixed window.
func ExampleFit() {
	clip := []float32{0.1, 0.2, 0.3}
	fmt.Println(audio.Fit(clip, 5))
	fmt.Println(audio.Fit(clip, 2))
	// Output:
	// [0.1 0.2 0.3 0 0]
	// [0.1 0.2]
}
