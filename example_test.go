// SPDX-License-Identifier: EPL-2.0

package speechfront_test

import (
	"context"
	"fmt"

	"github.com/ik5/speechfront"
	"github.com/ik5/speechfront/audio"
	"github.com/ik5/speechfront/config"
)

func ExampleFrontend_Features() {
	cfg := config.Default()
	cfg.Converter = config.ConverterNative

	fe, err := speechfront.New(context.Background(), cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	// one second of silence at 16 kHz
	wf, err := fe.LoadAudio(context.Background(), audio.FromSamples(make([]float32, 16000)))
	if err != nil {
		fmt.Println(err)
		return
	}

	mel, valid, err := fe.Features([]*audio.Waveform{wf})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(mel.Shape(), valid)
	// Output: [1 80 3000] [100]
}
