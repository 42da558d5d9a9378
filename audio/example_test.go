// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/internal/audiotest"
)

func Example_pipeline() {
	src := audiotest.NewSineSource(48000, 2, 48000, 440)
	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))

	fmt.Println(mono.SampleRate(), mono.Channels())
	// Output: 16000 1
}

func ExampleBuffer() {
	buf := audio.NewBuffer(2, 4)
	buf.AddSample(0, 1, 0.5)
	buf.AddSample(1, 1, -0.5)
	buf.ApplyGain(0, 4, 2)

	dst := make([]float32, 8)
	n := buf.Interleave(dst, 0, 4)
	fmt.Println(n, dst)
	// Output: 8 [0 0 1 -1 0 0 0 0]
}
