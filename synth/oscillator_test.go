// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"testing"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/filter"
	"github.com/ik5/scansynth/reader"
)

func openCircles(n int) []*reader.Params {
	params := make([]*reader.Params, n)
	for i := range params {
		p := reader.NewParams(reader.Circle)
		p.SetFilterType(filter.Bypass)
		p.Mod(reader.TargetVolume).SetAmount(0)
		params[i] = p
	}

	return params
}

func TestOscillatorSumsReaders(t *testing.T) {
	t.Parallel()

	img := bitmap.Uniform(8, 8, 255)
	gain := float32(math.Sqrt2 / 2)

	for _, n := range []int{0, 1, 3} {
		o := NewOscillator(openCircles(n))
		o.Prepare(48000, 2, 64)
		o.SetFrequency(440)

		out := audio.NewBuffer(2, 80)
		o.Process(img, out, 16, 64, nil)

		want := float32(n) * gain
		for i, v := range out.Channel(1) {
			w := want
			if i < 16 {
				w = 0
			}
			if math.Abs(float64(v-w)) > 1e-5 {
				t.Fatalf("%d readers: frame %d = %v, want %v", n, i, v, w)
			}
		}
	}
}

func TestOscillatorGrowsScratch(t *testing.T) {
	t.Parallel()

	o := NewOscillator(openCircles(2))
	o.Prepare(48000, 1, 16)

	out := audio.NewBuffer(2, 128)
	o.Process(bitmap.Uniform(8, 8, 255), out, 0, 128, nil)

	if out.Channel(1)[127] == 0 {
		t.Error("second channel of a larger block stayed silent")
	}
}
