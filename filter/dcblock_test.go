// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"math"
	"testing"
)

func TestDCBlockerRemovesOffset(t *testing.T) {
	t.Parallel()

	var d DCBlocker
	d.Prepare(48000, 2, DCCutoff)

	block := make([]float32, 48000)
	for i := range block {
		block[i] = 0.5
	}
	d.Process(0, block)

	if last := block[len(block)-1]; math.Abs(float64(last)) > 1e-3 {
		t.Errorf("offset after 1 s = %v", last)
	}
	if block[0] < 0.49 {
		t.Errorf("first sample = %v, step should pass through", block[0])
	}
}

func TestDCBlockerPassesAudio(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000

	var d DCBlocker
	d.Prepare(sampleRate, 1, DCCutoff)

	block := make([]float32, sampleRate/10)
	for i := range block {
		block[i] = float32(math.Sin(2 * math.Pi * 1000 * float64(i) / sampleRate))
	}
	d.Process(0, block)

	var peak float64
	for _, v := range block[len(block)/2:] {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	if peak < 0.99 {
		t.Errorf("1 kHz peak = %v, want ~1", peak)
	}
}

func TestDCBlockerIgnoresExtraChannels(t *testing.T) {
	t.Parallel()

	var d DCBlocker
	d.Prepare(48000, 1, DCCutoff)

	data := []float32{1, 1}
	d.Process(3, data)
	if data[0] != 1 || data[1] != 1 {
		t.Error("unprepared channel was modified")
	}
}
