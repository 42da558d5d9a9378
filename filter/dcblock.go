// SPDX-License-Identifier: EPL-2.0

package filter

import "math"

// DCCutoff is the corner frequency of the output DC blocker.
const DCCutoff = 15

// DCBlocker is a first-order RC high-pass applied per channel:
// y[n] = α·(y[n-1] + x[n] − x[n-1]) with α = RC/(RC + 1/fs).
type DCBlocker struct {
	alpha   float32
	prevIn  []float32
	prevOut []float32
}

// Prepare sizes the blocker for channels at sampleRate and clears it.
func (d *DCBlocker) Prepare(sampleRate float64, channels int, cutoff float64) {
	rc := 1 / (2 * math.Pi * cutoff)
	dt := 1 / sampleRate
	d.alpha = float32(rc / (rc + dt))

	if cap(d.prevIn) < channels {
		d.prevIn = make([]float32, channels)
		d.prevOut = make([]float32, channels)
	}
	d.prevIn = d.prevIn[:channels]
	d.prevOut = d.prevOut[:channels]
	d.Reset()
}

func (d *DCBlocker) Reset() {
	clear(d.prevIn)
	clear(d.prevOut)
}

// Process filters data in place as channel ch. Channels beyond those
// prepared are left untouched.
func (d *DCBlocker) Process(ch int, data []float32) {
	if ch >= len(d.prevIn) {
		return
	}

	xp, yp := d.prevIn[ch], d.prevOut[ch]
	for i, x := range data {
		y := d.alpha * (yp + x - xp)
		data[i] = y
		xp, yp = x, y
	}
	d.prevIn[ch], d.prevOut[ch] = xp, yp
}
