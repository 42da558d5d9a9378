// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/utils"
)

const (
	// MeterFloor is the lowest level the meter reports, in dB.
	MeterFloor = -100
	// MeterFallSeconds is how long the display takes to fall to a new
	// lower peak.
	MeterFallSeconds = 0.5
)

// Meter tracks the output peak per channel. The peak jumps up at once and
// the display value falls back slowly. Values are readable from any
// goroutine.
type Meter struct {
	channels int
	peak     [MaxChannels]utils.AtomicFloat32
	display  [MaxChannels]utils.AtomicFloat32
	fall     [MaxChannels]modulation.Smoother
}

func (m *Meter) prepare(sampleRate float64, channels int) {
	m.channels = min(channels, MaxChannels)
	for ch := range MaxChannels {
		m.fall[ch] = modulation.NewSmoother(MeterFloor)
		m.fall[ch].Reset(sampleRate, MeterFallSeconds)
		m.peak[ch].Store(MeterFloor)
		m.display[ch].Store(MeterFloor)
	}
}

func (m *Meter) update(buf *audio.Buffer, n int) {
	for ch := range min(m.channels, buf.Channels()) {
		f := &m.fall[ch]
		f.Skip(n)

		db := utils.GainToDecibels(buf.Magnitude(ch, 0, n), MeterFloor)
		if db < f.Current() {
			f.SetTarget(db)
		} else {
			f.SetCurrentAndTarget(db)
		}

		m.peak[ch].Store(db)
		m.display[ch].Store(f.Current())
	}
}

// Peak is the loudest sample of the last block on ch, in dB.
func (m *Meter) Peak(ch int) float32 {
	if ch < 0 || ch >= MaxChannels {
		return MeterFloor
	}

	return m.peak[ch].Load()
}

// Display is the smoothed falling level of ch, in dB.
func (m *Meter) Display(ch int) float32 {
	if ch < 0 || ch >= MaxChannels {
		return MeterFloor
	}

	return m.display[ch].Load()
}
