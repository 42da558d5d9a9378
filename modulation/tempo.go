// SPDX-License-Identifier: EPL-2.0

package modulation

// Rate is a tempo-synced LFO period expressed as a note value.
type Rate uint8

const (
	Rate1_32 Rate = iota
	Rate1_16T
	Rate1_16
	Rate1_16D
	Rate1_8T
	Rate1_8
	Rate1_8D
	Rate1_4T
	Rate1_4
	Rate1_4D
	Rate1_2T
	Rate1_2
	Rate1_2D
	Rate1_1

	NumRates
)

// DefaultBPM is used when no host tempo is known.
const DefaultBPM = 120

var rateNames = [NumRates]string{
	"1/32", "1/16T", "1/16", "1/16D", "1/8T", "1/8", "1/8D",
	"1/4T", "1/4", "1/4D", "1/2T", "1/2", "1/2D", "1/1",
}

// rateMultipliers are cycles per beat.
var rateMultipliers = [NumRates]float32{
	8, 6, 4, 4 / 1.5, 3, 2, 2 / 1.5,
	1.5, 1, 1 / 1.5, 0.75, 0.5, 0.5 / 1.5, 0.25,
}

func (r Rate) String() string {
	if r >= NumRates {
		return "1/4"
	}

	return rateNames[r]
}

// Multiplier returns cycles per beat. Unknown rates count as a quarter
// note.
func (r Rate) Multiplier() float32 {
	if r >= NumRates {
		return 1
	}

	return rateMultipliers[r]
}

// ParseRate maps a name such as "1/8T" to a Rate.
func ParseRate(name string) (Rate, bool) {
	for i, n := range rateNames {
		if n == name {
			return Rate(i), true
		}
	}

	return Rate1_4, false
}

// SyncedFrequency returns the LFO frequency in Hz for rate at bpm. A
// non-positive bpm falls back to DefaultBPM.
func SyncedFrequency(bpm float64, rate Rate) float32 {
	if bpm <= 0 {
		bpm = DefaultBPM
	}

	return float32(bpm/60) * rate.Multiplier()
}
