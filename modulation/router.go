// SPDX-License-Identifier: EPL-2.0

package modulation

import "math"

const (
	// PitchOctaves is the pitch swing at full modulation depth.
	PitchOctaves = 1
	// CutoffOctaves is the filter cutoff swing at full modulation depth.
	CutoffOctaves = 7
)

// Bipolar maps a unipolar signal in [0, 1] to [-1, 1].
func Bipolar(signal float32) float32 {
	return 2*signal - 1
}

// ApplyBipolar scales base by up to ±amount around itself:
// base·(1 + amount·(2s−1)).
func ApplyBipolar(base, amount, signal float32) float32 {
	return base * (1 + amount*Bipolar(signal))
}

// ApplyUnipolar is the volume law. With a positive amount the signal can
// only pull the value down from base (full signal leaves base untouched);
// with a negative amount the signal pulls it down as it rises.
func ApplyUnipolar(base, amount, signal float32) float32 {
	if amount >= 0 {
		return base * (1 + amount*(signal-1))
	}

	return base * (1 + amount*signal)
}

// ApplyPan offsets a pan position additively: base + amount·(2s−1).
func ApplyPan(base, amount, signal float32) float32 {
	return base + amount*Bipolar(signal)
}

// ApplyExponential scales base by 2^(amount·(2s−1)·octaves).
func ApplyExponential(base, amount, signal, octaves float32) float32 {
	if amount == 0 {
		return base
	}

	return base * float32(math.Exp2(float64(amount*Bipolar(signal)*octaves)))
}

// ApplyPitch bends a frequency by up to PitchOctaves.
func ApplyPitch(freq, amount, signal float32) float32 {
	return ApplyExponential(freq, amount, signal, PitchOctaves)
}

// ApplyCutoff moves a filter cutoff by up to CutoffOctaves.
func ApplyCutoff(cutoff, amount, signal float32) float32 {
	return ApplyExponential(cutoff, amount, signal, CutoffOctaves)
}

// SemitoneRatio converts a detune in semitones to a frequency ratio.
func SemitoneRatio(semitones float32) float32 {
	if semitones == 0 {
		return 1
	}

	return float32(math.Exp2(float64(semitones) / 12))
}

// NoteFrequency returns the equal-tempered frequency of a MIDI note, with
// A4 (69) at 440 Hz.
func NoteFrequency(note int) float32 {
	return float32(440 * math.Exp2(float64(note-69)/12))
}
