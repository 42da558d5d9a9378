// SPDX-License-Identifier: EPL-2.0

package filter

import (
	"math"

	"github.com/ik5/scansynth/utils"
)

// Type selects the SVF output.
type Type uint8

const (
	Lowpass Type = iota
	Highpass
	Bandpass
	// Bypass passes input through untouched.
	Bypass

	numTypes
)

var typeNames = [...]string{"lowpass", "highpass", "bandpass", "bypass"}

func (t Type) String() string {
	if t >= numTypes {
		return "unknown"
	}

	return typeNames[t]
}

// ParseType maps a name from String back to a Type.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}

	return Lowpass, false
}

const (
	MinCutoff        = 20
	MaxCutoff        = 20000
	MinResonance     = 0.1
	MaxResonance     = 18
	DefaultCutoff    = MaxCutoff
	DefaultResonance = 1

	// nyquistGuard keeps the cutoff below fs/2 where tan() blows up.
	nyquistGuard = 0.49
)

// SVF is a topology-preserving-transform state variable filter: stable
// under per-sample cutoff changes and free of the tuning error of the
// classic Chamberlin form.
type SVF struct {
	typ        Type
	sampleRate float64
	cutoff     float32
	resonance  float32

	g, r2, h float32
	s1, s2   float32
}

// NewSVF returns a lowpass at DefaultCutoff and DefaultResonance.
func NewSVF() *SVF {
	f := &SVF{}
	f.init()

	return f
}

func (f *SVF) init() {
	f.cutoff = DefaultCutoff
	f.resonance = DefaultResonance
}

// Prepare sets the sample rate and clears the state.
func (f *SVF) Prepare(sampleRate float64) {
	if f.cutoff == 0 {
		f.init()
	}
	f.sampleRate = sampleRate
	f.Reset()
	f.update()
}

// Reset clears the integrator state.
func (f *SVF) Reset() {
	f.s1, f.s2 = 0, 0
}

func (f *SVF) SetType(t Type) {
	if t >= numTypes {
		t = Lowpass
	}
	f.typ = t
}

func (f *SVF) Type() Type { return f.typ }

// Set changes cutoff (Hz) and resonance (Q). Both are clamped; the
// coefficients are recomputed only when a value actually changes.
func (f *SVF) Set(cutoff, resonance float32) {
	cutoff = f.clampCutoff(cutoff)
	resonance = utils.Clamp(resonance, MinResonance, MaxResonance)
	if cutoff == f.cutoff && resonance == f.resonance {
		return
	}

	f.cutoff = cutoff
	f.resonance = resonance
	f.update()
}

func (f *SVF) Cutoff() float32    { return f.cutoff }
func (f *SVF) Resonance() float32 { return f.resonance }

func (f *SVF) clampCutoff(hz float32) float32 {
	limit := float32(MaxCutoff)
	if f.sampleRate > 0 {
		limit = min(limit, float32(f.sampleRate*nyquistGuard))
	}
	// NaN fails both comparisons of Clamp; treat it as wide open.
	if hz != hz {
		return limit
	}

	return utils.Clamp(hz, MinCutoff, limit)
}

func (f *SVF) update() {
	if f.sampleRate <= 0 {
		return
	}

	f.cutoff = f.clampCutoff(f.cutoff)
	f.g = float32(math.Tan(math.Pi * float64(f.cutoff) / f.sampleRate))
	f.r2 = 1 / f.resonance
	f.h = 1 / (1 + f.r2*f.g + f.g*f.g)
}

// Process filters one sample. An unprepared filter passes input through.
func (f *SVF) Process(x float32) float32 {
	if f.typ == Bypass || f.sampleRate <= 0 {
		return x
	}

	hp := f.h * (x - f.s1*(f.g+f.r2) - f.s2)
	bp := hp*f.g + f.s1
	f.s1 = hp*f.g + bp
	lp := bp*f.g + f.s2
	f.s2 = bp*f.g + lp

	switch f.typ {
	case Highpass:
		return hp
	case Bandpass:
		return bp
	default:
		return lp
	}
}
