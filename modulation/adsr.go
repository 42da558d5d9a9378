// SPDX-License-Identifier: EPL-2.0

package modulation

import (
	"github.com/ik5/scansynth/utils"
)

// Stage is the envelope state.
type Stage uint8

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
	StageSustain
	StageRelease
)

func (s Stage) String() string {
	switch s {
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	case StageSustain:
		return "sustain"
	case StageRelease:
		return "release"
	default:
		return "idle"
	}
}

// MaxEnvelopeTime bounds attack, decay and release, in seconds.
const MaxEnvelopeTime = 5

// EnvelopeParams are ADSR settings. Times are in seconds, sustain is a
// level in [0, 1].
type EnvelopeParams struct {
	Attack  float32
	Decay   float32
	Sustain float32
	Release float32
}

// DefaultEnvelopeParams is a soft organ-like shape.
var DefaultEnvelopeParams = EnvelopeParams{Attack: 0.1, Decay: 0.1, Sustain: 1, Release: 0.4}

// Clamped returns p with every field inside its range.
func (p EnvelopeParams) Clamped() EnvelopeParams {
	return EnvelopeParams{
		Attack:  utils.Clamp(p.Attack, 0, MaxEnvelopeTime),
		Decay:   utils.Clamp(p.Decay, 0, MaxEnvelopeTime),
		Sustain: utils.Clamp(p.Sustain, 0, 1),
		Release: utils.Clamp(p.Release, 0, MaxEnvelopeTime),
	}
}

// Envelope is a linear ADSR. Segments move at a constant rate: attack
// rises by 1/(attack·fs) per sample, decay falls to sustain over decay
// seconds, and release falls from wherever the level was at note-off to
// zero over release seconds.
type Envelope struct {
	sampleRate float64
	params     EnvelopeParams
	stage      Stage
	level      float32

	attackRate  float32
	decayRate   float32
	releaseRate float32

	latest utils.AtomicFloat32
}

// NewEnvelope returns an idle envelope with DefaultEnvelopeParams.
func NewEnvelope() *Envelope {
	e := &Envelope{params: DefaultEnvelopeParams}
	return e
}

// Prepare sets the sample rate and returns to idle.
func (e *Envelope) Prepare(sampleRate float64) {
	e.sampleRate = sampleRate
	e.Reset()
	e.recalculate()
}

// Reset silences the envelope immediately.
func (e *Envelope) Reset() {
	e.stage = StageIdle
	e.level = 0
	e.latest.Store(0)
}

// SetParams applies new settings. Rates change on the next sample; a
// sustaining envelope moves straight to the new sustain level.
func (e *Envelope) SetParams(p EnvelopeParams) {
	p = p.Clamped()
	if p == e.params {
		return
	}

	e.params = p
	e.recalculate()
}

func (e *Envelope) Params() EnvelopeParams { return e.params }

func (e *Envelope) recalculate() {
	rate := func(seconds, distance float32) float32 {
		if seconds <= 0 || e.sampleRate <= 0 {
			return -1
		}
		return distance / (seconds * float32(e.sampleRate))
	}

	e.attackRate = rate(e.params.Attack, 1)
	e.decayRate = rate(e.params.Decay, 1-e.params.Sustain)

	// A release in progress falls from its current level.
	if e.stage == StageRelease {
		e.releaseRate = rate(e.params.Release, e.level)
		if e.releaseRate <= 0 {
			e.Reset()
		}
		return
	}

	if e.stage == StageAttack && e.attackRate <= 0 {
		e.level = 1
		e.afterAttack()
	}
	if e.stage == StageDecay && (e.decayRate <= 0 || e.level <= e.params.Sustain) {
		e.stage = StageSustain
	}
	if e.stage == StageSustain {
		e.level = e.params.Sustain
	}
}

// NoteOn starts the attack from the current level, so retriggering during
// release does not jump.
func (e *Envelope) NoteOn() {
	switch {
	case e.attackRate > 0:
		e.stage = StageAttack
	case e.decayRate > 0:
		e.level = 1
		e.stage = StageDecay
	default:
		e.level = e.params.Sustain
		e.stage = StageSustain
	}
}

// NoteOff enters release. With a zero release time the envelope stops at
// once.
func (e *Envelope) NoteOff() {
	if e.stage == StageIdle {
		return
	}

	if e.params.Release > 0 && e.sampleRate > 0 {
		e.releaseRate = e.level / (e.params.Release * float32(e.sampleRate))
		e.stage = StageRelease
		return
	}

	e.Reset()
}

// Process advances one sample and returns the level in [0, 1].
func (e *Envelope) Process() float32 {
	switch e.stage {
	case StageIdle:
		return 0

	case StageAttack:
		e.level += e.attackRate
		if e.level >= 1 {
			e.level = 1
			e.afterAttack()
		}

	case StageDecay:
		e.level -= e.decayRate
		if e.level <= e.params.Sustain {
			e.level = e.params.Sustain
			e.stage = StageSustain
		}

	case StageSustain:
		e.level = e.params.Sustain

	case StageRelease:
		e.level -= e.releaseRate
		if e.level <= 0 {
			e.Reset()
		}
	}

	e.latest.Store(e.level)

	return e.level
}

func (e *Envelope) afterAttack() {
	if e.decayRate > 0 {
		e.stage = StageDecay
		return
	}

	e.level = e.params.Sustain
	e.stage = StageSustain
}

// Fill writes len(dst) consecutive levels.
func (e *Envelope) Fill(dst []float32) {
	for i := range dst {
		dst[i] = e.Process()
	}
}

// IsActive is false only when idle.
func (e *Envelope) IsActive() bool { return e.stage != StageIdle }

func (e *Envelope) Stage() Stage   { return e.stage }
func (e *Envelope) Level() float32 { return e.level }

// Latest is the most recent level, readable from any goroutine.
func (e *Envelope) Latest() float32 { return e.latest.Load() }
