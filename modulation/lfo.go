// SPDX-License-Identifier: EPL-2.0

package modulation

import (
	"math"

	"github.com/ik5/scansynth/utils"
)

// Waveform selects the LFO shape. Every shape is unipolar, in [0, 1].
type Waveform uint8

const (
	Sine Waveform = iota
	Triangle
	Saw
	Square

	numWaveforms
)

var waveformNames = [...]string{"sine", "triangle", "saw", "square"}

func (w Waveform) String() string {
	if w >= numWaveforms {
		return "unknown"
	}

	return waveformNames[w]
}

// ParseWaveform maps a name from String back to a Waveform.
func ParseWaveform(name string) (Waveform, bool) {
	for i, n := range waveformNames {
		if n == name {
			return Waveform(i), true
		}
	}

	return Sine, false
}

const (
	MinLFOFrequency = 0.01
	MaxLFOFrequency = 200
	twoPi           = 2 * math.Pi
)

// LFO is a free-running low-frequency oscillator. Process returns
// (sin(phase + offset) + 1) / 2 for the default sine shape and advances
// phase by 2π·f/fs.
type LFO struct {
	sampleRate float64
	frequency  float32
	waveform   Waveform
	phase      float64 // radians, [0, 2π)
	offset     Smoother
	latest     utils.AtomicFloat32
}

func NewLFO() *LFO {
	return &LFO{frequency: 1}
}

// Prepare sets the sample rate and restarts the cycle.
func (l *LFO) Prepare(sampleRate float64) {
	l.sampleRate = sampleRate
	l.phase = 0
	l.offset.Reset(sampleRate, RampSeconds)
}

// Reset restarts the cycle at phase zero.
func (l *LFO) Reset() {
	l.phase = 0
}

// SetFrequency takes effect on the next sample. It is clamped to
// [MinLFOFrequency, MaxLFOFrequency].
func (l *LFO) SetFrequency(hz float32) {
	l.frequency = utils.Clamp(hz, MinLFOFrequency, MaxLFOFrequency)
}

func (l *LFO) Frequency() float32 { return l.frequency }

func (l *LFO) SetWaveform(w Waveform) {
	if w >= numWaveforms {
		w = Sine
	}
	l.waveform = w
}

// SetPhaseOffset shifts the output by cycles of a period, in [0, 1]. The
// shift is smoothed so moving it does not click.
func (l *LFO) SetPhaseOffset(cycles float32) {
	l.offset.SetTarget(utils.Clamp(cycles, 0, 1) * twoPi)
}

// Process returns the next value in [0, 1].
func (l *LFO) Process() float32 {
	p := l.phase + float64(l.offset.Next())

	var v float64
	switch l.waveform {
	case Triangle:
		t := math.Mod(p/twoPi, 1)
		v = 1 - math.Abs(2*t-1)
	case Saw:
		v = math.Mod(p/twoPi, 1)
	case Square:
		if math.Mod(p/twoPi, 1) < 0.5 {
			v = 1
		}
	default:
		v = (math.Sin(p) + 1) / 2
	}

	if l.sampleRate > 0 {
		l.phase += twoPi * float64(l.frequency) / l.sampleRate
		if l.phase >= twoPi {
			l.phase = math.Mod(l.phase, twoPi)
		}
	}

	out := float32(v)
	l.latest.Store(out)

	return out
}

// Fill writes len(dst) consecutive values.
func (l *LFO) Fill(dst []float32) {
	for i := range dst {
		dst[i] = l.Process()
	}
}

// Latest is the most recent output, readable from any goroutine.
func (l *LFO) Latest() float32 { return l.latest.Load() }

// Phase is the current phase in radians.
func (l *LFO) Phase() float64 { return l.phase }
