// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"sync/atomic"

	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/utils"
)

// EnvelopeControl holds the settings shared by one envelope slot of every
// voice. Safe for concurrent use.
type EnvelopeControl struct {
	attack, decay, sustain, release utils.AtomicFloat32
}

func (c *EnvelopeControl) Set(p modulation.EnvelopeParams) {
	p = p.Clamped()
	c.attack.Store(p.Attack)
	c.decay.Store(p.Decay)
	c.sustain.Store(p.Sustain)
	c.release.Store(p.Release)
}

func (c *EnvelopeControl) Params() modulation.EnvelopeParams {
	return modulation.EnvelopeParams{
		Attack:  c.attack.Load(),
		Decay:   c.decay.Load(),
		Sustain: c.sustain.Load(),
		Release: c.release.Load(),
	}
}

// LFOControl holds the settings of one engine LFO. Safe for concurrent
// use.
type LFOControl struct {
	frequency utils.AtomicFloat32
	phase     utils.AtomicFloat32
	sync      atomic.Bool
	rate      atomic.Uint32
	waveform  atomic.Uint32
}

func (c *LFOControl) init() {
	c.frequency.Store(1)
	c.rate.Store(uint32(modulation.Rate1_4))
}

// SetFrequency sets the free-running rate in Hz.
func (c *LFOControl) SetFrequency(hz float32) {
	c.frequency.Store(utils.Clamp(hz, modulation.MinLFOFrequency, modulation.MaxLFOFrequency))
}

// SetSync locks the LFO to the engine tempo at its Rate.
func (c *LFOControl) SetSync(on bool) { c.sync.Store(on) }

func (c *LFOControl) SetRate(r modulation.Rate) {
	c.rate.Store(uint32(min(r, modulation.NumRates-1)))
}

// SetPhaseOffset shifts the LFO by a fraction of its period.
func (c *LFOControl) SetPhaseOffset(cycles float32) {
	c.phase.Store(utils.Clamp(cycles, 0, 1))
}

func (c *LFOControl) SetWaveform(w modulation.Waveform) { c.waveform.Store(uint32(w)) }

func (c *LFOControl) Synced() bool                  { return c.sync.Load() }
func (c *LFOControl) Rate() modulation.Rate         { return modulation.Rate(c.rate.Load()) }
func (c *LFOControl) PhaseOffset() float32          { return c.phase.Load() }
func (c *LFOControl) Waveform() modulation.Waveform { return modulation.Waveform(c.waveform.Load()) }

// Frequency returns the effective rate in Hz at bpm.
func (c *LFOControl) Frequency(bpm float64) float32 {
	if c.sync.Load() {
		return modulation.SyncedFrequency(bpm, c.Rate())
	}

	return c.frequency.Load()
}

// atomicFloat64 stores a float64 as its bits.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (f *atomicFloat64) Load() float64   { return math.Float64frombits(f.bits.Load()) }
func (f *atomicFloat64) Store(v float64) { f.bits.Store(math.Float64bits(v)) }
