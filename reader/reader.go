// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/filter"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/utils"
)

// SilenceThreshold is the volume below which a reader skips sampling and
// filtering. Phases still advance so the reader stays in step.
const SilenceThreshold = 1e-4

// DrawInfo is the state of a reader at the end of its last block, for
// drawing the path over the image.
type DrawInfo struct {
	Geometry
	Volume float32
	Active bool
}

// Reader turns one path over an image into audio. It belongs to a single
// voice and is not safe for concurrent use; its Params may be shared.
type Reader struct {
	params     *Params
	sampleRate float64
	frequency  float32

	// Phases of the half-rate, base-rate and double-rate taps.
	phaseLow, phase, phaseHigh float32

	cx, cy, size, size2, angle, volume, pan modulation.Smoother

	filter filter.SVF
	info   DrawInfo
}

// New returns a reader driven by p. It is silent until Prepare.
func New(p *Params) *Reader {
	if p == nil {
		p = NewParams(Ellipse)
	}

	r := &Reader{params: p}
	r.filter.Prepare(0)
	s := p.Settings()
	r.info = DrawInfo{Geometry: s.Geometry(), Volume: s.Volume}

	return r
}

func (r *Reader) Params() *Params { return r.params }
func (r *Reader) Kind() Kind      { return r.params.Kind() }

// Prepare sets the sample rate, snaps every smoothed value to its current
// setting and clears the filter.
func (r *Reader) Prepare(sampleRate float64) {
	r.sampleRate = sampleRate

	s := r.params.Settings()
	r.cx = snapTo(s.CX, sampleRate)
	r.cy = snapTo(s.CY, sampleRate)
	r.size = snapTo(s.Size, sampleRate)
	r.size2 = snapTo(s.Size2, sampleRate)
	r.angle = snapTo(s.Angle, sampleRate)
	r.volume = snapTo(s.Volume, sampleRate)
	r.pan = snapTo(s.Pan, sampleRate)

	r.filter.SetType(s.Filter)
	r.filter.Prepare(sampleRate)
	r.filter.Set(s.Cutoff, s.Resonance)
	r.info = DrawInfo{Geometry: s.Geometry(), Volume: s.Volume}
}

func snapTo(v float32, sampleRate float64) modulation.Smoother {
	sm := modulation.NewSmoother(v)
	sm.Reset(sampleRate, modulation.RampSeconds)

	return sm
}

// SetFrequency sets the note frequency in Hz.
func (r *Reader) SetFrequency(hz float32) { r.frequency = hz }

func (r *Reader) Frequency() float32 { return r.frequency }

// ResetPhase restarts every tap at the start of the path and clears the
// filter, as at a new note.
func (r *Reader) ResetPhase() {
	r.phaseLow, r.phase, r.phaseHigh = 0, 0, 0
	r.filter.Reset()
}

// Phase returns the base-rate tap's position in [0, 1).
func (r *Reader) Phase() float32 { return r.phase }

// DrawInfo returns the geometry and level from the last sample rendered.
func (r *Reader) DrawInfo() DrawInfo { return r.info }

// Process adds n samples starting at frame start of out. Row i-start of
// mods modulates frame i; a nil mods leaves every parameter at its base
// value. An invalid image adds nothing.
func (r *Reader) Process(img bitmap.Sampler, out *audio.Buffer, start, n int, mods *modulation.Matrix) {
	if n <= 0 || start < 0 || r.sampleRate <= 0 || out == nil {
		return
	}

	var w, h int
	if img != nil {
		w, h = img.Bounds()
	}
	if w <= 1 || h <= 1 {
		r.info.Active = false
		return
	}
	n = min(n, out.Frames()-start)

	s := r.params.Settings()
	r.cx.SetTarget(s.CX)
	r.cy.SetTarget(s.CY)
	r.size.SetTarget(s.Size)
	r.size2.SetTarget(s.Size2)
	r.angle.SetTarget(s.Angle)
	r.volume.SetTarget(s.Volume)
	r.pan.SetTarget(s.Pan)
	r.filter.SetType(s.Filter)

	var m bindings
	m.load(&s, mods, n)

	detune := modulation.SemitoneRatio(s.Detune)
	fw, fh := float32(w-1), float32(h-1)
	var left, right []float32
	if out.Channels() > 0 {
		left = out.Channel(0)
	}
	if out.Channels() > 1 {
		right = out.Channel(1)
	}
	rate := float32(r.sampleRate)

	for j := range n {
		i := start + j

		g := Geometry{Kind: s.Kind}
		g.CX = utils.Clamp(modulation.ApplyBipolar(r.cx.Next(), m.amount[TargetCX], m.at(TargetCX, j)), 0, 1)
		g.CY = utils.Clamp(modulation.ApplyBipolar(r.cy.Next(), m.amount[TargetCY], m.at(TargetCY, j)), 0, 1)
		size := modulation.ApplyBipolar(r.size.Next(), m.amount[TargetSize], m.at(TargetSize, j))
		size2 := modulation.ApplyBipolar(r.size2.Next(), m.amount[TargetSize2], m.at(TargetSize2, j))
		g.Angle = modulation.ApplyBipolar(r.angle.Next(), m.amount[TargetAngle], m.at(TargetAngle, j))
		switch s.Kind {
		case Line:
			g.Length = utils.Clamp(size, 0, MaxLength)
		case Circle:
			g.Radius = utils.Clamp(size, 0, MaxRadius)
		default:
			g.R1 = utils.Clamp(size, 0, MaxRadius)
			g.R2 = utils.Clamp(size2, 0, MaxRadius)
		}

		vol := utils.Clamp(modulation.ApplyUnipolar(r.volume.Next(), m.amount[TargetVolume], m.at(TargetVolume, j)), 0, 1)
		pan := utils.Clamp(modulation.ApplyPan(r.pan.Next(), m.amount[TargetPan], m.at(TargetPan, j)), -1, 1)
		freq := modulation.ApplyPitch(r.frequency, m.amount[TargetPitch], m.at(TargetPitch, j)) * detune
		inc := freq / rate

		if j == n-1 {
			r.info = DrawInfo{Geometry: g, Volume: vol, Active: vol >= SilenceThreshold}
		}
		if vol < SilenceThreshold {
			r.advance(inc)
			continue
		}

		p := g.resolve()
		low, base, high := BlendWeights(g.NormalizedSize())
		var v float32
		if low > 0 {
			x, y := p.pointAt(r.phaseLow)
			v += low * img.Brightness(x*fw, y*fh)
		}
		if base > 0 {
			x, y := p.pointAt(r.phase)
			v += base * img.Brightness(x*fw, y*fh)
		}
		if high > 0 {
			x, y := p.pointAt(r.phaseHigh)
			v += high * img.Brightness(x*fw, y*fh)
		}

		r.filter.Set(
			modulation.ApplyCutoff(s.Cutoff, m.amount[TargetCutoff], m.at(TargetCutoff, j)),
			modulation.ApplyBipolar(s.Resonance, m.amount[TargetResonance], m.at(TargetResonance, j)),
		)
		v = r.filter.Process(v) * vol

		gl, gr := PanGains(pan)
		if left != nil {
			left[i] += v * gl
		}
		if right != nil {
			right[i] += v * gr
		}

		r.advance(inc)
	}
}

// bindings holds the rows and depths a block reads. A target with zero
// depth keeps a nil row and reads as a neutral signal.
type bindings struct {
	amount [NumTargets]float32
	rows   [NumTargets][]float32
}

func (b *bindings) load(s *Settings, mods *modulation.Matrix, n int) {
	if mods == nil || mods.Len() < n {
		return
	}
	for t := range NumTargets {
		if a := s.Mods[t].Amount; a != 0 {
			b.amount[t] = a
			b.rows[t] = mods.Row(s.Mods[t].Source)
		}
	}
}

func (b *bindings) at(t Target, j int) float32 {
	if b.rows[t] == nil {
		return 0
	}

	return b.rows[t][j]
}

func (r *Reader) advance(inc float32) {
	r.phaseLow = utils.Wrap01(r.phaseLow + 0.5*inc)
	r.phase = utils.Wrap01(r.phase + inc)
	r.phaseHigh = utils.Wrap01(r.phaseHigh + 2*inc)
}
