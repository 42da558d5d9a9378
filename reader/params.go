// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/ik5/scansynth/filter"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/utils"
)

// Target is a reader parameter a modulator can drive.
type Target uint8

const (
	TargetCX Target = iota
	TargetCY
	TargetSize  // line length, circle radius, ellipse R1
	TargetSize2 // ellipse R2
	TargetAngle
	TargetVolume
	TargetPan
	TargetPitch
	TargetCutoff
	TargetResonance

	NumTargets
)

var targetNames = [NumTargets]string{
	"cx", "cy", "size", "size2", "angle", "volume", "pan", "pitch", "cutoff", "resonance",
}

func (t Target) String() string {
	if t >= NumTargets {
		return fmt.Sprintf("Target(%d)", uint8(t))
	}

	return targetNames[t]
}

// ParseTarget maps a target name, or one of the shape-specific aliases
// (length, radius, r1, r2), to a Target.
func ParseTarget(name string) (Target, bool) {
	switch name {
	case "length", "radius", "r1":
		return TargetSize, true
	case "r2":
		return TargetSize2, true
	}
	for i, n := range targetNames {
		if n == name {
			return Target(i), true
		}
	}

	return 0, false
}

const (
	MaxDetune = 12

	DefaultLength = 0.6
	DefaultRadius = 0.25
	DefaultR1     = 0.4
	DefaultR2     = 0.2
)

// Binding routes one modulator row into one target at a signed depth.
// Safe for concurrent use.
type Binding struct {
	amount utils.AtomicFloat32
	source atomic.Int32
}

// Set stores the depth, clamped to [-1, 1], and the source row.
func (b *Binding) Set(amount float32, src modulation.Source) {
	b.SetAmount(amount)
	b.SetSource(src)
}

func (b *Binding) SetAmount(amount float32) {
	b.amount.Store(utils.Clamp(amount, -1, 1))
}

// SetSource stores src; out-of-range rows are clamped.
func (b *Binding) SetSource(src modulation.Source) {
	b.source.Store(int32(src.Clamped()))
}

func (b *Binding) Amount() float32 { return b.amount.Load() }

func (b *Binding) Source() modulation.Source {
	return modulation.Source(b.source.Load())
}

// Settings is a plain copy of a Params, used for presets and for the
// audio thread's per-block read.
type Settings struct {
	Kind      Kind
	CX, CY    float32
	Size      float32
	Size2     float32
	Angle     float32
	Volume    float32
	Pan       float32
	Detune    float32
	Filter    filter.Type
	Cutoff    float32
	Resonance float32
	Mods      [NumTargets]ModSetting
}

// ModSetting is the plain form of a Binding.
type ModSetting struct {
	Amount float32
	Source modulation.Source
}

// Geometry returns the unmodulated path.
func (s *Settings) Geometry() Geometry {
	g := Geometry{Kind: s.Kind, CX: s.CX, CY: s.CY, Angle: s.Angle}
	switch s.Kind {
	case Line:
		g.Length = s.Size
	case Circle:
		g.Radius = s.Size
	default:
		g.R1, g.R2 = s.Size, s.Size2
	}

	return g
}

// Params holds one reader slot's user-facing parameters. Every field is an
// atomic so a control thread may write while the audio thread reads; a
// block sees each value once, not a consistent set.
type Params struct {
	kind      atomic.Uint32
	cx, cy    utils.AtomicFloat32
	size      utils.AtomicFloat32
	size2     utils.AtomicFloat32
	angle     utils.AtomicFloat32
	volume    utils.AtomicFloat32
	pan       utils.AtomicFloat32
	detune    utils.AtomicFloat32
	filterTyp atomic.Uint32
	cutoff    utils.AtomicFloat32
	resonance utils.AtomicFloat32

	mods [NumTargets]Binding
}

// NewParams returns the defaults for kind: centred, full volume, an open
// lowpass and volume following envelope 1.
func NewParams(kind Kind) *Params {
	if kind >= numKinds {
		kind = Ellipse
	}

	p := &Params{}
	p.kind.Store(uint32(kind))
	p.SetCentre(0.5, 0.5)
	switch kind {
	case Line:
		p.SetSize(DefaultLength)
	case Circle:
		p.SetSize(DefaultRadius)
	default:
		p.SetSize(DefaultR1)
		p.SetSize2(DefaultR2)
	}
	p.SetVolume(1)
	p.SetFilter(filter.Lowpass, filter.DefaultCutoff, filter.DefaultResonance)
	p.mods[TargetVolume].Set(1, modulation.Env1)

	return p
}

// Kind is fixed at construction.
func (p *Params) Kind() Kind { return Kind(p.kind.Load()) }

func (p *Params) SetCentre(cx, cy float32) {
	p.SetCX(cx)
	p.SetCY(cy)
}

func (p *Params) SetCX(v float32) { p.cx.Store(utils.Clamp(v, 0, 1)) }
func (p *Params) SetCY(v float32) { p.cy.Store(utils.Clamp(v, 0, 1)) }

// SetSize sets the line length, circle radius or ellipse R1.
func (p *Params) SetSize(v float32) {
	limit := float32(MaxRadius)
	if p.Kind() == Line {
		limit = MaxLength
	}
	p.size.Store(utils.Clamp(v, 0, limit))
}

// SetSize2 sets the ellipse R2.
func (p *Params) SetSize2(v float32) { p.size2.Store(utils.Clamp(v, 0, MaxRadius)) }

// SetAngle stores the rotation in radians, wrapped to [0, 2π).
func (p *Params) SetAngle(rad float32) {
	if rad < 0 || rad >= 2*math.Pi {
		rad = 2 * math.Pi * utils.Wrap01(rad/(2*math.Pi))
	}
	p.angle.Store(rad)
}

func (p *Params) SetVolume(v float32) { p.volume.Store(utils.Clamp(v, 0, 1)) }
func (p *Params) SetPan(v float32)    { p.pan.Store(utils.Clamp(v, -1, 1)) }

// SetDetune sets the pitch offset in semitones.
func (p *Params) SetDetune(semitones float32) {
	p.detune.Store(utils.Clamp(semitones, -MaxDetune, MaxDetune))
}

// SetFilter sets the filter type, cutoff (Hz) and resonance (Q).
func (p *Params) SetFilter(t filter.Type, cutoff, q float32) {
	p.SetFilterType(t)
	p.SetCutoff(cutoff)
	p.SetResonance(q)
}

func (p *Params) SetFilterType(t filter.Type) { p.filterTyp.Store(uint32(t)) }

func (p *Params) SetCutoff(hz float32) {
	p.cutoff.Store(utils.Clamp(hz, filter.MinCutoff, filter.MaxCutoff))
}

func (p *Params) SetResonance(q float32) {
	p.resonance.Store(utils.Clamp(q, filter.MinResonance, filter.MaxResonance))
}

// Mod returns the binding for t.
func (p *Params) Mod(t Target) *Binding {
	return &p.mods[min(t, NumTargets-1)]
}

func (p *Params) Volume() float32 { return p.volume.Load() }
func (p *Params) Detune() float32 { return p.detune.Load() }

func (p *Params) FilterType() filter.Type { return filter.Type(p.filterTyp.Load()) }

// Settings returns a copy of every value.
func (p *Params) Settings() Settings {
	s := Settings{
		Kind:      p.Kind(),
		CX:        p.cx.Load(),
		CY:        p.cy.Load(),
		Size:      p.size.Load(),
		Size2:     p.size2.Load(),
		Angle:     p.angle.Load(),
		Volume:    p.volume.Load(),
		Pan:       p.pan.Load(),
		Detune:    p.detune.Load(),
		Filter:    p.FilterType(),
		Cutoff:    p.cutoff.Load(),
		Resonance: p.resonance.Load(),
	}
	for i := range p.mods {
		s.Mods[i] = ModSetting{Amount: p.mods[i].Amount(), Source: p.mods[i].Source()}
	}

	return s
}

// Apply stores s through the clamping setters. The kind is not changed.
func (p *Params) Apply(s Settings) {
	p.SetCentre(s.CX, s.CY)
	p.SetSize(s.Size)
	p.SetSize2(s.Size2)
	p.SetAngle(s.Angle)
	p.SetVolume(s.Volume)
	p.SetPan(s.Pan)
	p.SetDetune(s.Detune)
	p.SetFilter(s.Filter, s.Cutoff, s.Resonance)
	for i, m := range s.Mods {
		p.mods[i].Set(m.Amount, m.Source)
	}
}

// Names lists the parameter names Set accepts for this reader's kind.
func (p *Params) Names() []string {
	names := []string{"cx", "cy"}
	switch p.Kind() {
	case Line:
		names = append(names, "length", "angle")
	case Circle:
		names = append(names, "radius")
	default:
		names = append(names, "r1", "r2", "angle")
	}
	names = append(names, "volume", "pan", "detune", "filter_type", "filter_freq", "filter_q")
	for _, t := range targetNames {
		names = append(names, "mod_"+t+"_amount", "mod_"+t+"_source")
	}

	return names
}

// Set assigns a parameter by name. Values are clamped like the typed
// setters; filter_type and mod_*_source take the enum's integer value.
func (p *Params) Set(name string, v float64) error {
	f := float32(v)

	switch name {
	case "cx":
		p.SetCX(f)
	case "cy":
		p.SetCY(f)
	case "size", "length", "radius", "r1":
		p.SetSize(f)
	case "size2", "r2":
		p.SetSize2(f)
	case "angle":
		p.SetAngle(f)
	case "volume":
		p.SetVolume(f)
	case "pan":
		p.SetPan(f)
	case "detune":
		p.SetDetune(f)
	case "filter_type":
		p.SetFilterType(filter.Type(utils.Clamp(int(v), 0, int(filter.Bypass))))
	case "filter_freq":
		p.SetCutoff(f)
	case "filter_q":
		p.SetResonance(f)
	default:
		return p.setMod(name, v)
	}

	return nil
}

func (p *Params) setMod(name string, v float64) error {
	rest, ok := strings.CutPrefix(name, "mod_")
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}

	if target, ok := strings.CutSuffix(rest, "_amount"); ok {
		if t, ok := ParseTarget(target); ok {
			p.mods[t].SetAmount(float32(v))
			return nil
		}
	}
	if target, ok := strings.CutSuffix(rest, "_source"); ok {
		if t, ok := ParseTarget(target); ok {
			p.mods[t].SetSource(modulation.Source(utils.Clamp(int(v), 0, modulation.NumSources-1)))
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownParam, name)
}
