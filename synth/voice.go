// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/reader"
)

// renderContext is what the engine hands every voice for one block.
type renderContext struct {
	image bitmap.Sampler
	lfo   [modulation.NumLFOs][]float32
	env   [modulation.NumEnvelopes]modulation.EnvelopeParams
}

// Voice plays one note through an Oscillator. Its three envelopes feed the
// modulation matrix; envelope 1 shapes the volume by default.
type Voice struct {
	index    int
	osc      *Oscillator
	envs     [modulation.NumEnvelopes]*modulation.Envelope
	mods     *modulation.Matrix
	temp     *audio.Buffer
	note     int
	velocity float32
	held     bool
	started  uint64

	telemetry *Telemetry
	onIdle    func(*Voice)
}

func newVoice(index int, params []*reader.Params, t *Telemetry, onIdle func(*Voice)) *Voice {
	v := &Voice{
		index:     index,
		osc:       NewOscillator(params),
		mods:      modulation.NewMatrix(0),
		temp:      &audio.Buffer{},
		note:      -1,
		telemetry: t,
		onIdle:    onIdle,
	}
	for i := range v.envs {
		v.envs[i] = modulation.NewEnvelope()
	}

	return v
}

func (v *Voice) prepare(sampleRate float64, channels, maxBlock int) {
	v.osc.Prepare(sampleRate, channels, maxBlock)
	for _, env := range v.envs {
		env.Prepare(sampleRate)
	}
	v.mods.Resize(maxBlock)
	v.temp.SetSize(channels, maxBlock)
	v.clear()
}

// setEnvelopes applies the current slot settings so a new note starts with
// them rather than with those of the last block.
func (v *Voice) setEnvelopes(params *[modulation.NumEnvelopes]modulation.EnvelopeParams) {
	for i, env := range v.envs {
		env.SetParams(params[i])
	}
}

// NoteOn starts note at velocity in [0, 1]. A voice still sounding
// restarts its envelopes from their current level.
func (v *Voice) NoteOn(note int, velocity float32) {
	v.note = note
	v.velocity = min(max(velocity, 0), 1)
	v.held = true
	v.osc.SetFrequency(modulation.NoteFrequency(note))
	for _, env := range v.envs {
		env.NoteOn()
	}
}

// NoteOff releases the note. Without tail-off the voice stops at once.
func (v *Voice) NoteOff(_ float32, allowTailOff bool) {
	v.held = false
	for _, env := range v.envs {
		if allowTailOff {
			env.NoteOff()
		} else {
			env.Reset()
		}
	}
	if !v.IsActive() {
		v.finish()
	}
}

// IsActive reports whether any envelope is still running.
func (v *Voice) IsActive() bool {
	for _, env := range v.envs {
		if env.IsActive() {
			return true
		}
	}

	return false
}

func (v *Voice) Note() int               { return v.note }
func (v *Voice) Velocity() float32       { return v.velocity }
func (v *Voice) Held() bool              { return v.held }
func (v *Voice) Index() int              { return v.index }
func (v *Voice) Oscillator() *Oscillator { return v.osc }

// Envelope returns envelope i (0-based).
func (v *Voice) Envelope(i int) *modulation.Envelope { return v.envs[i] }

// Render adds n frames at start of out. The matrix is rebuilt from the
// engine's LFO block and this voice's envelopes, the oscillator renders
// into the voice buffer, and the result is scaled by velocity.
func (v *Voice) Render(rc *renderContext, out *audio.Buffer, start, n int) {
	if !v.IsActive() {
		return
	}
	n = min(n, v.temp.Frames())

	v.mods.Resize(n)
	for i := range modulation.NumLFOs {
		v.mods.SetLFO(i, rc.lfo[i])
	}
	v.setEnvelopes(&rc.env)
	for i, env := range v.envs {
		v.mods.FillEnvelope(i, env)
	}
	v.mods.ComputeProducts()

	v.temp.ClearRange(0, n)
	v.osc.Process(rc.image, v.temp, 0, n, v.mods)
	v.temp.ApplyGain(0, n, v.velocity)

	for ch := range min(out.Channels(), v.temp.Channels()) {
		out.AddFrom(ch, start, v.temp, ch, 0, n)
	}

	if v.telemetry != nil {
		v.telemetry.publish(v)
	}
	if !v.IsActive() {
		v.finish()
	}
}

// finish clears the note and tells the engine the voice is free.
func (v *Voice) finish() {
	v.clear()
	if v.telemetry != nil {
		v.telemetry.publish(v)
	}
	if v.onIdle != nil {
		v.onIdle(v)
	}
}

func (v *Voice) clear() {
	v.note = -1
	v.velocity = 0
	v.held = false
}
