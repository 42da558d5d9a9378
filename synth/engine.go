// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"slices"
	"sync/atomic"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/filter"
	"github.com/ik5/scansynth/internal/logging"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/reader"
	"github.com/ik5/scansynth/utils"
)

const (
	MinLevel     = -60
	MaxLevel     = 12
	DefaultLevel = 0

	// levelFloor is where master gain turns into silence.
	levelFloor = -100
)

// Engine is a polyphonic scanning synthesizer. Control methods (setters,
// Images, Telemetry) may be called from any goroutine. Prepare and Render
// belong to the audio thread and must not run concurrently with each
// other.
type Engine struct {
	opts    options
	images  *bitmap.Store
	readers []*reader.Params
	envCtl  [modulation.NumEnvelopes]EnvelopeControl
	lfoCtl  [modulation.NumLFOs]LFOControl
	level   utils.AtomicFloat32
	bpm     atomicFloat64

	voices    []*Voice
	active    atomic.Int32
	telemetry *Telemetry
	meter     Meter

	// Audio thread state.
	sampleRate float64
	prepared   bool
	clock      uint64
	lfos       [modulation.NumLFOs]*modulation.LFO
	lfoBlock   [modulation.NumLFOs][]float32
	rc         renderContext
	mix        *audio.Buffer
	gain       modulation.Smoother
	dc         filter.DCBlocker
}

// New builds an engine. It is silent until Prepare and until an image is
// published through Images.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		opts:    o,
		images:  bitmap.NewStore(),
		readers: DefaultLayout(o.layout...),
		mix:     &audio.Buffer{},
	}
	e.bpm.Store(modulation.DefaultBPM)
	e.level.Store(DefaultLevel)
	for i := range e.envCtl {
		e.envCtl[i].Set(modulation.DefaultEnvelopeParams)
	}
	for i := range e.lfoCtl {
		e.lfoCtl[i].init()
		e.lfos[i] = modulation.NewLFO()
	}

	e.telemetry = newTelemetry(o.voices, len(e.readers))
	e.voices = make([]*Voice, o.voices)
	for i := range e.voices {
		e.voices[i] = newVoice(i, e.readers, e.telemetry, e.voiceFinished)
	}

	return e
}

// DefaultLayout returns reader parameters for kinds with the stock
// settings: only the first reader sounds, and each later ellipse is a
// little smaller than the one before.
func DefaultLayout(kinds ...reader.Kind) []*reader.Params {
	params := make([]*reader.Params, len(kinds))
	for i, k := range kinds {
		p := reader.NewParams(k)
		if i > 0 {
			p.SetVolume(0)
		}
		if k == reader.Ellipse {
			p.SetSize(reader.DefaultR1 - float32(i)*0.1)
			p.SetSize2(reader.DefaultR2 - float32(i)*0.05)
		}
		params[i] = p
	}

	return params
}

// Images is where the scanned image is published.
func (e *Engine) Images() *bitmap.Store { return e.images }

func (e *Engine) NumReaders() int { return len(e.readers) }
func (e *Engine) NumVoices() int  { return len(e.voices) }
func (e *Engine) Channels() int   { return e.opts.channels }

// Reader returns the parameters of reader slot i (0-based).
func (e *Engine) Reader(i int) *reader.Params { return e.readers[i] }

// Envelope returns the settings of envelope slot i (0-based).
func (e *Engine) Envelope(i int) *EnvelopeControl { return &e.envCtl[i] }

// LFO returns the settings of LFO i (0-based).
func (e *Engine) LFO(i int) *LFOControl { return &e.lfoCtl[i] }

// LFOValue is the latest output of LFO i in [0, 1].
func (e *Engine) LFOValue(i int) float32 { return e.lfos[i].Latest() }

// SetLevel sets the master level in dB, clamped to [MinLevel, MaxLevel].
func (e *Engine) SetLevel(db float32) { e.level.Store(utils.Clamp(db, MinLevel, MaxLevel)) }

func (e *Engine) Level() float32 { return e.level.Load() }

// SetBPM sets the tempo used by synced LFOs. Non-positive values fall back
// to modulation.DefaultBPM.
func (e *Engine) SetBPM(bpm float64) {
	if bpm <= 0 {
		bpm = modulation.DefaultBPM
	}
	e.bpm.Store(bpm)
}

func (e *Engine) BPM() float64 { return e.bpm.Load() }

func (e *Engine) Telemetry() *Telemetry { return e.telemetry }
func (e *Engine) Meter() *Meter         { return &e.meter }

// ActiveVoices counts the voices currently sounding.
func (e *Engine) ActiveVoices() int { return int(e.active.Load()) }

func (e *Engine) SampleRate() float64 { return e.sampleRate }
func (e *Engine) MaxBlockSize() int   { return e.opts.maxBlock }

// Prepare sizes every buffer for blocks of up to maxBlock frames at
// sampleRate and silences all voices. A non-positive maxBlock keeps the
// configured size.
func (e *Engine) Prepare(sampleRate float64, maxBlock int) {
	if maxBlock > 0 {
		e.opts.maxBlock = maxBlock
	}
	block, channels := e.opts.maxBlock, e.opts.channels

	e.sampleRate = sampleRate
	e.mix.SetSize(channels, block)
	for i, l := range e.lfos {
		l.Prepare(sampleRate)
		if cap(e.lfoBlock[i]) < block {
			e.lfoBlock[i] = make([]float32, block)
		}
	}
	for _, v := range e.voices {
		v.prepare(sampleRate, channels, block)
	}
	e.active.Store(0)

	e.gain = modulation.NewSmoother(utils.DecibelsToGain(e.level.Load(), levelFloor))
	e.gain.Reset(sampleRate, modulation.RampSeconds)
	e.dc.Prepare(sampleRate, channels, filter.DCCutoff)
	e.meter.prepare(sampleRate, channels)
	e.prepared = sampleRate > 0

	logging.L().Info("engine prepared",
		"sample_rate", sampleRate,
		"max_block", block,
		"channels", channels,
		"voices", len(e.voices),
		"readers", len(e.readers),
	)
}

// Render adds n frames at start of out. Events are applied at their
// offset, relative to start; they are sorted in place when out of order and
// those at or past n take effect after the last frame. Output beyond the
// engine's channel count is left untouched.
func (e *Engine) Render(out *audio.Buffer, start, n int, events []Event) {
	if !e.prepared || out == nil || start < 0 {
		return
	}
	n = min(n, out.Frames()-start)
	if n <= 0 {
		return
	}
	if !slices.IsSortedFunc(events, byOffset) {
		slices.SortStableFunc(events, byOffset)
	}

	pos := 0
	for pos < n {
		for len(events) > 0 && events[0].Offset <= pos {
			e.handle(events[0])
			events = events[1:]
		}

		end := min(n, pos+e.opts.maxBlock)
		if len(events) > 0 && events[0].Offset < end {
			end = events[0].Offset
		}
		e.renderBlock(out, start+pos, end-pos)
		pos = end
	}
	for _, ev := range events {
		e.handle(ev)
	}
}

func (e *Engine) renderBlock(out *audio.Buffer, at, n int) {
	rc := &e.rc
	rc.image = e.images.Load()

	bpm := e.bpm.Load()
	for i, l := range e.lfos {
		c := &e.lfoCtl[i]
		l.SetWaveform(c.Waveform())
		l.SetFrequency(c.Frequency(bpm))
		l.SetPhaseOffset(c.PhaseOffset())
		rc.lfo[i] = e.lfoBlock[i][:n]
		l.Fill(rc.lfo[i])
	}
	for i := range e.envCtl {
		rc.env[i] = e.envCtl[i].Params()
	}

	e.mix.ClearRange(0, n)
	for _, v := range e.voices {
		v.Render(rc, e.mix, 0, n)
	}

	e.gain.SetTarget(utils.DecibelsToGain(e.level.Load(), levelFloor))
	channels := e.mix.Channels()
	if e.gain.IsSmoothing() {
		for i := range n {
			g := e.gain.Next()
			for ch := range channels {
				e.mix.Channel(ch)[i] *= g
			}
		}
	} else {
		e.mix.ApplyGain(0, n, e.gain.Target())
	}

	for ch := range channels {
		e.dc.Process(ch, e.mix.Channel(ch)[:n])
	}
	e.meter.update(e.mix, n)

	for ch := range min(out.Channels(), channels) {
		out.AddFrom(ch, at, e.mix, ch, 0, n)
	}
}

func (e *Engine) handle(ev Event) {
	switch ev.Kind {
	case NoteOn:
		if ev.Velocity <= 0 {
			e.release(ev.Note, true)
			return
		}

		v := e.voiceFor(ev.Note)
		for i := range e.envCtl {
			e.rc.env[i] = e.envCtl[i].Params()
		}
		v.setEnvelopes(&e.rc.env)
		e.clock++
		v.started = e.clock
		if !v.IsActive() {
			e.active.Add(1)
		}
		v.NoteOn(ev.Note, ev.Velocity)
	case NoteOff:
		e.release(ev.Note, ev.AllowTailOff)
	case AllNotesOff:
		for _, v := range e.voices {
			if v.IsActive() {
				v.NoteOff(0, ev.AllowTailOff)
			}
		}
	}
}

func (e *Engine) release(note int, allowTailOff bool) {
	for _, v := range e.voices {
		if v.held && v.note == note {
			v.NoteOff(0, allowTailOff)
		}
	}
}

// voiceFor picks the voice for a new note: the one already playing it, a
// free one, or else the one started longest ago.
func (e *Engine) voiceFor(note int) *Voice {
	for _, v := range e.voices {
		if v.IsActive() && v.note == note {
			return v
		}
	}
	for _, v := range e.voices {
		if !v.IsActive() {
			return v
		}
	}

	oldest := e.voices[0]
	for _, v := range e.voices[1:] {
		if v.started < oldest.started {
			oldest = v
		}
	}

	return oldest
}

func (e *Engine) voiceFinished(*Voice) {
	e.active.Add(-1)
}
