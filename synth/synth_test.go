// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"math"
	"testing"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/filter"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/reader"
)

const testRate = 1000

// gate is an envelope that opens at once and closes over 100 ms.
var gate = modulation.EnvelopeParams{Attack: 0, Decay: 0, Sustain: 1, Release: 0.1}

// newTestEngine returns a prepared engine of one open circle reader per
// voice over a white image, with every envelope set to gate.
func newTestEngine(t testing.TB, voices int) *Engine {
	t.Helper()

	e := New(WithVoices(voices), WithReaders(reader.Circle), WithMaxBlockSize(64))
	p := e.Reader(0)
	p.SetFilterType(filter.Bypass)
	p.Mod(reader.TargetVolume).SetAmount(0)
	for i := range modulation.NumEnvelopes {
		e.Envelope(i).Set(gate)
	}
	e.Images().Swap(bitmap.Uniform(16, 16, 255))
	e.Prepare(testRate, 0)

	return e
}

func render(e *Engine, n int, events ...Event) *audio.Buffer {
	out := audio.NewBuffer(2, n)
	e.Render(out, 0, n, events)

	return out
}

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	e := New()
	if e.NumVoices() != DefaultVoices || e.NumReaders() != 3 || e.Channels() != 2 || e.MaxBlockSize() != DefaultMaxBlock {
		t.Fatalf("defaults: %d voices, %d readers, %d channels, %d block",
			e.NumVoices(), e.NumReaders(), e.Channels(), e.MaxBlockSize())
	}

	wantVolume := []float32{1, 0, 0}
	wantR1 := []float32{0.4, 0.3, 0.2}
	wantR2 := []float32{0.2, 0.15, 0.1}
	for i := range 3 {
		s := e.Reader(i).Settings()
		if s.Kind != reader.Ellipse || s.Volume != wantVolume[i] {
			t.Errorf("reader %d: kind %v volume %v", i, s.Kind, s.Volume)
		}
		if math.Abs(float64(s.Size-wantR1[i])) > 1e-6 || math.Abs(float64(s.Size2-wantR2[i])) > 1e-6 {
			t.Errorf("reader %d: r1 %v r2 %v, want %v %v", i, s.Size, s.Size2, wantR1[i], wantR2[i])
		}
	}
	if e.Level() != DefaultLevel || e.BPM() != modulation.DefaultBPM {
		t.Errorf("level %v bpm %v", e.Level(), e.BPM())
	}
	if p := e.Envelope(0).Params(); p != modulation.DefaultEnvelopeParams {
		t.Errorf("envelope defaults = %+v", p)
	}
}

func TestOptionsClamp(t *testing.T) {
	t.Parallel()

	e := New(WithVoices(0), WithChannels(6), WithMaxBlockSize(-1), WithReaders())
	if e.NumVoices() != 1 || e.Channels() != MaxChannels || e.MaxBlockSize() != DefaultMaxBlock || e.NumReaders() != 3 {
		t.Errorf("%d voices, %d channels, %d block, %d readers",
			e.NumVoices(), e.Channels(), e.MaxBlockSize(), e.NumReaders())
	}
}

func TestUnpreparedEngineIsSilent(t *testing.T) {
	t.Parallel()

	e := New()
	out := render(e, 128, NoteOnAt(0, 60, 1))
	for _, v := range out.Channel(0) {
		if v != 0 {
			t.Fatal("unprepared engine produced sound")
		}
	}
}

func TestEventsAreSampleAccurate(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	out := render(e, 256, NoteOnAt(100, 60, 1))

	left := out.Channel(0)
	for i, v := range left[:100] {
		if v != 0 {
			t.Fatalf("frame %d = %v before the note", i, v)
		}
	}
	if left[100] < 0.5 {
		t.Errorf("frame 100 = %v, want the note onset", left[100])
	}
}

func TestUnsortedEvents(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 2)
	events := []Event{NoteOnAt(50, 64, 1), NoteOnAt(10, 60, 1)}
	out := render(e, 64, events...)

	if events[0].Offset != 10 {
		t.Error("events were not sorted by offset")
	}
	if out.Channel(0)[9] != 0 || out.Channel(0)[10] == 0 {
		t.Errorf("onset not at frame 10: %v %v", out.Channel(0)[9], out.Channel(0)[10])
	}
	if got := e.ActiveVoices(); got != 2 {
		t.Errorf("ActiveVoices = %d, want 2", got)
	}
}

func TestVoiceStaysActiveUntilReleaseEnds(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	render(e, 50, NoteOnAt(0, 60, 1))
	if e.ActiveVoices() != 1 {
		t.Fatal("note did not start")
	}

	// 100 ms release at 1 kHz.
	render(e, 50, NoteOffAt(0, 60))
	if e.ActiveVoices() != 1 || !e.voices[0].IsActive() {
		t.Fatal("voice stopped halfway through its release")
	}
	if e.voices[0].Held() {
		t.Error("released voice still held")
	}

	out := render(e, 100)
	if e.ActiveVoices() != 0 || e.voices[0].IsActive() {
		t.Fatal("voice still active after its release")
	}
	if e.voices[0].Note() != -1 {
		t.Errorf("finished voice keeps note %d", e.voices[0].Note())
	}

	if info := e.Telemetry().Snapshot(nil)[0]; info.Active {
		t.Errorf("telemetry still reports voice active: %+v", info)
	}

	// The voice is silent; what remains is the DC blocker settling from
	// the end of the release, which only decays.
	prev := math.Abs(float64(out.Channel(0)[out.Frames()-1]))
	out = render(e, 200)
	for i, v := range out.Channel(0) {
		mag := math.Abs(float64(v))
		if mag > prev+1e-7 {
			t.Fatalf("output grew after release at %d: %v", i, v)
		}
		prev = mag
	}
	if prev > 1e-4 {
		t.Errorf("output %v after settling, want silence", prev)
	}
}

func TestNoteOffWithoutTailStopsAtOnce(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	render(e, 32, NoteOnAt(0, 60, 1))
	render(e, 1, Event{Kind: NoteOff, Note: 60})

	if e.ActiveVoices() != 0 {
		t.Error("voice still active after a hard note-off")
	}
}

func TestZeroVelocityNoteOnReleases(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	render(e, 32, NoteOnAt(0, 60, 1))
	render(e, 1, NoteOnAt(0, 60, 0))

	if e.voices[0].Held() {
		t.Error("velocity 0 note-on did not release the note")
	}
}

func TestRetriggerReusesVoice(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 4)
	render(e, 32, NoteOnAt(0, 60, 1), NoteOnAt(10, 60, 0.5))

	if got := e.ActiveVoices(); got != 1 {
		t.Errorf("ActiveVoices = %d, want 1", got)
	}
}

func TestVoiceStealing(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 2)
	render(e, 32, NoteOnAt(0, 60, 1), NoteOnAt(1, 62, 1), NoteOnAt(2, 64, 1))

	if got := e.ActiveVoices(); got != 2 {
		t.Fatalf("ActiveVoices = %d, want 2", got)
	}

	notes := map[int]bool{}
	for _, info := range e.Telemetry().Snapshot(nil) {
		if info.Active {
			notes[info.Note] = true
		}
	}
	if notes[60] || !notes[62] || !notes[64] {
		t.Errorf("sounding notes = %v, want 62 and 64", notes)
	}
}

func TestAllNotesOff(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 4)
	render(e, 16, NoteOnAt(0, 60, 1), NoteOnAt(0, 64, 1), NoteOnAt(0, 67, 1))
	render(e, 1, Event{Kind: AllNotesOff})

	if got := e.ActiveVoices(); got != 0 {
		t.Errorf("ActiveVoices = %d after all sound off", got)
	}
}

func TestMissingImageKeepsVoicesRunning(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	e.Images().Swap(nil)
	out := render(e, 64, NoteOnAt(0, 60, 1))

	for _, v := range out.Channel(0) {
		if v != 0 {
			t.Fatal("sound without an image")
		}
	}
	if e.ActiveVoices() != 1 {
		t.Error("voice did not start without an image")
	}
}

func TestRenderIsAdditiveAndClipsChannels(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	out := audio.NewBuffer(1, 32)
	for i := range out.Channel(0) {
		out.Channel(0)[i] = 10
	}
	e.Render(out, 0, 32, []Event{NoteOnAt(0, 60, 1)})

	for i, v := range out.Channel(0) {
		if v <= 10 {
			t.Fatalf("frame %d = %v, want added onto 10", i, v)
		}
	}
}

func TestVelocityScalesOutput(t *testing.T) {
	t.Parallel()

	loud := render(newTestEngine(t, 1), 8, NoteOnAt(0, 60, 1))
	soft := render(newTestEngine(t, 1), 8, NoteOnAt(0, 60, 0.5))

	a, b := loud.Channel(0)[0], soft.Channel(0)[0]
	if math.Abs(float64(b-a/2)) > 1e-5 {
		t.Errorf("half velocity gave %v, full gave %v", b, a)
	}
}

func TestMeter(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, 1)
	render(e, 64, NoteOnAt(0, 60, 1))

	loud := e.Meter().Peak(0)
	if loud < -6 || loud > 0 {
		t.Fatalf("peak = %v dB, want about -3", loud)
	}

	render(e, 200, Event{Kind: AllNotesOff})
	render(e, 64)
	if p := e.Meter().Peak(0); p > -60 {
		t.Errorf("peak after silence = %v dB", p)
	}
	if d := e.Meter().Display(0); d <= e.Meter().Peak(0) {
		t.Errorf("display %v fell as fast as the peak %v", d, e.Meter().Peak(0))
	}
	if e.Meter().Peak(5) != MeterFloor {
		t.Error("out-of-range channel should read the floor")
	}
}

func TestLevelScalesOutput(t *testing.T) {
	t.Parallel()

	quiet := newTestEngine(t, 1)
	quiet.SetLevel(-20)
	quiet.Prepare(testRate, 0)

	a := render(newTestEngine(t, 1), 4, NoteOnAt(0, 60, 1)).Channel(0)[0]
	b := render(quiet, 4, NoteOnAt(0, 60, 1)).Channel(0)[0]
	if math.Abs(float64(b-a/10)) > 1e-4 {
		t.Errorf("-20 dB gave %v, 0 dB gave %v", b, a)
	}

	quiet.SetLevel(100)
	if quiet.Level() != MaxLevel {
		t.Errorf("level = %v, want clamped to %v", quiet.Level(), MaxLevel)
	}
}

func TestRenderDoesNotAllocate(t *testing.T) {
	e := newTestEngine(t, 4)
	out := audio.NewBuffer(2, 256)
	events := make([]Event, 2)

	allocs := testing.AllocsPerRun(50, func() {
		events[0] = NoteOnAt(10, 60, 1)
		events[1] = NoteOffAt(200, 60)
		e.Render(out, 0, 256, events)
	})
	if allocs != 0 {
		t.Errorf("Render allocates %v times per call", allocs)
	}
}

func BenchmarkRender(b *testing.B) {
	e := New()
	e.Images().Swap(bitmap.Uniform(256, 256, 180))
	e.Prepare(48000, 512)
	out := audio.NewBuffer(2, 512)
	e.Render(out, 0, 512, []Event{NoteOnAt(0, 60, 1), NoteOnAt(0, 64, 1), NoteOnAt(0, 67, 1)})

	b.ReportAllocs()
	for b.Loop() {
		e.Render(out, 0, 512, nil)
	}
}
