// SPDX-License-Identifier: EPL-2.0

package modulation

import "testing"

func newTestEnvelope(sampleRate float64, p EnvelopeParams) *Envelope {
	e := NewEnvelope()
	e.Prepare(sampleRate)
	e.SetParams(p)

	return e
}

func TestEnvelopeStages(t *testing.T) {
	t.Parallel()

	// 8 samples each of attack, decay and release; the rates are exact
	// binary fractions so the stage boundaries land on whole samples.
	const seg = 8.0 / 1024
	e := newTestEnvelope(1024, EnvelopeParams{Attack: seg, Decay: seg, Sustain: 0.5, Release: seg})
	if e.IsActive() {
		t.Fatal("fresh envelope is active")
	}

	e.NoteOn()
	if e.Stage() != StageAttack {
		t.Fatalf("stage after NoteOn = %v", e.Stage())
	}

	for i := 1; i <= 8; i++ {
		if v := e.Process(); v != float32(i)/8 {
			t.Errorf("attack sample %d = %v", i, v)
		}
	}
	if e.Stage() != StageDecay {
		t.Fatalf("stage after attack = %v", e.Stage())
	}

	for range 8 {
		e.Process()
	}
	if e.Stage() != StageSustain || e.Level() != 0.5 {
		t.Fatalf("after decay: %v at %v", e.Stage(), e.Level())
	}

	for range 100 {
		if e.Process() != 0.5 {
			t.Fatal("sustain level moved")
		}
	}

	e.NoteOff()
	if e.Stage() != StageRelease {
		t.Fatalf("stage after NoteOff = %v", e.Stage())
	}

	samples := 0
	for e.IsActive() {
		e.Process()
		samples++
		if samples > 100 {
			t.Fatal("release never finished")
		}
	}
	if samples != 8 {
		t.Errorf("release took %d samples, want 8", samples)
	}
	if e.Level() != 0 || e.Stage() != StageIdle {
		t.Errorf("after release: %v at %v", e.Stage(), e.Level())
	}
}

func TestEnvelopeStaysActiveUntilReleaseEnds(t *testing.T) {
	t.Parallel()

	const sampleRate = 48000

	e := newTestEnvelope(sampleRate, EnvelopeParams{Attack: 0, Decay: 0.1, Sustain: 1, Release: 0.2})
	e.NoteOn()
	e.NoteOff()

	releaseSamples := int(0.2 * sampleRate)
	for i := range releaseSamples * 95 / 100 {
		e.Process()
		if !e.IsActive() {
			t.Fatalf("inactive after %d of %d release samples", i+1, releaseSamples)
		}
	}

	for range releaseSamples / 10 {
		e.Process()
	}
	if e.IsActive() {
		t.Error("still active after the release time")
	}
}

func TestEnvelopeNoteOnWithoutAttack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    EnvelopeParams
		wantStage Stage
		wantLevel float32
	}{
		{name: "decay only", params: EnvelopeParams{Decay: 0.1, Sustain: 0.3}, wantStage: StageDecay, wantLevel: 1},
		{name: "sustain only", params: EnvelopeParams{Sustain: 0.3}, wantStage: StageSustain, wantLevel: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEnvelope(1000, tt.params)
			e.NoteOn()
			if e.Stage() != tt.wantStage || e.Level() != tt.wantLevel {
				t.Errorf("NoteOn -> %v at %v, want %v at %v", e.Stage(), e.Level(), tt.wantStage, tt.wantLevel)
			}
		})
	}
}

func TestEnvelopeRetriggerDuringRelease(t *testing.T) {
	t.Parallel()

	e := newTestEnvelope(1000, EnvelopeParams{Attack: 0.1, Sustain: 1, Release: 0.1})
	e.NoteOn()
	for range 100 {
		e.Process()
	}
	e.NoteOff()
	for range 50 {
		e.Process()
	}

	before := e.Level()
	e.NoteOn()
	if e.Stage() != StageAttack {
		t.Fatalf("retrigger stage = %v", e.Stage())
	}
	if after := e.Process(); after < before || after-before > 0.011 {
		t.Errorf("retrigger jumped from %v to %v", before, after)
	}
}

func TestEnvelopeZeroReleaseStopsAtOnce(t *testing.T) {
	t.Parallel()

	e := newTestEnvelope(1000, EnvelopeParams{Sustain: 1})
	e.NoteOn()
	e.Process()
	e.NoteOff()
	if e.IsActive() || e.Level() != 0 {
		t.Error("zero release did not stop the envelope")
	}
}

func TestEnvelopeParamsChangeDuringRelease(t *testing.T) {
	t.Parallel()

	start := EnvelopeParams{Attack: 0.01, Sustain: 1, Release: 0.1}
	tests := []struct {
		name     string
		params   EnvelopeParams
		idleNow  bool
		maxSteps int
	}{
		{name: "release to zero", params: EnvelopeParams{Attack: 0.01, Sustain: 1}, idleNow: true},
		{name: "sustain to zero", params: EnvelopeParams{Attack: 0.02, Sustain: 0, Release: 0.1}, maxSteps: 101},
		{name: "shorter release", params: EnvelopeParams{Attack: 0.01, Sustain: 1, Release: 0.01}, maxSteps: 11},
		{name: "longer release", params: EnvelopeParams{Attack: 0.01, Sustain: 1, Release: 1}, maxSteps: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEnvelope(1000, start)
			e.NoteOn()
			for range 5 {
				e.Process()
			}
			e.NoteOff()
			before := e.Level()

			e.SetParams(tt.params)
			if tt.idleNow {
				if e.IsActive() || e.Level() != 0 {
					t.Fatalf("after change: %v at %v, want idle", e.Stage(), e.Level())
				}
				return
			}
			if e.Stage() != StageRelease {
				t.Fatalf("stage after change = %v", e.Stage())
			}

			for i := range tt.maxSteps {
				v := e.Process()
				if v < 0 || v > before {
					t.Fatalf("sample %d = %v, outside [0, %v]", i, v, before)
				}
				if !e.IsActive() {
					return
				}
			}
			t.Errorf("still %v at %v after %d samples", e.Stage(), e.Level(), tt.maxSteps)
		})
	}
}

func TestEnvelopeParamsClamped(t *testing.T) {
	t.Parallel()

	e := newTestEnvelope(1000, EnvelopeParams{Attack: -1, Decay: 99, Sustain: 2, Release: 6})
	want := EnvelopeParams{Attack: 0, Decay: MaxEnvelopeTime, Sustain: 1, Release: MaxEnvelopeTime}
	if e.Params() != want {
		t.Errorf("Params() = %+v, want %+v", e.Params(), want)
	}
}

func TestEnvelopeSustainChangeWhileHeld(t *testing.T) {
	t.Parallel()

	e := newTestEnvelope(1000, EnvelopeParams{Sustain: 0.8})
	e.NoteOn()
	e.SetParams(EnvelopeParams{Sustain: 0.4})
	if got := e.Process(); got != 0.4 {
		t.Errorf("level = %v, want new sustain 0.4", got)
	}
}

func BenchmarkEnvelope(b *testing.B) {
	e := newTestEnvelope(48000, DefaultEnvelopeParams)
	buf := make([]float32, 512)

	b.ReportAllocs()
	for i := 0; b.Loop(); i++ {
		if i%200 == 0 {
			e.NoteOn()
		}
		e.Fill(buf)
	}
}
