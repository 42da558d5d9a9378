// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeSMF(t *testing.T, tracks ...smf.Track) *bytes.Buffer {
	t.Helper()

	file := smf.New()
	file.TimeFormat = smf.MetricTicks(96)
	for _, tr := range tracks {
		if err := file.Add(tr); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	return &buf
}

func TestReadSMF(t *testing.T) {
	t.Parallel()

	var conductor smf.Track
	conductor.Add(0, smf.MetaTempo(120))
	conductor.Add(384, smf.MetaTempo(60))
	conductor.Close(0)

	var notes smf.Track
	notes.Add(0, midi.NoteOn(0, 60, 127))
	notes.Add(96, midi.NoteOff(0, 60))
	notes.Add(0, midi.NoteOn(1, 64, 0)) // velocity 0 is a release with nothing held
	notes.Add(48, midi.NoteOn(0, 67, 64))
	notes.Add(0, midi.ProgramChange(0, 5))
	notes.Close(96)

	seq, err := ReadSMF(writeSMF(t, conductor, notes))
	if err != nil {
		t.Fatalf("ReadSMF() error = %v", err)
	}

	if seq.StartBPM() != 120 {
		t.Errorf("StartBPM() = %v, want 120", seq.StartBPM())
	}
	if len(seq.Tempo) != 1 || seq.Tempo[0] != (TempoChange{Beat: 4, BPM: 60}) {
		t.Errorf("Tempo = %+v, want one change to 60 at beat 4", seq.Tempo)
	}

	want := []Note{
		{Start: 0, Length: 1, Key: 60, Velocity: 1},
		// Still held at the end of the track.
		{Start: 1.5, Length: 1, Key: 67, Velocity: 64.0 / 127},
	}
	if len(seq.Notes) != len(want) {
		t.Fatalf("Notes = %+v, want %+v", seq.Notes, want)
	}
	for i := range want {
		if seq.Notes[i] != want[i] {
			t.Errorf("note %d = %+v, want %+v", i, seq.Notes[i], want[i])
		}
	}
}

func TestReadSMFOverlappingKeys(t *testing.T) {
	t.Parallel()

	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 60, 127))
	tr.Add(96, midi.NoteOn(0, 60, 127))
	tr.Add(96, midi.NoteOff(0, 60))
	tr.Add(96, midi.NoteOff(0, 60))
	tr.Close(0)

	seq, err := ReadSMF(writeSMF(t, tr))
	if err != nil {
		t.Fatal(err)
	}

	// Releases pair with presses first in, first out.
	want := []Note{
		{Start: 0, Length: 2, Key: 60, Velocity: 1},
		{Start: 1, Length: 2, Key: 60, Velocity: 1},
	}
	if len(seq.Notes) != 2 || seq.Notes[0] != want[0] || seq.Notes[1] != want[1] {
		t.Errorf("Notes = %+v, want %+v", seq.Notes, want)
	}
}

func TestReadSMFInvalid(t *testing.T) {
	t.Parallel()

	if _, err := ReadSMF(strings.NewReader("not a midi file")); err == nil {
		t.Error("ReadSMF() error = nil, want error")
	}
	if _, err := ReadSMF(strings.NewReader("")); err == nil || errors.Is(err, ErrTimeFormat) {
		t.Errorf("ReadSMF(empty) error = %v, want a read error", err)
	}
}
