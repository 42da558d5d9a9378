// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"cmp"

	"gitlab.com/gomidi/midi/v2"
)

// EventKind says what an Event does to the voices.
type EventKind uint8

const (
	NoteOn EventKind = iota
	NoteOff
	AllNotesOff
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case AllNotesOff:
		return "all-notes-off"
	default:
		return "unknown"
	}
}

// MIDI controllers handled by EventFromMIDI.
const (
	ccAllSoundOff = 120
	ccAllNotesOff = 123
)

// Event is a note message stamped with a frame offset into the block
// passed to Engine.Render.
type Event struct {
	Offset       int
	Kind         EventKind
	Note         int
	Velocity     float32 // [0, 1]
	AllowTailOff bool
}

// NoteOnAt starts note at offset.
func NoteOnAt(offset, note int, velocity float32) Event {
	return Event{Offset: offset, Kind: NoteOn, Note: note, Velocity: velocity}
}

// NoteOffAt releases note at offset, letting its envelopes ring out.
func NoteOffAt(offset, note int) Event {
	return Event{Offset: offset, Kind: NoteOff, Note: note, AllowTailOff: true}
}

// EventFromMIDI converts a channel voice message. Note-on with velocity 0
// is a note-off, controller 123 releases every note and controller 120
// silences them at once. Other messages report false.
func EventFromMIDI(msg midi.Message, offset int) (Event, bool) {
	var channel, key, velocity, controller, value uint8

	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return NoteOnAt(offset, int(key), float32(velocity)/127), true
	case msg.GetNoteEnd(&channel, &key):
		return NoteOffAt(offset, int(key)), true
	case msg.GetControlChange(&channel, &controller, &value):
		switch controller {
		case ccAllNotesOff:
			return Event{Offset: offset, Kind: AllNotesOff, AllowTailOff: true}, true
		case ccAllSoundOff:
			return Event{Offset: offset, Kind: AllNotesOff}, true
		}
	}

	return Event{}, false
}

func byOffset(a, b Event) int {
	return cmp.Compare(a.Offset, b.Offset)
}
