// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"cmp"
	"math"
	"slices"

	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/synth"
)

// Note is one key press. Start and Length are in beats.
type Note struct {
	Start    float64
	Length   float64
	Key      int
	Velocity float32
}

// End is the beat the note is released on.
func (n Note) End() float64 { return n.Start + n.Length }

// TempoChange switches to BPM from Beat on.
type TempoChange struct {
	Beat float64
	BPM  float64
}

// Sequence is a list of notes with a starting tempo and optional tempo
// changes. The zero value is an empty sequence at modulation.DefaultBPM.
type Sequence struct {
	BPM   float64
	Tempo []TempoChange
	Notes []Note
}

// Timed is an event at an absolute frame. Event.Offset is left at zero;
// whoever renders the event makes it relative to the block.
type Timed struct {
	Frame int64
	Event synth.Event
}

// Add appends a note.
func (s *Sequence) Add(start, length float64, key int, velocity float32) {
	s.Notes = append(s.Notes, Note{Start: start, Length: length, Key: key, Velocity: velocity})
}

// SetTempo sets the tempo from beat on. Beat 0 replaces the starting BPM.
// Non-positive values are ignored.
func (s *Sequence) SetTempo(beat, bpm float64) {
	if bpm <= 0 || beat < 0 {
		return
	}
	if beat == 0 {
		s.BPM = bpm
		return
	}
	s.Tempo = append(s.Tempo, TempoChange{Beat: beat, BPM: bpm})
}

// StartBPM is the tempo at beat 0.
func (s *Sequence) StartBPM() float64 {
	if s.BPM > 0 {
		return s.BPM
	}

	return modulation.DefaultBPM
}

// End is the beat the last note is released on.
func (s *Sequence) End() float64 {
	var end float64
	for _, n := range s.Notes {
		end = max(end, n.End())
	}

	return end
}

// Seconds converts a beat position to time through the tempo map.
func (s *Sequence) Seconds(beat float64) float64 {
	changes := slices.SortedStableFunc(slices.Values(s.Tempo), func(a, b TempoChange) int {
		return cmp.Compare(a.Beat, b.Beat)
	})

	bpm := s.StartBPM()
	var t, last float64
	for _, c := range changes {
		if c.BPM <= 0 || c.Beat <= 0 {
			continue
		}
		if beat <= c.Beat {
			break
		}
		t += (c.Beat - last) * 60 / bpm
		last, bpm = c.Beat, c.BPM
	}

	return t + (beat-last)*60/bpm
}

// Frame converts a beat position to a frame index.
func (s *Sequence) Frame(beat float64, sampleRate float64) int64 {
	return int64(math.Round(s.Seconds(beat) * sampleRate))
}

// Frames is the length of the sequence in frames.
func (s *Sequence) Frames(sampleRate float64) int64 {
	return s.Frame(s.End(), sampleRate)
}

// Schedule returns note-on and note-off events in frame order. Notes that
// do not last a whole frame are dropped. A release and a press landing on
// the same frame keep the release first, so back-to-back notes on one key
// retrigger.
func (s *Sequence) Schedule(sampleRate float64) []Timed {
	out := make([]Timed, 0, 2*len(s.Notes))
	for _, n := range s.Notes {
		on := s.Frame(n.Start, sampleRate)
		off := s.Frame(n.End(), sampleRate)
		if off <= on || n.Start < 0 {
			continue
		}
		out = append(out,
			Timed{Frame: on, Event: synth.NoteOnAt(0, n.Key, n.Velocity)},
			Timed{Frame: off, Event: synth.NoteOffAt(0, n.Key)},
		)
	}

	slices.SortStableFunc(out, func(a, b Timed) int {
		if c := cmp.Compare(a.Frame, b.Frame); c != 0 {
			return c
		}
		return cmp.Compare(rank(a.Event.Kind), rank(b.Event.Kind))
	})

	return out
}

func rank(k synth.EventKind) int {
	if k == synth.NoteOn {
		return 1
	}

	return 0
}
