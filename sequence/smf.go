// SPDX-License-Identifier: EPL-2.0

package sequence

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ik5/scansynth/internal/logging"
)

type heldKey struct {
	channel uint8
	key     uint8
}

type pressed struct {
	start    float64
	velocity float32
}

// ReadSMF loads every track of a Standard MIDI File, ignoring channels.
// Tempo meta events build the tempo map. Notes still held when their
// track ends are released there.
func ReadSMF(r io.Reader) (*Sequence, error) {
	file, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}

	ticks, ok := file.TimeFormat.(smf.MetricTicks)
	if !ok || ticks == 0 {
		return nil, fmt.Errorf("%w: %v", ErrTimeFormat, file.TimeFormat)
	}
	perBeat := float64(ticks)

	seq := &Sequence{}
	for _, track := range file.Tracks {
		var abs uint64
		held := make(map[heldKey][]pressed)

		for _, ev := range track {
			abs += uint64(ev.Delta)
			beat := float64(abs) / perBeat

			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				seq.SetTempo(beat, bpm)
				continue
			}

			var channel, key, velocity uint8
			msg := midi.Message(ev.Message)
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				k := heldKey{channel, key}
				held[k] = append(held[k], pressed{start: beat, velocity: float32(velocity) / 127})
			case msg.GetNoteEnd(&channel, &key):
				k := heldKey{channel, key}
				if stack := held[k]; len(stack) > 0 {
					p := stack[0]
					held[k] = stack[1:]
					seq.Add(p.start, beat-p.start, int(key), p.velocity)
				}
			}
		}

		end := float64(abs) / perBeat
		for k, stack := range held {
			for _, p := range stack {
				seq.Add(p.start, end-p.start, int(k.key), p.velocity)
			}
		}
	}

	slices.SortStableFunc(seq.Notes, func(a, b Note) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})

	logging.L().Debug("midi file read", "tracks", len(file.Tracks), "notes", len(seq.Notes), "bpm", seq.StartBPM())

	return seq, nil
}
