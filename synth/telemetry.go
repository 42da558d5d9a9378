// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"sync"

	"github.com/ik5/scansynth/reader"
)

// VoiceInfo is what a display needs to draw one voice.
type VoiceInfo struct {
	Index         int
	Active        bool
	Note          int
	Velocity      float32
	EnvelopeLevel float32
	Readers       []reader.DrawInfo
}

// Telemetry is the per-voice state published once per block by the audio
// thread. Readers call Snapshot from any goroutine.
type Telemetry struct {
	mu     sync.Mutex
	voices []VoiceInfo
}

func newTelemetry(voices, readers int) *Telemetry {
	t := &Telemetry{voices: make([]VoiceInfo, voices)}
	for i := range t.voices {
		t.voices[i] = VoiceInfo{Index: i, Note: -1, Readers: make([]reader.DrawInfo, readers)}
	}

	return t
}

func (t *Telemetry) publish(v *Voice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info := &t.voices[v.index]
	info.Active = v.IsActive()
	info.Note = v.note
	info.Velocity = v.velocity
	info.EnvelopeLevel = v.envs[0].Level()
	for i, r := range v.osc.readers {
		info.Readers[i] = r.DrawInfo()
	}
}

// Snapshot copies every voice into dst, reusing its storage, and returns
// it.
func (t *Telemetry) Snapshot(dst []VoiceInfo) []VoiceInfo {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cap(dst) < len(t.voices) {
		dst = make([]VoiceInfo, len(t.voices))
	}
	dst = dst[:len(t.voices)]
	for i, src := range t.voices {
		readers := append(dst[i].Readers[:0], src.Readers...)
		dst[i] = src
		dst[i].Readers = readers
	}

	return dst
}

// Active counts the voices that were sounding at their last block.
func (t *Telemetry) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, v := range t.voices {
		if v.Active {
			n++
		}
	}

	return n
}
