// SPDX-License-Identifier: EPL-2.0

// Package sequence describes what to play: notes placed on a beat grid
// with a tempo map. Sequences come from Standard MIDI Files (ReadSMF) or
// from Lua scripts (RunScript), and Schedule turns them into
// frame-stamped synth events for offline bouncing or a live stream.
//
// A script sees these functions:
//
//	tempo(bpm [, beat])              set the tempo, at beat 0 by default
//	note(beat, key, velocity, beats) add a note; velocity in [0, 1]
//	reader(i, name, value)           set a reader parameter (reader i, from 1)
//	envelope(i, a, d, s, r)          shape envelope i
//	lfo(i, hz)                       set the free-running rate of LFO i
//	set(name, value)                 any engine parameter by full name
//
// For example:
//
//	tempo(96)
//	reader(1, "size", 0.3)
//	for i = 0, 7 do
//	  note(i / 2, 48 + (i % 4) * 7, 0.8, 0.5)
//	end
package sequence
