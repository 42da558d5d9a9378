// SPDX-License-Identifier: EPL-2.0

// Package scansynth plays images as sound.
//
// A synth.Engine runs a handful of path readers (lines, circles and
// ellipses) over the brightness of a picture. Each voice sweeps its
// readers at the note's frequency, so the shape of the path and the image
// under it decide the timbre. This package ties the engine to the rest of
// the module: Stream turns an engine into an audio.Source for real-time
// playback, and Bounce renders a sequence offline.
//
// # Quick Start
//
//	e := synth.New(synth.WithReaders(reader.Circle))
//	snap, _ := bitmap.GeneratePattern("bessel", 256)
//	e.Images().Swap(snap)
//
//	seq := &sequence.Sequence{BPM: 120}
//	seq.Add(0, 2, 48, 0.8)
//
//	buf, _ := scansynth.Bounce(e, seq, 44100, time.Second)
//	f, _ := os.Create("out.wav")
//	wav.Encode(f, buf, 44100, 16)
//
// # Sub-packages
//
//   - reader: path geometry, parameters and the per-sample reader
//   - synth: voices, oscillator, polyphonic engine, MIDI events
//   - modulation: LFOs, ADSR envelopes, the modulation matrix and laws
//   - filter: state variable and DC-blocking filters
//   - bitmap: image snapshots, square padding, generated patterns
//   - sequence: notes from MIDI files and Lua scripts
//   - fold: audio files folded into scan images
//   - audio, formats/...: the PCM pipeline and codecs
//
// # Logging
//
// Every package logs through log/slog. Nothing is printed until a logger
// is installed with SetLogger.
package scansynth
