// SPDX-License-Identifier: EPL-2.0

// Package synth is the polyphonic engine: voices made of path readers,
// the shared LFOs and envelope settings that modulate them, and the master
// stage (level, DC blocking, metering) that sums them.
//
// Typical use from an audio callback:
//
//	e := synth.New(synth.WithVoices(8))
//	e.Images().SetImage(img, 512)
//	e.Prepare(48000, 512)
//
//	// per block
//	out.Clear()
//	e.Render(out, 0, n, events)
//
// Render is additive and never allocates once prepared. Parameters are set
// from other goroutines through Reader, Envelope, LFO and Set; a display
// polls Telemetry and Meter.
package synth
