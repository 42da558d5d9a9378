// SPDX-License-Identifier: EPL-2.0

// Package reader turns a path over an image into an audio signal.
//
// A Reader walks a line, circle or ellipse in normalised image coordinates
// at the note's frequency and reads the bilinear brightness under it, so one
// trip round the path is one waveform cycle. Three taps at half, base and
// double the phase rate are blended by the path's size: a short path
// reads few pixels per cycle and leans on the faster tap, a long one on the
// slower tap, which keeps the perceived brightness steady as the path
// grows.
//
// Each sample then runs through a state variable filter, the volume and a
// constant-power pan before being added to the output. Every geometric and
// tonal parameter can be driven by one row of a modulation.Matrix through
// its Binding in Params.
//
// Params is shared between voices and written from control code; a Reader
// belongs to one voice and to the audio thread.
package reader
