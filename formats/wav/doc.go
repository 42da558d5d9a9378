// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF WAVE files with go-audio/wav.
//
// Decoder handles integer PCM at 8, 16, 24 and 32 bits and registers with
// an audio.Registry:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//
// Encode writes an audio.Buffer, such as an offline bounce of the synth,
// at any of the same depths. EncodeMono16 writes the int16 output of
// scansynth.BounceMono16.
package wav
