// SPDX-License-Identifier: EPL-2.0

// Package audio provides the buffer and stream primitives the synthesizer
// renders into and exports through.
//
// # Buffer
//
// Buffer is a planar float32 buffer whose storage only grows. The render
// path sizes its buffers once for the largest block and then only clears,
// adds and scales them, so rendering never allocates:
//
//	buf := audio.NewBuffer(2, 512)
//	buf.AddSample(0, 10, 0.5)
//	buf.ApplyGain(0, 512, 0.8)
//
// # Source Interface
//
// Source is a pull-based interleaved stream:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders, the synthesizer stream and the processing stages below all
// implement it and can be chained.
//
// # Resampling and Mixing
//
// Resampler changes the sample rate with Catmull-Rom interpolation and
// MonoMixer averages channels:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//
// # Format Registry
//
// Registry maps file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	src, err := reg.Decode(".WAV", file)
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]; 0 is silence.
package audio
