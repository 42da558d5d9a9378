// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fakes shared by the package tests. It imports
// nothing from the module so any package can use it without cycles.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// MockSource generates frames from a waveform function. It satisfies
// audio.Source.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	generated  int
	waveform   func(frame, channel int) float32
	closed     bool
}

// NewMockSource returns a source producing frames frames of waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource yields frame/frames on every channel, a slope from 0 to 1.
func NewRampSource(sampleRate, channels, frames int) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the generator.
func (m *MockSource) Reset() { m.generated = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.generated)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += n

	if m.generated >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// ErrInjected is returned by FailingSource.
var ErrInjected = errors.New("injected failure")

// FailingSource returns ErrInjected after After samples have been served.
type FailingSource struct {
	*MockSource
	After int
	read  int
}

func NewFailingSource(sampleRate, channels, after int) *FailingSource {
	return &FailingSource{
		MockSource: NewConstantSource(sampleRate, channels, math.MaxInt32, 0.25),
		After:      after,
	}
}

func (f *FailingSource) ReadSamples(dst []float32) (int, error) {
	if f.read >= f.After {
		return 0, ErrInjected
	}

	n, err := f.MockSource.ReadSamples(dst[:min(len(dst), f.After-f.read)])
	f.read += n

	return n, err
}
