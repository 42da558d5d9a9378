// SPDX-License-Identifier: EPL-2.0

package scansynth

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/sequence"
	"github.com/ik5/scansynth/synth"
)

// DefaultLiveEvents is the capacity of the Send queue.
const DefaultLiveEvents = 256

// Stream renders an engine on demand. It plays an optional scheduled
// sequence and any events passed to Send, which may be called from other
// goroutines. A stream with a length ends with io.EOF; without one it runs
// until closed.
type Stream struct {
	engine   *synth.Engine
	rate     int
	channels int

	schedule []sequence.Timed
	next     int
	frame    int64
	length   int64 // < 0 is endless

	live   chan synth.Event
	events []synth.Event
	block  *audio.Buffer
	closed atomic.Bool
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithSequence schedules seq from the first frame. Unless WithLength is
// also given the stream ends tail after the last note is released.
func WithSequence(seq *sequence.Sequence, tail time.Duration) StreamOption {
	return func(s *Stream) {
		if seq == nil {
			return
		}
		s.schedule = seq.Schedule(float64(s.rate))
		if s.length < 0 {
			s.length = seq.Frames(float64(s.rate)) + durationFrames(tail, s.rate)
		}
	}
}

// WithLength ends the stream after frames frames. Negative is endless.
func WithLength(frames int64) StreamOption {
	return func(s *Stream) { s.length = frames }
}

// WithLiveEvents sets the capacity of the Send queue.
func WithLiveEvents(n int) StreamOption {
	return func(s *Stream) {
		if n > 0 {
			s.live = make(chan synth.Event, n)
		}
	}
}

// NewStream prepares e at sampleRate and wraps it. The engine must not be
// rendered by anything else while the stream is in use.
func NewStream(e *synth.Engine, sampleRate int, opts ...StreamOption) *Stream {
	s := &Stream{
		engine:   e,
		rate:     max(sampleRate, 1),
		channels: e.Channels(),
		length:   -1,
		live:     make(chan synth.Event, DefaultLiveEvents),
	}
	for _, opt := range opts {
		opt(s)
	}

	e.Prepare(float64(s.rate), 0)
	block := e.MaxBlockSize()
	s.block = audio.NewBuffer(s.channels, block)
	s.events = make([]synth.Event, 0, 64)

	return s
}

func (s *Stream) SampleRate() int { return s.rate }
func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) BufSize() int    { return s.engine.MaxBlockSize() * s.channels }

// Engine returns the engine being rendered.
func (s *Stream) Engine() *synth.Engine { return s.engine }

// Position is the number of frames rendered so far.
func (s *Stream) Position() int64 { return s.frame }

// Close ends the stream. It may be called from any goroutine; reads after
// Close return io.EOF.
func (s *Stream) Close() error {
	s.closed.Store(true)
	return nil
}

// Send queues ev to start at the next block. It never blocks and reports
// false when the queue is full.
func (s *Stream) Send(ev synth.Event) bool {
	ev.Offset = 0
	select {
	case s.live <- ev:
		return true
	default:
		return false
	}
}

// ReadSamples renders len(dst)/Channels() frames, interleaved.
func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if s.closed.Load() {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if s.length >= 0 {
		left := s.length - s.frame
		if left <= 0 {
			return 0, io.EOF
		}
		frames = int(min(int64(frames), left))
	}

	written := 0
	for written < frames {
		n := min(frames-written, s.block.Frames())
		s.collect(n)

		s.block.ClearRange(0, n)
		s.engine.Render(s.block, 0, n, s.events)
		written += s.block.Interleave(dst[written*s.channels:], 0, n) / s.channels
		s.frame += int64(n)
	}

	return written * s.channels, nil
}

// collect gathers the live queue and the scheduled events due in the next
// n frames.
func (s *Stream) collect(n int) {
	s.events = s.events[:0]

drain:
	for {
		select {
		case ev := <-s.live:
			s.events = append(s.events, ev)
		default:
			break drain
		}
	}

	end := s.frame + int64(n)
	for s.next < len(s.schedule) && s.schedule[s.next].Frame < end {
		ev := s.schedule[s.next].Event
		ev.Offset = int(max(s.schedule[s.next].Frame-s.frame, 0))
		s.events = append(s.events, ev)
		s.next++
	}
}

func durationFrames(d time.Duration, rate int) int64 {
	if d <= 0 {
		return 0
	}

	return int64(d.Seconds() * float64(rate))
}
