// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// SliceSource serves interleaved samples held in memory.
type SliceSource struct {
	samples    []float32
	sampleRate int
	channels   int
	pos        int
}

// NewSliceSource wraps samples without copying them.
func NewSliceSource(samples []float32, sampleRate, channels int) *SliceSource {
	return &SliceSource{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   max(channels, 1),
	}
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }
func (s *SliceSource) Close() error    { return nil }

// Len is the total number of samples held.
func (s *SliceSource) Len() int { return len(s.samples) }

// Reset rewinds the source to the first sample.
func (s *SliceSource) Reset() { s.pos = 0 }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	if s.pos >= len(s.samples) {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src into memory. It stops at io.EOF and returns any other
// error together with what was read so far.
func ReadAll(src Source) ([]float32, error) {
	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}
	size -= size % max(src.Channels(), 1)
	if size == 0 {
		size = max(src.Channels(), 1)
	}

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			// A source that makes no progress without an error is treated as finished.
			return out, nil
		}
	}
}
