// SPDX-License-Identifier: EPL-2.0

package audiotest

import "sync/atomic"

// CountingSampler is an image sampler with a uniform brightness that
// counts how often it is sampled. It satisfies bitmap.Sampler.
type CountingSampler struct {
	Width, Height int
	Value         float32 // brightness returned by every tap, in [-1, 1]

	calls atomic.Int64
}

func NewCountingSampler(width, height int, value float32) *CountingSampler {
	return &CountingSampler{Width: width, Height: height, Value: value}
}

func (s *CountingSampler) Bounds() (int, int) { return s.Width, s.Height }

func (s *CountingSampler) Brightness(float32, float32) float32 {
	s.calls.Add(1)
	return s.Value
}

// Calls is the number of Brightness calls so far.
func (s *CountingSampler) Calls() int64 { return s.calls.Load() }

// ResetCalls zeroes the counter.
func (s *CountingSampler) ResetCalls() { s.calls.Store(0) }
