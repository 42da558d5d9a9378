// SPDX-License-Identifier: EPL-2.0

package modulation

// RampSeconds is the smoothing time used for every continuously variable
// parameter.
const RampSeconds = 0.05

// Smoother ramps linearly from its current value to a target over a fixed
// number of samples. A new target restarts the ramp from wherever the value
// is now. The zero value holds 0 and jumps straight to new targets until
// Reset gives it a ramp length.
type Smoother struct {
	current   float32
	target    float32
	step      float32
	steps     int
	countdown int
}

// NewSmoother returns a smoother resting at v.
func NewSmoother(v float32) Smoother {
	return Smoother{current: v, target: v}
}

// Reset sets the ramp length for sampleRate and snaps to the target.
func (s *Smoother) Reset(sampleRate, seconds float64) {
	s.steps = int(seconds * sampleRate)
	s.SetCurrentAndTarget(s.target)
}

// SetCurrentAndTarget jumps to v without ramping.
func (s *Smoother) SetCurrentAndTarget(v float32) {
	s.current = v
	s.target = v
	s.countdown = 0
}

// SetTarget starts a ramp towards v. Setting the current target again is a
// no-op so a ramp in flight keeps its pace.
func (s *Smoother) SetTarget(v float32) {
	if v == s.target {
		return
	}
	if s.steps <= 0 {
		s.SetCurrentAndTarget(v)
		return
	}

	s.target = v
	s.countdown = s.steps
	s.step = (s.target - s.current) / float32(s.countdown)
}

// Next advances one sample and returns the new value. The final step lands
// exactly on the target.
func (s *Smoother) Next() float32 {
	if s.countdown <= 0 {
		return s.target
	}

	s.countdown--
	if s.countdown > 0 {
		s.current += s.step
	} else {
		s.current = s.target
	}

	return s.current
}

// Skip advances n samples at once.
func (s *Smoother) Skip(n int) {
	if n >= s.countdown {
		s.SetCurrentAndTarget(s.target)
		return
	}

	s.current += s.step * float32(n)
	s.countdown -= n
}

func (s *Smoother) Current() float32  { return s.current }
func (s *Smoother) Target() float32   { return s.target }
func (s *Smoother) IsSmoothing() bool { return s.countdown > 0 }
