// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"cmp"
	"math"
	"sync/atomic"
)

// Clamp limits v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Wrap01 folds x into [0, 1).
func Wrap01(x float32) float32 {
	x -= float32(math.Floor(float64(x)))
	// Tiny negative inputs round up to exactly 1.
	if x >= 1 {
		return 0
	}

	return x
}

// DecibelsToGain converts a level in dB to a linear gain. Anything at or
// below floorDB is treated as silence.
func DecibelsToGain(db, floorDB float32) float32 {
	if db <= floorDB {
		return 0
	}

	return float32(math.Pow(10, float64(db)/20))
}

// GainToDecibels converts a linear gain to dB, never returning less than
// floorDB.
func GainToDecibels(gain, floorDB float32) float32 {
	if gain <= 0 {
		return floorDB
	}

	return max(floorDB, float32(20*math.Log10(float64(gain))))
}

// AtomicFloat32 is a float32 that can be loaded and stored concurrently.
// The zero value holds 0.
type AtomicFloat32 struct {
	bits atomic.Uint32
}

// NewAtomicFloat32 returns an AtomicFloat32 holding v.
func NewAtomicFloat32(v float32) *AtomicFloat32 {
	f := &AtomicFloat32{}
	f.Store(v)

	return f
}

func (f *AtomicFloat32) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

func (f *AtomicFloat32) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}
