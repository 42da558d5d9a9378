// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/scansynth/utils"
)

// Resampler streams src at a new sample rate using Catmull-Rom
// interpolation. Channel count is preserved. When downsampling, incoming
// frames pass through a one-pole low-pass first.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	step     float64 // source frames per output frame

	// window holds frames t-1, t, t+1, t+2; output is interpolated
	// between window[1] and window[2]. Past the end of the source the last
	// frame is repeated and real marks which slots hold source frames.
	window [4][]float32
	real   [4]bool
	frac   float64
	primed bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool

	smooth bool
	alpha  float32
	state  []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := max(src.Channels(), 1)
	step := float64(src.SampleRate()) / float64(max(dstRate, 1))

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, size),
		state:    make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	if step > 1 {
		r.smooth = true
		r.alpha = utils.Clamp(float32(1/step), 0.1, 1)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampler source: %w", err)
	}

	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	for r.inPos >= r.inLen {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("reading resampler source: %w", err)
		} else if n == 0 {
			r.srcEOF = true
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.smooth {
		for c := range dst {
			r.state[c] += r.alpha * (dst[c] - r.state[c])
			dst[c] = r.state[c]
		}
	}

	return true, nil
}

func (r *Resampler) prime() error {
	ok, err := r.pull(r.window[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	if r.smooth {
		// Start the filter settled on the first frame.
		copy(r.state, r.in[r.inPos-r.channels:r.inPos])
		copy(r.window[1], r.state)
	}

	copy(r.window[0], r.window[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.pull(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}

	r.primed = true

	return nil
}

func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	r.window[3] = first
	copy(r.real[:], r.real[1:])

	ok, err := r.pull(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok

	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
