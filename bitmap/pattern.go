// SPDX-License-Identifier: EPL-2.0

package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
)

// PatternFunc is a scalar field sampled over x, y in [-5, 5].
type PatternFunc func(x, y float64) float64

var patterns = map[string]PatternFunc{
	"wave": func(x, y float64) float64 {
		return math.Sin(2*x)*math.Cos(2*y) + math.Sin(0.1*x*y)
	},
	"sinc": func(x, y float64) float64 {
		r := math.Sqrt(20*x*x+20*y*y) + 1e-9
		return math.Sin(r) / r
	},
	"bessel": func(x, y float64) float64 {
		return math.J0(x*x + y*y)
	},
	"bessel-azimuthal": func(x, y float64) float64 {
		return math.J0(x*x+y*y) * math.Cos(2*math.Atan2(x, y))
	},
}

// PatternNames lists the built-in patterns in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Generate renders fn on a size x size grid spanning [-5, 5] on both axes
// and normalises the result to the full 16-bit grey range. A flat field
// renders black.
func Generate(size int, fn PatternFunc) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, size, size))
	if size <= 0 {
		return img
	}

	coord := func(i int) float64 {
		if size == 1 {
			return -5
		}
		return -5 + 10*float64(i)/float64(size-1)
	}

	z := make([]float64, size*size)
	lo, hi := math.Inf(1), math.Inf(-1)
	for row := range size {
		y := coord(row)
		for col := range size {
			v := fn(coord(col), y)
			z[row*size+col] = v
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	if hi == lo {
		return img
	}

	scale := 1 / (hi - lo)
	for i, v := range z {
		img.SetGray16(i%size, i/size, color.Gray16{Y: uint16((v - lo) * scale * 65535)})
	}

	return img
}

// GeneratePattern renders the named built-in pattern as a Snapshot.
func GeneratePattern(name string, size int) (*Snapshot, error) {
	fn, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}

	return FromImage(Generate(size, fn)), nil
}

// Uniform returns a width x height snapshot where every pixel is the grey
// level given.
func Uniform(width, height int, level uint8) *Snapshot {
	if width <= 0 || height <= 0 {
		return nil
	}

	pix := make([]uint8, 4*width*height)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = level, level, level, 0xff
	}

	s, _ := New(width, height, pix)

	return s
}
