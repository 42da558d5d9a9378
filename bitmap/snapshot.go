// SPDX-License-Identifier: EPL-2.0

package bitmap

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Sampler is what a path reader needs from an image: its size and the
// bilinear brightness at a pixel position.
type Sampler interface {
	// Bounds returns the width and height in pixels.
	Bounds() (width, height int)
	// Brightness returns the bilinear brightness at pixel coordinates
	// (px, py), mapped to [-1, 1]. Coordinates are clamped to the image.
	Brightness(px, py float32) float32
}

// Snapshot is an immutable RGBA image prepared for sampling. A new image
// means a new Snapshot; readers holding the old one keep using it safely.
//
// All methods are safe on a nil *Snapshot, which behaves as an empty image.
type Snapshot struct {
	width  int
	height int
	pix    []uint8   // RGBA, row-major
	luma   []float32 // max(R,G,B)/255 per texel
}

var _ Sampler = (*Snapshot)(nil)

// New builds a Snapshot from width*height RGBA pixels. pix is copied.
func New(width, height int, pix []uint8) (*Snapshot, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(pix) != 4*width*height {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrPixelCount, len(pix), 4*width*height)
	}

	s := &Snapshot{
		width:  width,
		height: height,
		pix:    append([]uint8(nil), pix...),
	}
	s.computeLuma()

	return s, nil
}

// FromImage converts any image to a Snapshot without resizing or padding.
// An empty image yields nil.
func FromImage(img image.Image) *Snapshot {
	if img == nil {
		return nil
	}

	rgba := toRGBA(img)
	b := rgba.Bounds()
	if b.Empty() {
		return nil
	}

	s := &Snapshot{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]uint8, 4*b.Dx()*b.Dy()),
	}
	for y := range s.height {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+4*s.width]
		copy(s.pix[4*y*s.width:], row)
	}
	s.computeLuma()

	return s
}

// toRGBA returns img as an *image.RGBA anchored at the origin, copying only
// when it has to.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	return dst
}

func (s *Snapshot) computeLuma() {
	s.luma = make([]float32, s.width*s.height)
	for i := range s.luma {
		p := s.pix[4*i : 4*i+3]
		s.luma[i] = float32(max(p[0], p[1], p[2])) / 255
	}
}

// Valid reports whether the snapshot can be scanned. Images one pixel wide
// or tall have no path to interpolate along and are treated as absent.
func (s *Snapshot) Valid() bool {
	return s != nil && s.width > 1 && s.height > 1
}

func (s *Snapshot) Bounds() (int, int) {
	if s == nil {
		return 0, 0
	}

	return s.width, s.height
}

// Texel returns the brightness of pixel (x, y) in [0, 1], clamping the
// coordinates to the image.
func (s *Snapshot) Texel(x, y int) float32 {
	if s == nil || len(s.luma) == 0 {
		return 0
	}

	x = min(max(x, 0), s.width-1)
	y = min(max(y, 0), s.height-1)

	return s.luma[y*s.width+x]
}

// Bilinear returns the brightness at pixel coordinates in [0, 1].
func (s *Snapshot) Bilinear(px, py float32) float32 {
	if s == nil || len(s.luma) == 0 {
		return 0
	}
	// NaN fails every comparison; pin it to the origin.
	if px != px {
		px = 0
	}
	if py != py {
		py = 0
	}

	px = min(max(px, 0), float32(s.width-1))
	py = min(max(py, 0), float32(s.height-1))

	ix, iy := int(px), int(py)
	fx, fy := px-float32(ix), py-float32(iy)
	ix1 := min(ix+1, s.width-1)
	iy1 := min(iy+1, s.height-1)

	row0 := s.luma[iy*s.width:]
	row1 := s.luma[iy1*s.width:]

	top := row0[ix] + (row0[ix1]-row0[ix])*fx
	bottom := row1[ix] + (row1[ix1]-row1[ix])*fx

	return top + (bottom-top)*fy
}

// Brightness returns the bilinear brightness at pixel coordinates mapped to
// [-1, 1].
func (s *Snapshot) Brightness(px, py float32) float32 {
	return s.Bilinear(px, py)*2 - 1
}

// BrightnessUV samples at normalised coordinates: u, v in [0, 1] span the
// image from the first to the last pixel centre. The result is in [0, 1].
func (s *Snapshot) BrightnessUV(u, v float32) float32 {
	if s == nil {
		return 0
	}

	return s.Bilinear(u*float32(s.width-1), v*float32(s.height-1))
}

// RGBA returns a copy of the pixels, for display.
func (s *Snapshot) RGBA() *image.RGBA {
	if s == nil {
		return image.NewRGBA(image.Rectangle{})
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.pix)

	return img
}
