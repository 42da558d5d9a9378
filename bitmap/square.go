// SPDX-License-Identifier: EPL-2.0

package bitmap

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Square pads img to a square canvas. The original sits in the middle and
// the padding is filled with mirror images of it: above and below for
// landscape images, left and right for portrait ones. Padding wider than
// the image itself is left black.
func Square(img image.Image) *image.RGBA {
	src := toRGBA(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == h {
		return src
	}

	size := max(w, h)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))

	if w > h {
		off := (size - h) / 2
		draw.Draw(dst, image.Rect(0, off, w, off+h), src, image.Point{}, draw.Src)
		// y' = off - y mirrors about the top edge, y' = off + 2h - y about
		// the bottom edge.
		mirror(dst, src, f64.Aff3{1, 0, 0, 0, -1, float64(off)})
		mirror(dst, src, f64.Aff3{1, 0, 0, 0, -1, float64(off + 2*h)})
	} else {
		off := (size - w) / 2
		draw.Draw(dst, image.Rect(off, 0, off+w, h), src, image.Point{}, draw.Src)
		mirror(dst, src, f64.Aff3{-1, 0, float64(off), 0, 1, 0})
		mirror(dst, src, f64.Aff3{-1, 0, float64(off + 2*w), 0, 1, 0})
	}

	return dst
}

func mirror(dst *image.RGBA, src *image.RGBA, s2d f64.Aff3) {
	draw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
}

// Fit scales img down so neither side exceeds maxSize, keeping the aspect
// ratio. Smaller images, and maxSize <= 0, return img unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}

	w, h := maxSize, maxSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*maxSize/b.Dx())
	} else {
		w = max(1, b.Dx()*maxSize/b.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	return dst
}

// Prepare is the provider pipeline used before publishing an image:
// downscale, square pad, snapshot.
func Prepare(img image.Image, maxSize int) *Snapshot {
	if img == nil || img.Bounds().Empty() {
		return nil
	}

	return FromImage(Square(Fit(img, maxSize)))
}
