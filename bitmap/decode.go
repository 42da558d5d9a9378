// SPDX-License-Identifier: EPL-2.0

package bitmap

import (
	"fmt"
	"image"
	"io"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ik5/scansynth/internal/logging"
)

// Decode reads a PNG, JPEG, GIF, BMP, TIFF or WebP image.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return img, format, nil
}

// Load decodes the image at path and prepares it for scanning.
func Load(path string, maxSize int) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	snap := Prepare(img, maxSize)
	w, h := snap.Bounds()
	logging.L().Info("image loaded", "path", path, "format", format, "width", w, "height", h)

	return snap, nil
}
