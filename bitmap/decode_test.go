// SPDX-License-Identifier: EPL-2.0

package bitmap

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	src := gradient(16, 8)

	var pngBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, src); err != nil {
		t.Fatal(err)
	}
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{name: "png", data: pngBuf.Bytes(), format: "png"},
		{name: "bmp", data: bmpBuf.Bytes(), format: "bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			img, format, err := Decode(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if format != tt.format || img.Bounds() != image.Rect(0, 0, 16, 8) {
				t.Errorf("decoded %s %v", format, img.Bounds())
			}
		})
	}

	if _, _, err := Decode(strings.NewReader("not an image")); !errors.Is(err, ErrDecode) {
		t.Errorf("garbage error = %v, want ErrDecode", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "strip.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, gradient(32, 8)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := s.Bounds(); w != 16 || h != 16 {
		t.Errorf("Load() = %dx%d, want 16x16", w, h)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("missing file loaded")
	}
}
