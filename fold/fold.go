// SPDX-License-Identifier: EPL-2.0

package fold

import (
	"errors"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/formats/aiff"
	"github.com/ik5/scansynth/formats/mp3"
	"github.com/ik5/scansynth/formats/vorbis"
	"github.com/ik5/scansynth/formats/wav"
	"github.com/ik5/scansynth/internal/logging"
	"github.com/ik5/scansynth/utils"
)

const (
	MinSize     = 2
	MaxSize     = 4096
	DefaultSize = 256
)

var (
	ErrInvalidSize = errors.New("fold size out of range")
	ErrEmptyStream = errors.New("audio stream holds no samples")
)

// Registry returns decoders for every supported container, keyed by file
// extension.
func Registry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})

	return reg
}

// Fold drains src and lays it out as a size×size image. src is closed.
func Fold(src audio.Source, size int) (*image.Gray, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	defer src.Close()

	mono, err := audio.ReadAll(audio.NewMonoMixer(src))
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	if len(mono) == 0 {
		return nil, ErrEmptyStream
	}

	samples, err := stretch(mono, src.SampleRate(), size*size)
	if err != nil {
		return nil, err
	}

	img := image.NewGray(image.Rect(0, 0, size, size))
	for i, s := range samples {
		img.Pix[(i/size)*img.Stride+i%size] = level(s)
	}

	logging.L().Debug("audio folded", "input_samples", len(mono), "size", size)

	return img, nil
}

// File decodes the file at path, picking the decoder by extension, and
// folds it.
func File(path string, size int) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := Registry().Decode(filepath.Ext(path), f)
	if err != nil {
		return nil, err
	}

	img, err := Fold(src, size)
	if err != nil {
		return nil, fmt.Errorf("folding %s: %w", path, err)
	}

	return img, nil
}

// stretch resamples mono to exactly want samples. The resampler rate is
// rounded to whole hertz, so the result is trimmed or padded with silence.
func stretch(mono []float32, rate, want int) ([]float32, error) {
	if len(mono) == want {
		return mono, nil
	}

	rate = max(rate, 1)
	dstRate := int(math.Ceil(float64(rate) * float64(want) / float64(len(mono))))

	out, err := audio.ReadAll(audio.NewResampler(audio.NewSliceSource(mono, rate, 1), max(dstRate, 1)))
	if err != nil {
		return nil, fmt.Errorf("resampling: %w", err)
	}

	if len(out) >= want {
		return out[:want], nil
	}

	return append(out, make([]float32, want-len(out))...), nil
}

// level maps a sample in [-1, 1] to a grey level.
func level(s float32) uint8 {
	b := utils.Clamp((s+1)/2, 0, 1)
	return uint8(b*255 + 0.5)
}
