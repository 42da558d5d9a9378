// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/formats/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading aiff header: %w", err)
	}

	depth := int(dec.BitDepth)
	if !validDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	// go-audio hands 8-bit AIFF bytes back unsigned.
	return pcm.NewSource(dec, format.SampleRate, format.NumChannels, depth, 0).SignExtend(), nil
}

func validDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}
