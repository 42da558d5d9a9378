// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/formats/internal/pcm"
)

const formatPCM = 1

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("reading wav header: %w", err)
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	if !validDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	// 8-bit WAV is unsigned.
	bias := 0
	if depth == 8 {
		bias = 128
	}

	return pcm.NewSource(dec, int(dec.SampleRate), int(dec.NumChans), depth, bias), nil
}

func validDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}
