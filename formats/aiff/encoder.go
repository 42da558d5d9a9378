// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/scansynth/audio"
)

// Encode writes buf as signed integer PCM at bitDepth. Samples outside
// [-1, 1] are clipped.
func Encode(w io.WriteSeeker, buf *audio.Buffer, sampleRate, bitDepth int) error {
	if !validDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if buf == nil || buf.Channels() == 0 {
		return ErrEmptyBuffer
	}

	enc := aiff.NewEncoder(w, sampleRate, bitDepth, buf.Channels())
	if err := enc.Write(buf.IntBuffer(sampleRate, bitDepth)); err != nil {
		return fmt.Errorf("writing aiff: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing aiff: %w", err)
	}

	return nil
}
