// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/scansynth/audio"
)

// Encode writes buf as integer PCM at bitDepth (8, 16, 24 or 32). Samples
// outside [-1, 1] are clipped.
func Encode(w io.WriteSeeker, buf *audio.Buffer, sampleRate, bitDepth int) error {
	if !validDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if buf == nil || buf.Channels() == 0 {
		return ErrEmptyBuffer
	}

	ib := buf.IntBuffer(sampleRate, bitDepth)
	if bitDepth == 8 {
		for i := range ib.Data {
			ib.Data[i] += 128
		}
	}

	return write(w, ib, sampleRate, bitDepth, buf.Channels())
}

// EncodeMono16 writes 16-bit mono samples.
func EncodeMono16(w io.WriteSeeker, samples []int16, sampleRate int) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	ib := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	return write(w, ib, sampleRate, 16, 1)
}

func write(w io.WriteSeeker, ib *goaudio.IntBuffer, sampleRate, bitDepth, channels int) error {
	enc := wav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM)
	if err := enc.Write(ib); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}

	return nil
}
