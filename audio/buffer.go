// SPDX-License-Identifier: EPL-2.0

package audio

import (
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/scansynth/utils"
)

// Buffer is a planar multi-channel float32 buffer. Its storage only grows,
// so once sized for the largest block it never allocates again.
//
// Methods do not bounds-check beyond what slice indexing does; callers pass
// ranges that lie inside [0, Frames()).
type Buffer struct {
	store    [][]float32
	channels int
	frames   int
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(channels, frames int) *Buffer {
	b := &Buffer{}
	b.SetSize(channels, frames)

	return b
}

// SetSize changes the logical shape of the buffer. It reports whether new
// storage had to be allocated. Existing contents are not preserved when the
// shape changes.
func (b *Buffer) SetSize(channels, frames int) bool {
	channels = max(channels, 0)
	frames = max(frames, 0)

	grew := false
	if channels > len(b.store) {
		b.store = append(b.store, make([][]float32, channels-len(b.store))...)
		grew = true
	}

	for ch := range channels {
		if cap(b.store[ch]) < frames {
			b.store[ch] = make([]float32, frames)
			grew = true
		}
	}

	b.channels = channels
	b.frames = frames

	return grew
}

func (b *Buffer) Channels() int { return b.channels }
func (b *Buffer) Frames() int   { return b.frames }

// Channel returns the samples of channel ch. The slice aliases the buffer.
func (b *Buffer) Channel(ch int) []float32 {
	return b.store[ch][:b.frames]
}

// Clear zeroes every channel.
func (b *Buffer) Clear() {
	b.ClearRange(0, b.frames)
}

// ClearRange zeroes frames [start, start+n) of every channel.
func (b *Buffer) ClearRange(start, n int) {
	for ch := range b.channels {
		clear(b.store[ch][start : start+n])
	}
}

// AddSample accumulates v into frame i of channel ch.
func (b *Buffer) AddSample(ch, i int, v float32) {
	b.store[ch][i] += v
}

// AddFrom accumulates n frames of src channel srcCh, starting at srcStart,
// into channel ch starting at start.
func (b *Buffer) AddFrom(ch, start int, src *Buffer, srcCh, srcStart, n int) {
	dst := b.store[ch][start : start+n]
	in := src.store[srcCh][srcStart : srcStart+n]
	for i := range dst {
		dst[i] += in[i]
	}
}

// ApplyGain multiplies frames [start, start+n) of every channel by gain.
func (b *Buffer) ApplyGain(start, n int, gain float32) {
	if gain == 1 {
		return
	}
	for ch := range b.channels {
		s := b.store[ch][start : start+n]
		for i := range s {
			s[i] *= gain
		}
	}
}

// Magnitude returns the largest absolute sample in the given range of ch.
func (b *Buffer) Magnitude(ch, start, n int) float32 {
	var peak float32
	for _, v := range b.store[ch][start : start+n] {
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}

	return peak
}

// Interleave writes frames [start, start+n) into dst as interleaved samples
// and returns the number of samples written. Writing stops early when dst is
// too short for a whole frame.
func (b *Buffer) Interleave(dst []float32, start, n int) int {
	if b.channels == 0 {
		return 0
	}

	n = min(n, len(dst)/b.channels)
	w := 0
	for i := start; i < start+n; i++ {
		for ch := range b.channels {
			dst[w] = b.store[ch][i]
			w++
		}
	}

	return w
}

// IntBuffer converts the whole buffer to a go-audio IntBuffer at the given
// bit depth, clamping samples to [-1, 1].
func (b *Buffer) IntBuffer(sampleRate, bitDepth int) *goaudio.IntBuffer {
	data := make([]int, b.channels*b.frames)
	w := 0
	for i := range b.frames {
		for ch := range b.channels {
			data[w] = utils.Float32ToPCM(b.store[ch][i], bitDepth)
			w++
		}
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: b.channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}

// FromInterleaved resizes b to hold samples and de-interleaves them.
// A trailing partial frame is dropped.
func (b *Buffer) FromInterleaved(samples []float32, channels int) {
	if channels <= 0 {
		b.SetSize(0, 0)
		return
	}

	frames := len(samples) / channels
	b.SetSize(channels, frames)
	for i := range frames {
		for ch := range channels {
			b.store[ch][i] = samples[i*channels+ch]
		}
	}
}
