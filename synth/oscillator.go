// SPDX-License-Identifier: EPL-2.0

package synth

import (
	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/modulation"
	"github.com/ik5/scansynth/reader"
)

// Oscillator sums the readers of one voice.
type Oscillator struct {
	readers []*reader.Reader
	scratch *audio.Buffer
}

// NewOscillator returns one reader per parameter slot.
func NewOscillator(params []*reader.Params) *Oscillator {
	o := &Oscillator{
		readers: make([]*reader.Reader, len(params)),
		scratch: &audio.Buffer{},
	}
	for i, p := range params {
		o.readers[i] = reader.New(p)
	}

	return o
}

// Prepare readies every reader and sizes the mixing buffer.
func (o *Oscillator) Prepare(sampleRate float64, channels, maxBlock int) {
	for _, r := range o.readers {
		r.Prepare(sampleRate)
	}
	o.scratch.SetSize(channels, maxBlock)
}

func (o *Oscillator) Readers() []*reader.Reader { return o.readers }

// SetFrequency retunes every reader.
func (o *Oscillator) SetFrequency(hz float32) {
	for _, r := range o.readers {
		r.SetFrequency(hz)
	}
}

// Process adds n frames at start of out. A lone reader writes straight
// into out; several are mixed in the scratch buffer first.
func (o *Oscillator) Process(img bitmap.Sampler, out *audio.Buffer, start, n int, mods *modulation.Matrix) {
	switch len(o.readers) {
	case 0:
		return
	case 1:
		o.readers[0].Process(img, out, start, n, mods)
		return
	}

	o.scratch.SetSize(out.Channels(), n)
	o.scratch.Clear()
	for _, r := range o.readers {
		r.Process(img, o.scratch, 0, n, mods)
	}
	for ch := range out.Channels() {
		out.AddFrom(ch, start, o.scratch, ch, 0, n)
	}
}
