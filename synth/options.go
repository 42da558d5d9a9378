// SPDX-License-Identifier: EPL-2.0

package synth

import "github.com/ik5/scansynth/reader"

const (
	DefaultVoices    = 4
	DefaultMaxBlock  = 512
	DefaultChannels  = 2
	MaxChannels      = 2
	defaultReaderNum = 3
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Four voices of three ellipses, stereo, 512-sample blocks
//	e := synth.New()
//
//	// Eight voices scanning a line and a circle
//	e := synth.New(synth.WithVoices(8), synth.WithReaders(reader.Line, reader.Circle))
type Option func(*options)

type options struct {
	voices   int
	layout   []reader.Kind
	maxBlock int
	channels int
}

func defaultOptions() options {
	layout := make([]reader.Kind, defaultReaderNum)
	for i := range layout {
		layout[i] = reader.Ellipse
	}

	return options{
		voices:   DefaultVoices,
		layout:   layout,
		maxBlock: DefaultMaxBlock,
		channels: DefaultChannels,
	}
}

// WithVoices sets the polyphony. Values below one mean one voice.
func WithVoices(n int) Option {
	return func(o *options) {
		o.voices = max(n, 1)
	}
}

// WithReaders sets the shape of each reader slot. Every voice gets one
// reader per slot and all voices share the slot's parameters. An empty
// list keeps the default of three ellipses.
func WithReaders(kinds ...reader.Kind) Option {
	return func(o *options) {
		if len(kinds) > 0 {
			o.layout = append([]reader.Kind(nil), kinds...)
		}
	}
}

// WithMaxBlockSize sets the largest block rendered in one pass. Longer
// Render calls are split internally.
func WithMaxBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBlock = n
		}
	}
}

// WithChannels selects mono (1) or stereo (2) output.
func WithChannels(n int) Option {
	return func(o *options) {
		o.channels = min(max(n, 1), MaxChannels)
	}
}
