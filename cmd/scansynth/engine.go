// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/scansynth/bitmap"
	"github.com/ik5/scansynth/reader"
	"github.com/ik5/scansynth/sequence"
	"github.com/ik5/scansynth/synth"
)

// synthFlags are shared by render and play.
type synthFlags struct {
	image   string
	pattern string
	size    int
	readers string
	voices  int
	level   float64
	sets    multiFlag
	midi    string
	script  string
}

func (f *synthFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.image, "image", "", "image file to scan")
	fs.StringVar(&f.pattern, "pattern", "bessel", "generated pattern when no -image is given")
	fs.IntVar(&f.size, "size", 512, "largest image side in pixels")
	fs.StringVar(&f.readers, "readers", "", "comma-separated reader kinds (line, circle, ellipse)")
	fs.IntVar(&f.voices, "voices", synth.DefaultVoices, "polyphony")
	fs.Float64Var(&f.level, "level", synth.DefaultLevel, "master level in dB")
	fs.Var(&f.sets, "set", "parameter as name=value, repeatable (e.g. reader1.cx=0.3)")
	fs.StringVar(&f.midi, "midi", "", "Standard MIDI File to play")
	fs.StringVar(&f.script, "script", "", "Lua script to run")
}

func (f *synthFlags) engine() (*synth.Engine, error) {
	opts := []synth.Option{synth.WithVoices(f.voices)}
	if f.readers != "" {
		var kinds []reader.Kind
		for _, name := range strings.Split(f.readers, ",") {
			k, ok := reader.ParseKind(strings.TrimSpace(name))
			if !ok {
				return nil, fmt.Errorf("unknown reader kind %q", name)
			}
			kinds = append(kinds, k)
		}
		opts = append(opts, synth.WithReaders(kinds...))
	}

	e := synth.New(opts...)
	e.SetLevel(float32(f.level))

	snap, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	e.Images().Swap(snap)

	for _, kv := range f.sets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("-set %q: want name=value", kv)
		}
		var v float64
		if _, err := fmt.Sscan(value, &v); err != nil {
			return nil, fmt.Errorf("-set %q: %w", kv, err)
		}
		if err := e.Set(name, v); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func (f *synthFlags) snapshot() (*bitmap.Snapshot, error) {
	if f.image != "" {
		return bitmap.Load(f.image, f.size)
	}

	return bitmap.GeneratePattern(f.pattern, f.size)
}

// sequence loads -midi or runs -script against e. Neither gives nil.
func (f *synthFlags) sequence(ctx context.Context, e *synth.Engine) (*sequence.Sequence, error) {
	switch {
	case f.midi != "" && f.script != "":
		return nil, fmt.Errorf("-midi and -script are exclusive")
	case f.midi != "":
		file, err := os.Open(f.midi)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return sequence.ReadSMF(file)
	case f.script != "":
		src, err := os.ReadFile(f.script)
		if err != nil {
			return nil, err
		}
		seq, err := sequence.RunScript(ctx, string(src), e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(f.script), err)
		}
		return seq, nil
	}

	return nil, nil
}

type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}
