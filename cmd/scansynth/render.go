// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/scansynth"
	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/formats/aiff"
	"github.com/ik5/scansynth/formats/wav"
)

func runRender(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var sf synthFlags
	sf.register(fs)
	out := fs.String("out", "out.wav", "output file, .wav or .aif")
	rate := fs.Int("rate", 44100, "sample rate in Hz")
	bits := fs.Int("bits", 16, "bit depth: 8, 16, 24 or 32")
	tail := fs.Duration("tail", 2*time.Second, "time to render after the last note")
	timeout := fs.Duration("timeout", 10*time.Second, "script time limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := sf.engine()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	seq, err := sf.sequence(ctx, e)
	if err != nil {
		return err
	}
	if seq == nil {
		return errors.New("render needs -midi or -script")
	}

	buf, err := scansynth.Bounce(e, seq, *rate, *tail)
	if err != nil {
		return err
	}

	if err := writeAudio(*out, buf, *rate, *bits); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s (%.2fs)\n", *out, float64(buf.Frames())/float64(*rate))

	return nil
}

func writeAudio(path string, buf *audio.Buffer, rate, bits int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".aif", ".aiff":
		err = aiff.Encode(f, buf, rate, bits)
	default:
		err = wav.Encode(f, buf, rate, bits)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
