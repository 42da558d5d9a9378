// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ik5/scansynth"
	"github.com/ik5/scansynth/fold"
	"github.com/ik5/scansynth/formats/wav"
)

func runMono16(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("mono16", flag.ContinueOnError)
	rate := fs.Int("rate", 8000, "output sample rate in Hz")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: scansynth mono16 [-rate hz] <input.{wav|aif|mp3|ogg}> <output.wav>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	src, err := fold.Registry().Decode(filepath.Ext(inPath), in)
	if err != nil {
		return err
	}
	defer src.Close()

	pcm16, outRate, err := scansynth.BounceMono16(src, *rate, 4096)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := wav.EncodeMono16(out, pcm16, outRate); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "wrote", outPath)

	return nil
}
