// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/ik5/scansynth/fold"
)

func runFold(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("fold", flag.ContinueOnError)
	size := fs.Int("size", fold.DefaultSize, "image side in pixels")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: scansynth fold [-size n] <audio file> <out.png>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}

	img, err := fold.File(fs.Arg(0), *size)
	if err != nil {
		return err
	}

	f, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("writing %s: %w", fs.Arg(1), err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", fs.Arg(1), *size, *size)

	return nil
}
