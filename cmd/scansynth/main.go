// SPDX-License-Identifier: EPL-2.0

// Command scansynth renders and plays images as sound.
//
//	scansynth render -pattern bessel -script tune.lua -out tune.wav
//	scansynth play -image photo.jpg
//	scansynth fold -size 256 drums.ogg drums.png
//	scansynth mono16 -rate 8000 in.mp3 out.wav
//	scansynth patterns
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/ik5/scansynth"
)

type command struct {
	name  string
	usage string
	run   func(args []string, stdout io.Writer) error
}

var commands = []command{
	{"render", "bounce a MIDI file or Lua script to WAV or AIFF", runRender},
	{"play", "play the keyboard, a MIDI file or a script in real time", runPlay},
	{"fold", "fold an audio file into a PNG scan image", runFold},
	{"mono16", "convert an audio file to mono 16-bit WAV", runMono16},
	{"patterns", "list the generated image patterns", runPatterns},
}

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "scansynth:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "-v" {
		scansynth.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		args = args[1:]
	}

	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}

	i := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] })
	if i < 0 {
		usage(stderr)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	return commands[i].run(args[1:], stdout)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: scansynth [-v] <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.usage)
	}
}
