// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/ik5/scansynth"
	"github.com/ik5/scansynth/internal/playback"
	"github.com/ik5/scansynth/synth"
)

// keyboard maps a QWERTY row to semitones above the base note.
const keyboard = "awsedftgyhujkolp;'"

func runPlay(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	var sf synthFlags
	sf.register(fs)
	rate := fs.Int("rate", 48000, "sample rate in Hz")
	base := fs.Int("base", 48, "MIDI note of the 'a' key")
	gate := fs.Duration("gate", 400*time.Millisecond, "how long a key press holds its note")
	tail := fs.Duration("tail", 2*time.Second, "time to play after a sequence ends")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := sf.engine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seq, err := sf.sequence(ctx, e)
	if err != nil {
		return err
	}

	var opts []scansynth.StreamOption
	if seq != nil {
		opts = append(opts, scansynth.WithSequence(seq, *tail))
	}
	stream := scansynth.NewStream(e, *rate, opts...)

	player, err := playback.Open(stream)
	if err != nil {
		return err
	}
	defer player.Close()
	player.Start()

	if seq != nil {
		fmt.Fprintf(stdout, "playing %d notes, Ctrl-C to stop\n", len(seq.Notes))
		select {
		case <-player.Done():
		case <-ctx.Done():
		}
		return nil
	}

	return keys(ctx, stream, stdout, *base, *gate)
}

// keys plays notes from the terminal until q, Esc or Ctrl-C. Terminals
// report presses only, so every note is released after gate.
func keys(ctx context.Context, stream *scansynth.Stream, stdout io.Writer, base int, gate time.Duration) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("play without -midi or -script needs a terminal")
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer term.Restore(fd, old)

	fmt.Fprint(stdout, "keys a..' play notes, z/x shift octave, q quits\r\n")

	pressed := make(chan byte)
	go func() {
		r := bufio.NewReader(os.Stdin)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(pressed)
				return
			}
			pressed <- b
		}
	}()

	octave := 0
	for {
		var b byte
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case b, ok = <-pressed:
			if !ok {
				return nil
			}
		}

		switch b {
		case 'q', 3, 27:
			stream.Send(synth.Event{Kind: synth.AllNotesOff})
			return nil
		case 'z':
			octave = max(octave-1, -3)
		case 'x':
			octave = min(octave+1, 3)
		default:
			i := strings.IndexByte(keyboard, b)
			if i < 0 {
				continue
			}
			note := base + 12*octave + i
			if note < 0 || note > 127 {
				continue
			}
			stream.Send(synth.NoteOnAt(0, note, 0.8))
			time.AfterFunc(gate, func() { stream.Send(synth.NoteOffAt(0, note)) })
		}
	}
}
