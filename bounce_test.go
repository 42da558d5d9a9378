// SPDX-License-Identifier: EPL-2.0

package scansynth

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ik5/scansynth/internal/audiotest"
	"github.com/ik5/scansynth/sequence"
)

func TestBounce(t *testing.T) {
	t.Parallel()

	seq := &sequence.Sequence{BPM: 60}
	seq.Add(0, 0.2, 60, 1)
	seq.Add(0.1, 0.2, 67, 1)

	buf, err := Bounce(newTestEngine(t), seq, testRate, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Channels() != 2 || buf.Frames() != 500 {
		t.Fatalf("bounce = %d ch %d frames, want 2 ch 500 frames", buf.Channels(), buf.Frames())
	}
	if buf.Magnitude(0, 0, 300) == 0 {
		t.Error("bounce is silent")
	}
	// Voices stop 50 ms after the last release and the DC blocker settles.
	if m := buf.Magnitude(0, 499, 1); m > 0.01 {
		t.Errorf("last frame = %v, want silence", m)
	}
}

func TestBounceErrors(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if _, err := Bounce(e, nil, testRate, 0); !errors.Is(err, ErrNoSequence) {
		t.Errorf("nil sequence error = %v, want ErrNoSequence", err)
	}
	if _, err := Bounce(e, &sequence.Sequence{}, testRate, 0); !errors.Is(err, ErrNoSequence) {
		t.Errorf("empty sequence error = %v, want ErrNoSequence", err)
	}

	seq := &sequence.Sequence{}
	seq.Add(0, 1, 60, 1)
	if _, err := Bounce(e, seq, 0, 0); !errors.Is(err, ErrSampleRate) {
		t.Errorf("zero rate error = %v, want ErrSampleRate", err)
	}
}

func TestBounceMono16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		value    float32
		want     int16
	}{
		{"mono downsample", 16000, 1, 0.5, 16383},
		{"stereo same rate", 8000, 2, -0.5, -16383},
		{"clipped", 8000, 1, 2, 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.rate, tt.channels, tt.rate, tt.value)
			pcm, rate, err := BounceMono16(src, 8000, 4096)
			if err != nil {
				t.Fatal(err)
			}
			if rate != 8000 {
				t.Errorf("rate = %d, want 8000", rate)
			}
			if len(pcm) < 7800 || len(pcm) > 8200 {
				t.Fatalf("got %d samples, want about 8000", len(pcm))
			}
			if got := pcm[len(pcm)/2]; got != tt.want {
				t.Errorf("middle sample = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBounceMono16FromStream(t *testing.T) {
	t.Parallel()

	seq := &sequence.Sequence{}
	seq.Add(0, 0.5, 60, 1)

	s := NewStream(newTestEngine(t), testRate, WithSequence(seq, 0))
	pcm, _, err := BounceMono16(s, 500, 256)
	if err != nil {
		t.Fatal(err)
	}
	if len(pcm) < 120 || len(pcm) > 130 {
		t.Errorf("got %d samples, want about 125", len(pcm))
	}
}

func TestSetLogger(t *testing.T) {
	var out bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&out, nil)))
	defer SetLogger(nil)

	Logger().Info("hello", "k", 1)
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("log output = %q", out.String())
	}

	SetLogger(nil)
	Logger().Error("dropped")
	if strings.Contains(out.String(), "dropped") {
		t.Error("nil logger still writes")
	}
}
