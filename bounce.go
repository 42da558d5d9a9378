// SPDX-License-Identifier: EPL-2.0

package scansynth

import (
	"fmt"
	"io"
	"time"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/internal/logging"
	"github.com/ik5/scansynth/sequence"
	"github.com/ik5/scansynth/synth"
	"github.com/ik5/scansynth/utils"
)

// Bounce renders seq on e offline and returns the whole performance,
// including tail after the last release for envelopes to ring out. e is
// prepared at sampleRate and left in whatever state the render ends in.
func Bounce(e *synth.Engine, seq *sequence.Sequence, sampleRate int, tail time.Duration) (*audio.Buffer, error) {
	if seq == nil || len(seq.Notes) == 0 {
		return nil, ErrNoSequence
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}

	start := time.Now()
	stream := NewStream(e, sampleRate, WithSequence(seq, tail))
	samples, err := audio.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	buf := &audio.Buffer{}
	buf.FromInterleaved(samples, stream.Channels())

	logging.L().Info("bounce finished",
		"frames", buf.Frames(),
		"notes", len(seq.Notes),
		"elapsed", time.Since(start),
	)

	return buf, nil
}

// BounceMono16 resamples src to targetRate, mixes it to mono and collects
// it as 16-bit PCM ready for wav.EncodeMono16. It returns the samples and
// the rate they are at.
//
// A finite Stream works as src:
//
//	stream := scansynth.NewStream(e, 48000, scansynth.WithSequence(seq, time.Second))
//	pcm, rate, err := scansynth.BounceMono16(stream, 8000, 4096)
func BounceMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	mono := audio.NewMonoMixer(audio.NewResampler(src, targetRate))

	pcm16 := make([]int16, 0, targetRate*2)
	buf := make([]float32, max(bufferSize, 1))

	for {
		n, err := mono.ReadSamples(buf)
		for _, x := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("converting to mono 16-bit: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return pcm16, targetRate, nil
}
