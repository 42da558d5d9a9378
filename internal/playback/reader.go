// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/internal/logging"
)

var ErrNoBackend = errors.New("built without an audio backend")

// pcmReader serves a Source as little-endian float32 bytes, the format oto
// pulls. After the source ends it keeps serving silence and closes done.
type pcmReader struct {
	src     audio.Source
	samples []float32
	done    chan struct{}
	once    sync.Once
	ended   bool
	err     error
}

func newPCMReader(src audio.Source) *pcmReader {
	return &pcmReader{
		src:     src,
		samples: make([]float32, max(src.BufSize(), 1024)),
		done:    make(chan struct{}),
	}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	ch := max(r.src.Channels(), 1)
	frames := len(p) / (4 * ch)
	want := frames * ch
	if cap(r.samples) < want {
		r.samples = make([]float32, want)
	}
	buf := r.samples[:want]

	filled := 0
	for filled < want && !r.ended {
		n, err := r.src.ReadSamples(buf[filled:])
		filled += n
		if err != nil || n == 0 {
			r.finish(err)
		}
	}
	clear(buf[filled:])

	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[4*i:], math.Float32bits(v))
	}

	return 4 * want, nil
}

func (r *pcmReader) finish(err error) {
	r.ended = true
	if err != nil && err != io.EOF {
		r.err = err
		logging.L().Error("playback source failed", "err", err)
	}
	r.once.Do(func() { close(r.done) })
}

// Done is closed when the source runs out.
func (r *pcmReader) Done() <-chan struct{} { return r.done }
