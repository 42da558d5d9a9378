// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/scansynth/audio"
	"github.com/ik5/scansynth/utils"
)

// channels is fixed by go-mp3.
const channels = 2

// mp3Reader is the part of gomp3.Decoder a source reads from.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  mp3Reader
	buf  []byte
	tail []byte // odd byte carried between reads
	done bool
}

func newSource(dec mp3Reader) *source {
	return &source{dec: dec, buf: make([]byte, 8192)}
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

// BufSize is in samples, not bytes.
func (s *source) BufSize() int { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	carried := copy(s.buf, s.tail)
	s.tail = s.tail[:0]

	n, err := s.dec.Read(s.buf[carried:])
	n += carried
	if n%2 == 1 {
		s.tail = append(s.tail, s.buf[n-1])
		n--
	}

	samples := utils.PCM16LEToFloat32(dst, s.buf[:n])

	switch {
	case err == io.EOF:
		s.done = true
		if samples == 0 {
			return 0, io.EOF
		}
	case err != nil:
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}

	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return newSource(dec), nil
}
