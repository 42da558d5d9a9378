// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio's integer decoders to audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/scansynth/utils"
)

// IntReader is the part of go-audio's wav and aiff decoders a Source reads
// from.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM to float32. Samples are shifted by bias
// before scaling, for unsigned encodings such as 8-bit WAV.
type Source struct {
	dec        IntReader
	sampleRate int
	channels   int
	bitDepth   int
	bias       int
	signHalf   int // 2^(bitDepth-1) when sign extending, else 0
	buf        *goaudio.IntBuffer
	done       bool
}

func NewSource(dec IntReader, sampleRate, channels, bitDepth, bias int) *Source {
	return &Source{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		bias:       bias,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

// SignExtend makes s read samples that arrive as raw unsigned words, such
// as 8-bit AIFF bytes, as two's complement.
func (s *Source) SignExtend() *Source {
	if s.bitDepth > 0 {
		s.signHalf = 1 << (s.bitDepth - 1)
	}
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if c := cap(s.buf.Data); c > 0 {
		return c
	}

	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i, v := range s.buf.Data[:n] {
		if s.signHalf > 0 && v >= s.signHalf {
			v -= 2 * s.signHalf
		}
		dst[i] = utils.PCMToFloat32(v-s.bias, s.bitDepth)
	}

	switch {
	case err == io.EOF || err == nil && n < len(dst):
		s.done = true
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	case err != nil:
		return n, fmt.Errorf("decoding pcm: %w", err)
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek. go-audio decoders need to seek between chunks.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}

	return bytes.NewReader(data), nil
}
