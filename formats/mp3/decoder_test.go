// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/scansynth/audio"
)

// mockMP3Reader plays back int16 samples as go-mp3 would, at most chunk
// bytes per Read.
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	chunk      int
	err        error
}

func newMock(rate, chunk int, samples ...int16) *mockMP3Reader {
	data := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}

	return &mockMP3Reader{sampleRate: rate, data: data, chunk: chunk}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.data) == 0 {
		return 0, io.EOF
	}

	n := len(buf)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	n = copy(buf[:n], m.data)
	m.data = m.data[n:]

	return n, nil
}

func TestDecodeInvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range [][]byte{{}, []byte("This is not MP3 data")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(in)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", in)
		}
	}
}

func TestSourceMetadata(t *testing.T) {
	t.Parallel()

	src := newSource(newMock(44100, 0))
	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestSourceConversion(t *testing.T) {
	t.Parallel()

	src := newSource(newMock(44100, 0, 0, 16384, -16384, -32768, 32767, 0))
	got, err := audio.ReadAll(src)
	if err != nil {
		t.Fatal(err)
	}

	want := []float32{0, 0.5, -0.5, -1, 32767.0 / 32768, 0}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSourceOddChunks(t *testing.T) {
	t.Parallel()

	// 3-byte reads split samples across calls.
	src := newSource(newMock(22050, 3, 1000, -1000, 2000, -2000))
	dst := make([]float32, 4)

	var got []float32
	for range 10 {
		n, err := src.ReadSamples(dst)
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []float32{1000.0 / 32768, -1000.0 / 32768, 2000.0 / 32768, -2000.0 / 32768}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSourceEOFAndEmpty(t *testing.T) {
	t.Parallel()

	src := newSource(newMock(44100, 0, 1, 2))
	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("empty read = %d, %v; want 0, nil", n, err)
	}

	dst := make([]float32, 8)
	if n, err := src.ReadSamples(dst); n != 2 || err != nil {
		t.Fatalf("first read = %d, %v; want 2, nil", n, err)
	}
	for range 2 {
		if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
			t.Errorf("read after end = %d, %v; want 0, EOF", n, err)
		}
	}
}

func TestSourceError(t *testing.T) {
	t.Parallel()

	m := newMock(44100, 0)
	m.err = io.ErrUnexpectedEOF

	_, err := newSource(m).ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want wrapped ErrUnexpectedEOF", err)
	}
}

func TestSourceBufferGrows(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 10000)
	src := newSource(newMock(44100, 0, samples...))

	n, err := src.ReadSamples(make([]float32, 10000))
	if err != nil || n != 10000 {
		t.Fatalf("read = %d, %v; want 10000, nil", n, err)
	}
	if src.BufSize() != 10000 {
		t.Errorf("BufSize() = %d, want 10000", src.BufSize())
	}
}

func BenchmarkSourceReadSamples(b *testing.B) {
	full := newMock(44100, 0, make([]int16, 4096)...).data
	dst := make([]float32, 4096)
	m := newMock(44100, 0)
	src := newSource(m)

	b.ReportAllocs()
	for b.Loop() {
		m.data = full
		src.done = false
		if _, err := src.ReadSamples(dst); err != nil {
			b.Fatal(err)
		}
	}
}
