// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"testing"
)

func TestBufferSetSizeReusesStorage(t *testing.T) {
	t.Parallel()

	b := NewBuffer(2, 256)
	if b.Channels() != 2 || b.Frames() != 256 {
		t.Fatalf("shape = %dx%d", b.Channels(), b.Frames())
	}

	if grew := b.SetSize(2, 128); grew {
		t.Error("shrinking allocated")
	}
	if grew := b.SetSize(1, 256); grew {
		t.Error("dropping a channel allocated")
	}
	if grew := b.SetSize(2, 512); !grew {
		t.Error("growing did not report an allocation")
	}
	if len(b.Channel(1)) != 512 {
		t.Errorf("channel length = %d", len(b.Channel(1)))
	}
}

func TestBufferArithmetic(t *testing.T) {
	t.Parallel()

	a := NewBuffer(2, 4)
	b := NewBuffer(2, 4)
	for i := range 4 {
		b.Channel(0)[i] = float32(i)
		b.Channel(1)[i] = -float32(i)
	}

	a.AddFrom(0, 1, b, 0, 0, 3)
	a.AddFrom(0, 1, b, 0, 0, 3)
	a.AddSample(1, 3, 0.5)
	a.ApplyGain(0, 4, 0.5)

	want := []float32{0, 0, 1, 2}
	for i, v := range a.Channel(0) {
		if v != want[i] {
			t.Errorf("ch0[%d] = %v, want %v", i, v, want[i])
		}
	}
	if a.Channel(1)[3] != 0.25 {
		t.Errorf("ch1[3] = %v", a.Channel(1)[3])
	}
	if m := b.Magnitude(1, 0, 4); m != 3 {
		t.Errorf("Magnitude = %v, want 3", m)
	}

	a.ClearRange(2, 2)
	if a.Channel(0)[3] != 0 || a.Channel(1)[3] != 0 {
		t.Error("ClearRange left samples behind")
	}
}

func TestBufferInterleave(t *testing.T) {
	t.Parallel()

	b := NewBuffer(2, 3)
	b.FromInterleaved([]float32{1, -1, 2, -2, 3, -3, 9}, 2)
	if b.Frames() != 3 {
		t.Fatalf("frames = %d, want 3", b.Frames())
	}

	dst := make([]float32, 5)
	n := b.Interleave(dst, 1, 2)
	if n != 4 {
		t.Fatalf("wrote %d samples, want 4", n)
	}
	want := []float32{2, -2, 3, -3}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestBufferIntBuffer(t *testing.T) {
	t.Parallel()

	b := NewBuffer(2, 2)
	b.Channel(0)[0] = 1
	b.Channel(1)[0] = -1
	b.Channel(0)[1] = 2 // clipped

	ib := b.IntBuffer(44100, 16)
	if ib.Format.NumChannels != 2 || ib.Format.SampleRate != 44100 || ib.SourceBitDepth != 16 {
		t.Fatalf("format = %+v depth %d", ib.Format, ib.SourceBitDepth)
	}

	want := []int{32767, -32767, 32767, 0}
	for i := range want {
		if ib.Data[i] != want[i] {
			t.Errorf("Data[%d] = %d, want %d", i, ib.Data[i], want[i])
		}
	}
}

func TestBuffer_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	a := NewBuffer(2, 512)
	b := NewBuffer(2, 512)

	allocs := testing.AllocsPerRun(100, func() {
		a.SetSize(2, 256)
		a.Clear()
		a.AddFrom(0, 0, b, 0, 0, 256)
		a.AddFrom(1, 0, b, 1, 0, 256)
		a.ApplyGain(0, 256, 0.5)
	})
	if allocs > 0 {
		t.Errorf("buffer ops allocated %v times, want 0", allocs)
	}
}
