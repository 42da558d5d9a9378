// SPDX-License-Identifier: EPL-2.0

package modulation

import "fmt"

const (
	NumLFOs      = 4
	NumEnvelopes = 3
	NumProducts  = NumLFOs * NumEnvelopes
	NumSources   = NumLFOs + NumEnvelopes + NumProducts
)

// Source selects one row of the modulator matrix: a raw LFO, a raw
// envelope, or an LFO×envelope product.
type Source int32

const (
	LFO1 Source = iota
	LFO2
	LFO3
	LFO4
	Env1
	Env2
	Env3

	firstProduct
)

// LFOSource returns the row of LFO i (0-based).
func LFOSource(i int) Source { return LFO1 + Source(i) }

// EnvSource returns the row of envelope i (0-based).
func EnvSource(i int) Source { return Env1 + Source(i) }

// Product returns the row holding LFO lfo multiplied by envelope env.
func Product(lfo, env int) Source {
	return firstProduct + Source(lfo*NumEnvelopes+env)
}

// Valid reports whether s names a row.
func (s Source) Valid() bool { return s >= 0 && s < NumSources }

// Clamped maps an out-of-range selection onto the nearest valid row.
func (s Source) Clamped() Source {
	return min(max(s, 0), NumSources-1)
}

func (s Source) String() string {
	switch {
	case !s.Valid():
		return fmt.Sprintf("Source(%d)", int32(s))
	case s < Env1:
		return fmt.Sprintf("LFO %d", s-LFO1+1)
	case s < firstProduct:
		return fmt.Sprintf("ADSR %d", s-Env1+1)
	default:
		p := int(s - firstProduct)
		return fmt.Sprintf("LFO %d x ADSR %d", p/NumEnvelopes+1, p%NumEnvelopes+1)
	}
}

// ParseSource is the inverse of String.
func ParseSource(name string) (Source, bool) {
	for s := range Source(NumSources) {
		if s.String() == name {
			return s, true
		}
	}

	return LFO1, false
}

// Matrix holds one block of per-sample modulator values, one row per
// Source. Rows are sized once and reused.
type Matrix struct {
	rows [NumSources][]float32
	n    int
}

// NewMatrix allocates rows of maxBlock samples.
func NewMatrix(maxBlock int) *Matrix {
	m := &Matrix{}
	m.Resize(maxBlock)

	return m
}

// Resize sets the block length, growing storage when needed.
func (m *Matrix) Resize(n int) {
	n = max(n, 0)
	for i := range m.rows {
		if cap(m.rows[i]) < n {
			m.rows[i] = make([]float32, n)
		}
		m.rows[i] = m.rows[i][:n]
	}
	m.n = n
}

// Len is the block length.
func (m *Matrix) Len() int { return m.n }

// Row returns the samples of s. Invalid sources are clamped.
func (m *Matrix) Row(s Source) []float32 {
	return m.rows[s.Clamped()]
}

// At returns sample i of source s.
func (m *Matrix) At(s Source, i int) float32 {
	return m.rows[s.Clamped()][i]
}

// SetLFO copies a precomputed LFO block into row LFO i.
func (m *Matrix) SetLFO(i int, values []float32) {
	copy(m.rows[LFOSource(i)], values)
}

// FillEnvelope advances env through the block, writing envelope row i.
func (m *Matrix) FillEnvelope(i int, env *Envelope) {
	env.Fill(m.rows[EnvSource(i)])
}

// ComputeProducts fills every LFO×envelope row from the raw rows.
func (m *Matrix) ComputeProducts() {
	for l := range NumLFOs {
		lfo := m.rows[LFOSource(l)]
		for e := range NumEnvelopes {
			env := m.rows[EnvSource(e)]
			dst := m.rows[Product(l, e)]
			for i := range dst {
				dst[i] = lfo[i] * env[i]
			}
		}
	}
}
