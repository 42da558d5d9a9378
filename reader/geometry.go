// SPDX-License-Identifier: EPL-2.0

package reader

import (
	"math"

	"github.com/ik5/scansynth/utils"
)

// Kind is the shape a reader scans.
type Kind uint8

const (
	Line Kind = iota
	Circle
	Ellipse

	numKinds
)

var kindNames = [...]string{"line", "circle", "ellipse"}

func (k Kind) String() string {
	if k >= numKinds {
		return "unknown"
	}

	return kindNames[k]
}

// ParseKind maps a name from String back to a Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}

	return Ellipse, false
}

const (
	// MaxLength bounds a line's length.
	MaxLength = 1
	// MaxRadius bounds circle and ellipse radii.
	MaxRadius = 0.5
)

// Geometry is a resolved path in normalised image coordinates: (0, 0) is
// the top-left corner and (1, 1) the bottom-right. Only the fields of Kind
// are meaningful.
type Geometry struct {
	Kind   Kind
	CX, CY float32
	Length float32 // Line
	Radius float32 // Circle
	R1, R2 float32 // Ellipse semi-axes
	Angle  float32 // Line and Ellipse rotation, radians
}

// Clamped returns g with its centre in [0,1]² and its extents inside their
// ranges.
func (g Geometry) Clamped() Geometry {
	g.CX = utils.Clamp(g.CX, 0, 1)
	g.CY = utils.Clamp(g.CY, 0, 1)
	g.Length = utils.Clamp(g.Length, 0, MaxLength)
	g.Radius = utils.Clamp(g.Radius, 0, MaxRadius)
	g.R1 = utils.Clamp(g.R1, 0, MaxRadius)
	g.R2 = utils.Clamp(g.R2, 0, MaxRadius)

	return g
}

// NormalizedSize is the path's size in [0, 1] used to pick the blend
// between the three phase taps.
func (g Geometry) NormalizedSize() float32 {
	switch g.Kind {
	case Line:
		return utils.Clamp(g.Length/math.Sqrt2, 0, 1)
	case Circle:
		return utils.Clamp(2*g.Radius, 0, 1)
	default:
		return utils.Clamp(g.R1+g.R2, 0, 1)
	}
}

// Endpoints returns the two ends of a line path.
func (g Geometry) Endpoints() (x1, y1, x2, y2 float32) {
	p := g.resolve()
	return p.x1, p.y1, p.x1 + p.dx, p.y1 + p.dy
}

// PointAt returns the position at phase in [0, 1) along the path.
func (g Geometry) PointAt(phase float32) (x, y float32) {
	p := g.resolve()
	return p.pointAt(phase)
}

// path is a Geometry with its trigonometry evaluated once so the three taps
// of a sample share it.
type path struct {
	kind       Kind
	cx, cy     float32
	a, b       float32
	cosA, sinA float32
	x1, y1     float32
	dx, dy     float32
}

func (g Geometry) resolve() path {
	p := path{kind: g.Kind, cx: g.CX, cy: g.CY}

	switch g.Kind {
	case Line:
		sin, cos := math.Sincos(float64(g.Angle))
		half := g.Length / 2
		hx, hy := half*float32(cos), half*float32(sin)
		p.x1, p.y1 = g.CX-hx, g.CY-hy
		p.dx, p.dy = 2*hx, 2*hy
	case Circle:
		p.a = g.Radius
	default:
		sin, cos := math.Sincos(float64(g.Angle))
		p.a, p.b = g.R1, g.R2
		p.cosA, p.sinA = float32(cos), float32(sin)
	}

	return p
}

func (p *path) pointAt(phase float32) (x, y float32) {
	switch p.kind {
	case Line:
		return p.x1 + p.dx*phase, p.y1 + p.dy*phase
	case Circle:
		sin, cos := math.Sincos(2 * math.Pi * float64(phase))
		return p.cx + p.a*float32(cos), p.cy + p.a*float32(sin)
	default:
		s, c := math.Sincos(2 * math.Pi * float64(phase))
		sin, cos := float32(s), float32(c)
		x = p.cx + p.a*cos*p.cosA - p.b*sin*p.sinA
		y = p.cy + p.a*cos*p.sinA + p.b*sin*p.cosA
		return x, y
	}
}

// BlendWeights returns the gains of the half-rate, base-rate and
// double-rate taps for a normalised path size. Small paths lean on the
// double-rate tap, large ones on the half-rate tap, and a size of 0.5 uses
// the base tap alone.
func BlendWeights(size float32) (low, base, high float32) {
	high = max(0, 1-2*size)
	base = max(0, 1-float32(math.Abs(float64(size)-0.5))*2)
	low = max(0, (size-0.5)*2)

	return low, base, high
}

// PanGains returns constant-power left and right gains for pan in [-1, 1].
func PanGains(pan float32) (left, right float32) {
	angle := (utils.Clamp(pan, -1, 1)*0.5 + 0.5) * math.Pi / 2
	sin, cos := math.Sincos(float64(angle))

	return float32(cos), float32(sin)
}
