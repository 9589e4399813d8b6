package path

import (
	"math"
	"strings"

	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Curve selects how [Line] and [Area] join consecutive points.
type Curve int

const (
	Linear Curve = iota
	Step
	Monotone
)

var curveNames = map[Curve]string{
	Linear:   "linear",
	Step:     "step",
	Monotone: "monotone",
}

func (c Curve) String() string {
	if s, ok := curveNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCurve parses a curve name. The empty string is [Linear].
func ParseCurve(s string) (Curve, error) {
	if s == "" {
		return Linear, nil
	}
	for c, name := range curveNames {
		if name == strings.ToLower(s) {
			return c, nil
		}
	}
	return Linear, errors.New(errors.ErrCodeInvalidConfig, "unknown curve %q (want linear, step or monotone)", s)
}

// RoundedRect returns the outline of r with optionally rounded top and
// bottom corners. The radius is clamped to half the width, and to half the
// height when both ends are rounded.
func RoundedRect(r stack.Rect, radius float64, top, bottom bool) string {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height
	rad := math.Min(radius, r.Width/2)
	if top && bottom {
		rad = math.Min(rad, r.Height/2)
	} else {
		rad = math.Min(rad, r.Height)
	}
	if rad <= 0 || math.IsNaN(rad) {
		top, bottom = false, false
	}

	var b strings.Builder
	if top {
		move(&b, Point{x0, y0 + rad})
		arcTo(&b, rad, Point{x0 + rad, y0})
		line(&b, Point{x1 - rad, y0})
		arcTo(&b, rad, Point{x1, y0 + rad})
	} else {
		move(&b, Point{x0, y0})
		line(&b, Point{x1, y0})
	}
	if bottom {
		line(&b, Point{x1, y1 - rad})
		arcTo(&b, rad, Point{x1 - rad, y1})
		line(&b, Point{x0 + rad, y1})
		arcTo(&b, rad, Point{x0, y1 - rad})
	} else {
		line(&b, Point{x1, y1})
		line(&b, Point{x0, y1})
	}
	b.WriteByte('Z')
	return b.String()
}

// Line returns an open path through pts.
func Line(pts []Point, c Curve) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	move(&b, pts[0])
	tail(&b, pts, c)
	return b.String()
}

// Area returns a closed path that follows top left to right and bottom
// right to left. Both edges must have the same number of points.
func Area(top, bottom []Point, c Curve) string {
	if len(top) == 0 || len(top) != len(bottom) {
		return ""
	}
	rev := make([]Point, len(bottom))
	for i, p := range bottom {
		rev[len(bottom)-1-i] = p
	}
	var b strings.Builder
	move(&b, top[0])
	tail(&b, top, c)
	line(&b, rev[0])
	tail(&b, rev, c)
	b.WriteByte('Z')
	return b.String()
}

// tail writes the segments after pts[0].
func tail(b *strings.Builder, pts []Point, c Curve) {
	switch {
	case c == Step:
		for i := 1; i < len(pts); i++ {
			xm := (pts[i-1].X + pts[i].X) / 2
			line(b, Point{xm, pts[i-1].Y})
			line(b, Point{xm, pts[i].Y})
			line(b, pts[i])
		}
	case c == Monotone && len(pts) > 2:
		m := tangents(pts)
		for i := 1; i < len(pts); i++ {
			p0, p1 := pts[i-1], pts[i]
			dx := (p1.X - p0.X) / 3
			cubicTo(b, Point{p0.X + dx, p0.Y + dx*m[i-1]}, Point{p1.X - dx, p1.Y - dx*m[i]}, p1)
		}
	default:
		for _, p := range pts[1:] {
			line(b, p)
		}
	}
}

// tangents returns Fritsch-Carlson slopes that keep a cubic spline through
// pts monotone in y between consecutive points.
func tangents(pts []Point) []float64 {
	n := len(pts)
	m := make([]float64, n)
	for i := 1; i < n-1; i++ {
		m[i] = slope3(pts[i-1], pts[i], pts[i+1])
	}
	m[0] = slope2(pts[0], pts[1], m[1])
	m[n-1] = slope2(pts[n-2], pts[n-1], m[n-2])
	return m
}

func slope3(p0, p1, p2 Point) float64 {
	h0, h1 := p1.X-p0.X, p2.X-p1.X
	if h0 == 0 || h1 == 0 || h0+h1 == 0 {
		return 0
	}
	s0, s1 := (p1.Y-p0.Y)/h0, (p2.Y-p1.Y)/h1
	p := (s0*h1 + s1*h0) / (h0 + h1)
	v := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func slope2(p0, p1 Point, t float64) float64 {
	h := p1.X - p0.X
	if h == 0 {
		return t
	}
	return (3*(p1.Y-p0.Y)/h - t) / 2
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func move(b *strings.Builder, p Point) {
	b.WriteByte('M')
	writePoint(b, p)
}

func line(b *strings.Builder, p Point) {
	b.WriteByte('L')
	writePoint(b, p)
}

func arcTo(b *strings.Builder, r float64, p Point) {
	b.WriteByte('A')
	b.WriteString(num(r))
	b.WriteByte(',')
	b.WriteString(num(r))
	b.WriteString(" 0 0 1 ")
	writePoint(b, p)
}

func cubicTo(b *strings.Builder, c1, c2, p Point) {
	b.WriteByte('C')
	writePoint(b, c1)
	b.WriteByte(' ')
	writePoint(b, c2)
	b.WriteByte(' ')
	writePoint(b, p)
}
