package path

import (
	"math"
	"strconv"
	"strings"
)

// Point is a 2D point in pixel space.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) mul(f float64) Point { return Point{p.X * f, p.Y * f} }
func (p Point) dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }
func (p Point) lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Subpath is a flattened polyline.
type Subpath struct {
	Points []Point
	Closed bool
}

// centroid returns the mean of the points.
func (s Subpath) centroid() Point {
	if len(s.Points) == 0 {
		return Point{}
	}
	var c Point
	for _, p := range s.Points {
		c = c.add(p)
	}
	return c.mul(1 / float64(len(s.Points)))
}

// Path is a list of flattened subpaths. Curves are approximated by line
// segments when parsed.
type Path []Subpath

// Len returns the total number of points.
func (p Path) Len() int {
	n := 0
	for _, s := range p {
		n += len(s.Points)
	}
	return n
}

// String formats the path as SVG path data using only M, L and Z.
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p {
		if len(s.Points) == 0 {
			continue
		}
		for i, pt := range s.Points {
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			writePoint(&b, pt)
		}
		if s.Closed {
			b.WriteByte('Z')
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(num(p.X))
	b.WriteByte(',')
	b.WriteString(num(p.Y))
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
