package path

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Tolerance is the maximum deviation in pixels between a curve and its
// flattened polyline.
const Tolerance = 0.2

// maxSegments bounds the number of lines a single curve flattens to.
const maxSegments = 64

type parser struct {
	s string
	i int
}

func (p *parser) skip() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.i++
		default:
			return
		}
	}
}

func (p *parser) eof() bool {
	p.skip()
	return p.i >= len(p.s)
}

func (p *parser) number() (float64, error) {
	p.skip()
	start := p.i
	if p.i < len(p.s) && (p.s[p.i] == '-' || p.s[p.i] == '+') {
		p.i++
	}
	digits, dot := 0, false
	for p.i < len(p.s) {
		c := p.s[p.i]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			break
		}
		p.i++
	}
	if digits == 0 {
		return 0, errors.New(errors.ErrCodeInvalidPath, "expected number at offset %d", start)
	}
	if p.i < len(p.s) && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		j := p.i + 1
		if j < len(p.s) && (p.s[j] == '-' || p.s[j] == '+') {
			j++
		}
		if j < len(p.s) && p.s[j] >= '0' && p.s[j] <= '9' {
			for j < len(p.s) && p.s[j] >= '0' && p.s[j] <= '9' {
				j++
			}
			p.i = j
		}
	}
	v, err := strconv.ParseFloat(p.s[start:p.i], 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid number %q", p.s[start:p.i])
	}
	return v, nil
}

// flag reads an arc flag, which may be written without a separator.
func (p *parser) flag() (bool, error) {
	p.skip()
	if p.i < len(p.s) {
		switch p.s[p.i] {
		case '0':
			p.i++
			return false, nil
		case '1':
			p.i++
			return true, nil
		}
	}
	return false, errors.New(errors.ErrCodeInvalidPath, "expected arc flag at offset %d", p.i)
}

func (p *parser) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for k := range out {
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// builder accumulates flattened subpaths.
type builder struct {
	path  Path
	cur   Subpath
	pos   Point
	start Point
	ctrl  Point // Last control point for S and T
	last  byte  // Last command, upper case
}

func (b *builder) moveTo(p Point) {
	b.flush()
	b.cur = Subpath{Points: []Point{p}}
	b.pos, b.start = p, p
}

func (b *builder) lineTo(p Point) {
	if len(b.cur.Points) == 0 {
		b.cur.Points = append(b.cur.Points, b.pos)
	}
	b.cur.Points = append(b.cur.Points, p)
	b.pos = p
}

func (b *builder) close() {
	if len(b.cur.Points) > 0 {
		pts := b.cur.Points
		if len(pts) > 1 && pts[len(pts)-1] == pts[0] {
			b.cur.Points = pts[:len(pts)-1]
		}
		b.cur.Closed = true
	}
	b.flush()
	b.pos = b.start
}

func (b *builder) flush() {
	if len(b.cur.Points) > 0 {
		b.path = append(b.path, b.cur)
	}
	b.cur = Subpath{}
}

func (b *builder) quad(c, end Point) {
	p0 := b.pos
	e := p0.sub(c.mul(2)).add(end).mul(0.25)
	n := segments(math.Sqrt(math.Hypot(e.X, e.Y) / Tolerance))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		b.lineTo(p0.mul(u * u).add(c.mul(2 * u * t)).add(end.mul(t * t)))
	}
	b.ctrl = c
}

func (b *builder) cubic(c1, c2, end Point) {
	p0 := b.pos
	d1 := p0.sub(c1.mul(2)).add(c2)
	d2 := c1.sub(c2.mul(2)).add(end)
	m := math.Max(math.Hypot(d1.X, d1.Y), math.Hypot(d2.X, d2.Y))
	n := segments(math.Sqrt(3 * m / (4 * Tolerance)))
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		pt := p0.mul(u * u * u).
			add(c1.mul(3 * u * u * t)).
			add(c2.mul(3 * u * t * t)).
			add(end.mul(t * t * t))
		b.lineTo(pt)
	}
	b.ctrl = c2
}

// arc flattens an elliptical arc using the endpoint-to-centre conversion of
// the SVG implementation notes.
func (b *builder) arc(rx, ry, phiDeg float64, large, sweep bool, end Point) {
	p0 := b.pos
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || p0 == end {
		b.lineTo(end)
		return
	}
	phi := phiDeg * math.Pi / 180
	cos, sin := math.Cos(phi), math.Sin(phi)
	dx, dy := (p0.X-end.X)/2, (p0.Y-end.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}
	nu := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	co := math.Sqrt(math.Max(0, nu/den))
	if large == sweep {
		co = -co
	}
	cx1, cy1 := co*rx*y1/ry, -co*ry*x1/rx
	cx := cos*cx1 - sin*cy1 + (p0.X+end.X)/2
	cy := sin*cx1 + cos*cy1 + (p0.Y+end.Y)/2

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	delta := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx) - theta
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	n := segments(math.Abs(delta) / (math.Pi / 8))
	for i := 1; i < n; i++ {
		a := theta + delta*float64(i)/float64(n)
		ex, ey := rx*math.Cos(a), ry*math.Sin(a)
		b.lineTo(Point{cos*ex - sin*ey + cx, sin*ex + cos*ey + cy})
	}
	b.lineTo(end)
}

func segments(f float64) int {
	if math.IsNaN(f) || f <= 1 {
		return 1
	}
	return min(maxSegments, int(math.Ceil(f)))
}

// Parse parses SVG path data. All commands of the SVG path grammar are
// supported in absolute and relative form; curves and arcs are flattened.
func Parse(d string) (Path, error) {
	p := &parser{s: d}
	b := &builder{}
	var cmd byte

	for !p.eof() {
		c := p.s[p.i]
		if strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) >= 0 {
			cmd = c
			p.i++
		} else if cmd == 0 {
			return nil, errors.New(errors.ErrCodeInvalidPath, "path must start with a command, got %q", c)
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, errors.New(errors.ErrCodeInvalidPath, "unexpected number after Z at offset %d", p.i)
		}

		if err := b.apply(p, cmd); err != nil {
			return nil, err
		}
		// Coordinates following a moveto are implicit linetos.
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}
	b.flush()
	return b.path, nil
}

func (b *builder) apply(p *parser, cmd byte) error {
	rel := cmd >= 'a'
	upper := cmd &^ 0x20
	off := Point{}
	if rel {
		off = b.pos
	}
	pt := func(x, y float64) Point { return Point{x + off.X, y + off.Y} }
	reflect := func(kind byte) Point {
		if b.last == kind || (kind == 'C' && b.last == 'S') || (kind == 'Q' && b.last == 'T') {
			return b.pos.mul(2).sub(b.ctrl)
		}
		return b.pos
	}

	switch upper {
	case 'Z':
		b.close()
	case 'M':
		v, err := p.numbers(2)
		if err != nil {
			return err
		}
		b.moveTo(pt(v[0], v[1]))
	case 'L':
		v, err := p.numbers(2)
		if err != nil {
			return err
		}
		b.lineTo(pt(v[0], v[1]))
	case 'H':
		v, err := p.number()
		if err != nil {
			return err
		}
		x := v
		if rel {
			x += b.pos.X
		}
		b.lineTo(Point{x, b.pos.Y})
	case 'V':
		v, err := p.number()
		if err != nil {
			return err
		}
		y := v
		if rel {
			y += b.pos.Y
		}
		b.lineTo(Point{b.pos.X, y})
	case 'C':
		v, err := p.numbers(6)
		if err != nil {
			return err
		}
		b.cubic(pt(v[0], v[1]), pt(v[2], v[3]), pt(v[4], v[5]))
	case 'S':
		v, err := p.numbers(4)
		if err != nil {
			return err
		}
		b.cubic(reflect('C'), pt(v[0], v[1]), pt(v[2], v[3]))
	case 'Q':
		v, err := p.numbers(4)
		if err != nil {
			return err
		}
		b.quad(pt(v[0], v[1]), pt(v[2], v[3]))
	case 'T':
		v, err := p.numbers(2)
		if err != nil {
			return err
		}
		b.quad(reflect('Q'), pt(v[0], v[1]))
	case 'A':
		v, err := p.numbers(3)
		if err != nil {
			return err
		}
		large, err := p.flag()
		if err != nil {
			return err
		}
		sweep, err := p.flag()
		if err != nil {
			return err
		}
		e, err := p.numbers(2)
		if err != nil {
			return err
		}
		b.arc(v[0], v[1], v[2], large, sweep, pt(e[0], e[1]))
	}
	if upper != 'C' && upper != 'S' && upper != 'Q' && upper != 'T' {
		b.ctrl = b.pos
	}
	b.last = upper
	return nil
}
