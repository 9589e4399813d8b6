package path

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		d      string
		want   string
		closed bool
	}{
		{"absolute", "M0,0 L10,0 L10,10 Z", "M0,0L10,0L10,10Z", true},
		{"relative", "m10 10 h5 v5 h-5 z", "M10,10L15,10L15,15L10,15Z", true},
		{"implicit lineto", "M0 0 10 0 10 10", "M0,0L10,0L10,10", false},
		{"compact numbers", "M.5.5L-1e1,2", "M0.5,0.5L-10,2", false},
		{"absolute H V", "M1,1H4V3", "M1,1L4,1L4,3", false},
		{"closing point dropped", "M0,0L5,0L0,0Z", "M0,0L5,0Z", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.d)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got := p.String(); got != tt.want {
				t.Errorf("Parse().String() = %q, want %q", got, tt.want)
			}
			if p[0].Closed != tt.closed {
				t.Errorf("Closed = %v, want %v", p[0].Closed, tt.closed)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, d := range []string{"L0", "10 10", "M0,0 Lx", "M0", "M0,0Z 5 5", "M0,0 A5,5 0 2 1 10,0"} {
		_, err := Parse(d)
		if err == nil {
			t.Errorf("Parse(%q) error = nil", d)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("Parse(%q) code = %s, want %s", d, errors.GetCode(err), errors.ErrCodeInvalidPath)
		}
	}
	if p, err := Parse("  "); err != nil || len(p) != 0 {
		t.Errorf("Parse(blank) = %v, %v", p, err)
	}
}

func TestParseCurves(t *testing.T) {
	p, err := Parse("M0,0 C0,10 10,10 10,0")
	if err != nil {
		t.Fatal(err)
	}
	pts := p[0].Points
	if len(pts) < 4 {
		t.Errorf("cubic flattened to %d points, want more", len(pts))
	}
	if last := pts[len(pts)-1]; last != (Point{10, 0}) {
		t.Errorf("cubic end = %v, want {10 0}", last)
	}

	p, err = Parse("M0,0 Q5,10 10,0 T20,0")
	if err != nil {
		t.Fatal(err)
	}
	pts = p[0].Points
	if last := pts[len(pts)-1]; math.Abs(last.X-20) > 1e-9 || math.Abs(last.Y) > 1e-9 {
		t.Errorf("smooth quad end = %v, want {20 0}", last)
	}
	// The reflected control point sits below the axis.
	var minY float64
	for _, q := range pts {
		minY = math.Min(minY, q.Y)
	}
	if minY >= 0 {
		t.Errorf("smooth quad never dips below 0, min y = %g", minY)
	}
}

func TestParseArc(t *testing.T) {
	p, err := Parse("M0,0 A5,5 0 0 1 10,0")
	if err != nil {
		t.Fatal(err)
	}
	pts := p[0].Points
	if last := pts[len(pts)-1]; last != (Point{10, 0}) {
		t.Errorf("arc end = %v, want {10 0}", last)
	}
	minY := 0.0
	for _, q := range pts {
		if q.Y > 1e-9 {
			t.Errorf("arc point %v below the chord, want the upper half", q)
		}
		minY = math.Min(minY, q.Y)
	}
	if math.Abs(minY+5) > 1e-9 {
		t.Errorf("arc apex y = %g, want -5", minY)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	from := "M0,0 L10,0 L10,10 Z"
	to := "M0 0 h20 v20 h-20 z"
	if got := Interpolate(from, to, 0); got != from {
		t.Errorf("Interpolate(t=0) = %q, want %q", got, from)
	}
	if got := Interpolate(from, to, 1); got != to {
		t.Errorf("Interpolate(t=1) = %q, want %q", got, to)
	}
	if got := Interpolate(from, to, -3); got != from {
		t.Errorf("Interpolate(t<0) = %q, want from", got)
	}
	if got := Interpolate(from, to, 7); got != to {
		t.Errorf("Interpolate(t>1) = %q, want to", got)
	}
}

func TestInterpolateSameShape(t *testing.T) {
	got := Interpolate("M0,0L10,0", "M0,10L10,10", 0.5)
	if want := "M0,5L10,5"; got != want {
		t.Errorf("Interpolate() = %q, want %q", got, want)
	}
	got = Lerp("M0,0L10,0L10,10L0,10Z", "M0,0L20,0L20,20L0,20Z", 0.5)
	if want := "M0,0L15,0L15,15L0,15Z"; got != want {
		t.Errorf("Lerp() = %q, want %q", got, want)
	}
}

func TestInterpolateDifferentCounts(t *testing.T) {
	tri := "M0,0L10,0L5,10Z"
	sq := "M0,0L10,0L10,10L0,10Z"
	p, err := Parse(Interpolate(tri, sq, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 1 || len(p[0].Points) != 4 || !p[0].Closed {
		t.Errorf("Interpolate() = %+v, want one closed subpath with 4 points", p)
	}

	two := "M0,0L10,0L10,10L0,10Z M20,0L30,0L30,10L20,10Z"
	p, err = Parse(Interpolate(sq, two, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 {
		t.Errorf("Interpolate() has %d subpaths, want 2", len(p))
	}

	m := NewMorph(sq, two)
	for _, tt := range []float64{0.1, 0.5, 0.9} {
		if _, err := Parse(m.At(tt)); err != nil {
			t.Errorf("Morph.At(%g) unparseable: %v", tt, err)
		}
	}
}

func TestDensify(t *testing.T) {
	tests := []struct {
		name string
		in   Subpath
		n    int
		want []Point
	}{
		{"even split", Subpath{Points: []Point{{0, 0}, {10, 0}}}, 5,
			[]Point{{0, 0}, {2.5, 0}, {5, 0}, {7.5, 0}, {10, 0}}},
		{"longest segment first", Subpath{Points: []Point{{0, 0}, {1, 0}, {11, 0}}}, 4,
			[]Point{{0, 0}, {1, 0}, {6, 0}, {11, 0}}},
		{"closing segment counts", Subpath{Points: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 9}}, Closed: true}, 5,
			[]Point{{0, 0}, {1, 0}, {1, 1}, {0, 9}, {0, 4.5}}},
		{"single point", Subpath{Points: []Point{{3, 4}}}, 3,
			[]Point{{3, 4}, {3, 4}, {3, 4}}},
		{"already dense", Subpath{Points: []Point{{0, 0}, {1, 1}}}, 2,
			[]Point{{0, 0}, {1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := densify(tt.in, tt.n)
			if !reflect.DeepEqual(got.Points, tt.want) {
				t.Errorf("densify() = %v, want %v", got.Points, tt.want)
			}
			if got.Closed != tt.in.Closed {
				t.Errorf("densify() closed = %v, want %v", got.Closed, tt.in.Closed)
			}
		})
	}
}

func TestInterpolateUnparseable(t *testing.T) {
	if got := Interpolate("bogus", "M0,0L1,1", 0.3); got != "bogus" {
		t.Errorf("Interpolate(t=0.3) = %q, want bogus", got)
	}
	if got := Interpolate("bogus", "M0,0L1,1", 0.7); got != "M0,0L1,1" {
		t.Errorf("Interpolate(t=0.7) = %q, want to", got)
	}
	if got := Interpolate("", "M0,0L1,1", 0.5); got != "M0,0L1,1" {
		t.Errorf("Interpolate(empty, t=0.5) = %q, want to", got)
	}
}

func TestRoundedRect(t *testing.T) {
	r := stack.Rect{X: 0, Y: 0, Width: 10, Height: 20}
	tests := []struct {
		name        string
		radius      float64
		top, bottom bool
		want        string
	}{
		{"square", 0, true, true, "M0,0L10,0L10,20L0,20Z"},
		{"flags off", 3, false, false, "M0,0L10,0L10,20L0,20Z"},
		{"top", 2, true, false, "M0,2A2,2 0 0 1 2,0L8,0A2,2 0 0 1 10,2L10,20L0,20Z"},
		{"bottom", 2, false, true, "M0,0L10,0L10,18A2,2 0 0 1 8,20L2,20A2,2 0 0 1 0,18Z"},
		{"clamped to half width", 9, true, false, "M0,5A5,5 0 0 1 5,0L5,0A5,5 0 0 1 10,5L10,20L0,20Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundedRect(r, tt.radius, tt.top, tt.bottom)
			if got != tt.want {
				t.Errorf("RoundedRect() = %q, want %q", got, tt.want)
			}
			if _, err := Parse(got); err != nil {
				t.Errorf("RoundedRect() not parseable: %v", err)
			}
		})
	}
}

func TestLine(t *testing.T) {
	pts := []Point{{0, 0}, {10, 10}}
	if got := Line(pts, Linear); got != "M0,0L10,10" {
		t.Errorf("Line(Linear) = %q", got)
	}
	if got := Line(pts, Step); got != "M0,0L5,0L5,10L10,10" {
		t.Errorf("Line(Step) = %q", got)
	}
	if got := Line(pts, Monotone); got != "M0,0L10,10" {
		t.Errorf("Line(Monotone, 2 points) = %q", got)
	}
	if got := Line(nil, Linear); got != "" {
		t.Errorf("Line(nil) = %q, want empty", got)
	}
}

func TestLineMonotone(t *testing.T) {
	d := Line([]Point{{0, 0}, {1, 1}, {2, 1}, {3, 5}}, Monotone)
	p, err := Parse(d)
	if err != nil {
		t.Fatalf("Parse(%q): %v", d, err)
	}
	pts := p[0].Points
	for i := 1; i < len(pts); i++ {
		if pts[i].Y < pts[i-1].Y-1e-9 {
			t.Errorf("monotone curve decreases at %v -> %v", pts[i-1], pts[i])
		}
	}
	if last := pts[len(pts)-1]; last != (Point{3, 5}) {
		t.Errorf("monotone end = %v, want {3 5}", last)
	}
}

func TestArea(t *testing.T) {
	top := []Point{{0, 0}, {10, 0}}
	bottom := []Point{{0, 10}, {10, 10}}
	if got := Area(top, bottom, Linear); got != "M0,0L10,0L10,10L0,10Z" {
		t.Errorf("Area() = %q", got)
	}
	if got := Area(top, bottom[:1], Linear); got != "" {
		t.Errorf("Area(mismatched) = %q, want empty", got)
	}
}

func TestParseCurve(t *testing.T) {
	for _, c := range []Curve{Linear, Step, Monotone} {
		got, err := ParseCurve(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCurve(%q) = %v, %v", c.String(), got, err)
		}
	}
	if c, err := ParseCurve(""); err != nil || c != Linear {
		t.Errorf("ParseCurve(\"\") = %v, %v", c, err)
	}
	if _, err := ParseCurve("basis"); err == nil {
		t.Error("ParseCurve(basis) error = nil")
	}
}
