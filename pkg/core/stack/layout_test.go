package stack

import (
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/core/series"
)

const tol = 1e-6

func scalars(id string, vs ...float64) series.Series {
	data := make([]series.Value, len(vs))
	for i, v := range vs {
		data[i] = series.Scalar(v)
	}
	return series.Series{ID: id, StackID: "s", Data: data}
}

func ranges(id string, pairs ...[2]float64) series.Series {
	data := make([]series.Value, len(pairs))
	for i, p := range pairs {
		data[i] = series.Range(p[0], p[1])
	}
	return series.Series{ID: id, StackID: "s", Data: data}
}

// yLinear maps 1 data unit to 2 pixels with the origin at the bottom.
func yLinear(t *testing.T, min, max float64) scale.Linear {
	t.Helper()
	s, err := scale.NewLinear(scale.Domain{Min: min, Max: max}, scale.Range{Start: 2 * (max - min), End: 0})
	if err != nil {
		t.Fatalf("NewLinear() error: %v", err)
	}
	return s
}

func geom(ys scale.Scale) Geometry {
	return Geometry{X: 10, Width: 40, YScale: ys}
}

func TestBaseline(t *testing.T) {
	tests := []struct {
		d    scale.Domain
		want float64
	}{
		{scale.Domain{Min: 0, Max: 100}, 0},
		{scale.Domain{Min: 20, Max: 100}, 20},
		{scale.Domain{Min: -100, Max: -10}, -10},
		{scale.Domain{Min: -50, Max: 50}, 0},
	}
	for _, tt := range tests {
		if got := Baseline(tt.d); got != tt.want {
			t.Errorf("Baseline(%v) = %g, want %g", tt.d, got, tt.want)
		}
	}
}

func TestLayout_SingleBarMinSize(t *testing.T) {
	ys := yLinear(t, 0, 100)
	res := Layout([]series.Series{scalars("a", 5)}, 0, geom(ys), Style{BarMinSize: 20})

	if len(res.Bars) != 1 {
		t.Fatalf("len(Bars) = %d, want 1", len(res.Bars))
	}
	r := res.Bars[0].Rect
	if math.Abs(r.Height-20) > tol {
		t.Errorf("Height = %g, want 20", r.Height)
	}
	// Grows away from the baseline at y=200.
	if math.Abs(r.Bottom()-200) > tol || math.Abs(r.Top()-180) > tol {
		t.Errorf("Rect = %+v, want y in [180, 200]", r)
	}
}

func TestLayout_DivergingFirstBarsHaveNoGap(t *testing.T) {
	ys := yLinear(t, -20, 30) // baseline 0 at y=60
	ss := []series.Series{scalars("pos", 10, 20), scalars("neg", -5, -15)}
	res := Layout(ss, 0, geom(ys), Style{StackGap: 2})

	if len(res.Bars) != 2 {
		t.Fatalf("len(Bars) = %d, want 2", len(res.Bars))
	}
	above, below := res.Bars[0], res.Bars[1]
	if above.Side != SideAbove || below.Side != SideBelow {
		t.Fatalf("sides = %v, %v", above.Side, below.Side)
	}
	if math.Abs(above.Rect.Bottom()-res.Baseline) > tol || math.Abs(above.Rect.Height-20) > tol {
		t.Errorf("above = %+v, want [40, 60]", above.Rect)
	}
	if math.Abs(below.Rect.Top()-res.Baseline) > tol || math.Abs(below.Rect.Height-10) > tol {
		t.Errorf("below = %+v, want [60, 70]", below.Rect)
	}
}

func TestLayout_GapFromSecondBar(t *testing.T) {
	ys := yLinear(t, 0, 100)
	ss := []series.Series{scalars("a", 10), scalars("b", 10), scalars("c", 10)}
	res := Layout(ss, 0, geom(ys), Style{StackGap: 3})

	// Each bar is 20px; bar k is pushed 3*k px outward.
	want := [][2]float64{{180, 200}, {157, 177}, {134, 154}}
	for i, b := range res.Bars {
		if math.Abs(b.Rect.Top()-want[i][0]) > tol || math.Abs(b.Rect.Bottom()-want[i][1]) > tol {
			t.Errorf("bar %d = [%g, %g], want %v", i, b.Rect.Top(), b.Rect.Bottom(), want[i])
		}
	}
}

func TestLayout_ZeroHeightDoesNotAdvanceGap(t *testing.T) {
	ys := yLinear(t, 0, 100)
	ss := []series.Series{scalars("a", 10), scalars("zero", 0), scalars("b", 10)}
	res := Layout(ss, 0, geom(ys), Style{StackGap: 3})

	// b is the second non-empty bar and gets a single gap.
	b := res.Bars[2]
	if math.Abs(b.Rect.Bottom()-177) > tol {
		t.Errorf("b bottom = %g, want 177", b.Rect.Bottom())
	}
}

func TestLayout_TuplesIgnoreGap(t *testing.T) {
	ys := yLinear(t, 0, 100)
	ss := []series.Series{ranges("a", [2]float64{0, 10}), ranges("b", [2]float64{10, 30})}
	res := Layout(ss, 0, geom(ys), Style{StackGap: 5})

	if math.Abs(res.Bars[1].Rect.Bottom()-180) > tol || math.Abs(res.Bars[1].Rect.Top()-140) > tol {
		t.Errorf("tuple bar = %+v, want literal [140, 180]", res.Bars[1].Rect)
	}
}

func TestLayout_TupleSides(t *testing.T) {
	ys := yLinear(t, -50, 50)
	ss := []series.Series{ranges("up", [2]float64{-2, 20}), ranges("down", [2]float64{-30, 4})}
	res := Layout(ss, 0, geom(ys), Style{})

	if res.Bars[0].Side != SideAbove || res.Bars[1].Side != SideBelow {
		t.Errorf("sides = %v, %v, want above, below", res.Bars[0].Side, res.Bars[1].Side)
	}
	// Edges are clamped to the baseline side.
	if math.Abs(res.Bars[0].Rect.Bottom()-res.Baseline) > tol {
		t.Errorf("above bar bottom = %g, want baseline %g", res.Bars[0].Rect.Bottom(), res.Baseline)
	}
	if math.Abs(res.Bars[1].Rect.Top()-res.Baseline) > tol {
		t.Errorf("below bar top = %g, want baseline %g", res.Bars[1].Rect.Top(), res.Baseline)
	}
}

func TestLayout_Empty(t *testing.T) {
	ys := yLinear(t, 0, 100)
	res := Layout([]series.Series{{ID: "gap", Data: []series.Value{series.Gap()}}}, 0, geom(ys), Style{})

	if len(res.Bars) != 0 {
		t.Fatalf("len(Bars) = %d, want 0", len(res.Bars))
	}
	if res.Bounds.Height != 0 || res.Bounds.Y != 200 {
		t.Errorf("Bounds = %+v, want zero height at baseline 200", res.Bounds)
	}
}

func TestLayout_SkipsUnmappable(t *testing.T) {
	ys, _ := scale.NewLog(scale.Domain{Min: -1000, Max: -1}, scale.Range{Start: 0, End: 300}, 10)
	ss := []series.Series{scalars("pos", 5), scalars("neg", -100)}
	res := Layout(ss, 0, geom(ys), Style{})

	if len(res.Bars) != 1 || res.Bars[0].SeriesID != "neg" {
		t.Errorf("Bars = %+v, want only neg", res.Bars)
	}
}

func TestLayout_BarMinSizeRepositions(t *testing.T) {
	ys := yLinear(t, 0, 100)
	ss := []series.Series{scalars("a", 2), scalars("b", 2), scalars("c", 40)}
	res := Layout(ss, 0, geom(ys), Style{StackGap: 2, BarMinSize: 10})

	assertNoOverlap(t, res.Bars)
	for _, b := range res.Bars {
		if b.Rect.Height < 10-tol {
			t.Errorf("bar %s height = %g, want >= 10", b.SeriesID, b.Rect.Height)
		}
	}
	// Original 2px gaps are preserved.
	if g := res.Bars[0].Rect.Top() - res.Bars[1].Rect.Bottom(); math.Abs(g-2) > tol {
		t.Errorf("gap a-b = %g, want 2", g)
	}
	if g := res.Bars[1].Rect.Top() - res.Bars[2].Rect.Bottom(); math.Abs(g-2) > tol {
		t.Errorf("gap b-c = %g, want 2", g)
	}
	if math.Abs(res.Bars[2].Rect.Height-80) > tol {
		t.Errorf("c height = %g, want 80", res.Bars[2].Rect.Height)
	}
}

func TestLayout_BarMinSizeZeroValues(t *testing.T) {
	ys := yLinear(t, 0, 100)
	tests := []struct {
		name string
		ss   []series.Series
		want [][2]float64 // top, bottom per bar
	}{
		{"zero first", []series.Series{scalars("a", 0), scalars("b", 5)}, [][2]float64{{180, 200}, {160, 180}}},
		{"zero between", []series.Series{scalars("a", 5), scalars("b", 0), scalars("c", 15)}, [][2]float64{{180, 200}, {160, 180}, {130, 160}}},
		{"zero alone", []series.Series{scalars("a", 0)}, [][2]float64{{180, 200}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Layout(tt.ss, 0, geom(ys), Style{BarMinSize: 20})
			if len(res.Bars) != len(tt.want) {
				t.Fatalf("len(Bars) = %d, want %d", len(res.Bars), len(tt.want))
			}
			for i, b := range res.Bars {
				got := [2]float64{b.Rect.Top(), b.Rect.Bottom()}
				if math.Abs(got[0]-tt.want[i][0]) > tol || math.Abs(got[1]-tt.want[i][1]) > tol {
					t.Errorf("bar %s = %v, want %v", b.SeriesID, got, tt.want[i])
				}
			}
			assertNoOverlap(t, res.Bars)
		})
	}
}

func TestLayout_StackMinSize(t *testing.T) {
	ys := yLinear(t, 0, 100)

	t.Run("single bar", func(t *testing.T) {
		res := Layout([]series.Series{scalars("a", 3)}, 0, geom(ys), Style{StackMinSize: 30})
		if math.Abs(res.Bars[0].Rect.Height-30) > tol || math.Abs(res.Bars[0].Rect.Bottom()-200) > tol {
			t.Errorf("Rect = %+v, want height 30 on baseline", res.Bars[0].Rect)
		}
	})

	t.Run("scaled bars keep gaps", func(t *testing.T) {
		ss := []series.Series{scalars("a", 5), scalars("b", 5)}
		res := Layout(ss, 0, geom(ys), Style{StackGap: 2, StackMinSize: 60})

		if math.Abs(res.Bounds.Height-60) > tol {
			t.Errorf("Bounds.Height = %g, want 60", res.Bounds.Height)
		}
		for _, b := range res.Bars {
			if math.Abs(b.Rect.Height-29) > tol {
				t.Errorf("bar %s height = %g, want 29", b.SeriesID, b.Rect.Height)
			}
		}
		if g := res.Bars[0].Rect.Top() - res.Bars[1].Rect.Bottom(); math.Abs(g-2) > tol {
			t.Errorf("gap = %g, want 2", g)
		}
	})

	t.Run("large stack untouched", func(t *testing.T) {
		ss := []series.Series{scalars("a", 50), scalars("b", 50)}
		plain := Layout(ss, 0, geom(ys), Style{})
		res := Layout(ss, 0, geom(ys), Style{StackMinSize: 60})
		if !reflect.DeepEqual(plain, res) {
			t.Errorf("Layout() changed a stack already above the minimum")
		}
	})
}

func TestLayout_Rounding(t *testing.T) {
	ys := yLinear(t, -50, 50)
	ss := []series.Series{scalars("a", 10), scalars("b", 10), scalars("n", -10)}

	tests := []struct {
		name  string
		style Style
		want  [][2]bool // RoundTop, RoundBottom per bar
	}{
		{"contiguous", Style{BorderRadius: 4}, [][2]bool{{false, false}, {true, false}, {false, true}}},
		{"gapped", Style{BorderRadius: 4, StackGap: 2}, [][2]bool{{true, false}, {true, true}, {false, true}}},
		{"round baseline", Style{BorderRadius: 4, RoundBaseline: true}, [][2]bool{{false, true}, {true, false}, {true, true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Layout(ss, 0, geom(ys), tt.style)
			for i, b := range res.Bars {
				got := [2]bool{b.RoundTop, b.RoundBottom}
				if got != tt.want[i] {
					t.Errorf("bar %s round = %v, want %v", b.SeriesID, got, tt.want[i])
				}
			}
		})
	}
}

func TestLayout_Radius(t *testing.T) {
	ys := yLinear(t, 0, 100)
	res := Layout([]series.Series{scalars("a", 2)}, 0, geom(ys), Style{BorderRadius: 10})
	// 4px tall bar rounded on its outer edge only.
	if res.Bars[0].Radius != 4 {
		t.Errorf("Radius = %g, want 4", res.Bars[0].Radius)
	}
}

func TestLayout_BarPadding(t *testing.T) {
	ys := yLinear(t, 0, 100)
	res := Layout([]series.Series{scalars("a", 2)}, 0, geom(ys), Style{BarPadding: 5})
	if r := res.Bars[0].Rect; r.X != 15 || r.Width != 30 {
		t.Errorf("Rect = %+v, want x=15 width=30", r)
	}
}

func TestLayout_Deterministic(t *testing.T) {
	ys := yLinear(t, -100, 100)
	ss := []series.Series{scalars("a", 3, 9), scalars("b", -7, 1), ranges("c", [2]float64{4, 12}, [2]float64{-9, -1})}
	style := Style{StackGap: 1.5, BarMinSize: 6, StackMinSize: 50, BorderRadius: 3}
	first := Layout(ss, 1, geom(ys), style)
	for i := 0; i < 10; i++ {
		if got := Layout(ss, 1, geom(ys), style); !reflect.DeepEqual(got, first) {
			t.Fatalf("Layout() run %d differs", i)
		}
	}
}

// TestLayout_Properties checks random stacks of scalars: without gaps and
// minimum sizes the bars tile their union exactly; with a minimum bar size
// every bar is at least that tall and no two bars overlap.
func TestLayout_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	ys := yLinear(t, -200, 200)

	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(6)
		ss := make([]series.Series, n)
		for i := range ss {
			v := math.Round((rng.Float64()*60-30)*10) / 10
			if rng.Intn(5) == 0 {
				v = 0
			}
			ss[i] = scalars(string(rune('a'+i)), v)
		}

		plain := Layout(ss, 0, geom(ys), Style{})
		assertNoOverlap(t, plain.Bars)
		assertTiles(t, plain)

		m := 1 + rng.Float64()*15
		res := Layout(ss, 0, geom(ys), Style{BarMinSize: m, StackGap: rng.Float64() * 3})
		assertNoOverlap(t, res.Bars)
		for _, b := range res.Bars {
			if b.Rect.Height < m-tol {
				t.Fatalf("iter %d: bar %s height %g < min %g", iter, b.SeriesID, b.Rect.Height, m)
			}
		}
	}
}

func assertNoOverlap(t *testing.T, bars []Bar) {
	t.Helper()
	for i := range bars {
		for j := i + 1; j < len(bars); j++ {
			a, b := bars[i].Rect, bars[j].Rect
			if a.Height <= tol || b.Height <= tol {
				continue
			}
			if a.Top() < b.Bottom()-tol && b.Top() < a.Bottom()-tol {
				t.Fatalf("bars %s %+v and %s %+v overlap", bars[i].SeriesID, a, bars[j].SeriesID, b)
			}
		}
	}
}

func assertTiles(t *testing.T, res Result) {
	t.Helper()
	var spans [][2]float64
	for _, b := range res.Bars {
		if b.Rect.Height > tol {
			spans = append(spans, [2]float64{b.Rect.Top(), b.Rect.Bottom()})
		}
	}
	if len(spans) == 0 {
		return
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	for i := 1; i < len(spans); i++ {
		if math.Abs(spans[i][0]-spans[i-1][1]) > tol {
			t.Fatalf("gap between %v and %v", spans[i-1], spans[i])
		}
	}
	if math.Abs(spans[0][0]-res.Bounds.Top()) > tol || math.Abs(spans[len(spans)-1][1]-res.Bounds.Bottom()) > tol {
		t.Fatalf("bars %v do not span bounds %+v", spans, res.Bounds)
	}
}
