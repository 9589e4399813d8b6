package stack

import (
	"math"
	"sort"

	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/core/series"
)

// eps is the pixel tolerance below which a gap or an edge offset counts as
// zero.
const eps = 1e-9

// Side is the side of the baseline a bar grows toward.
type Side int8

const (
	SideAbove Side = 1
	SideBelow Side = -1
)

func (s Side) String() string {
	if s == SideBelow {
		return "below"
	}
	return "above"
}

// MarshalText encodes the side as "above" or "below".
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Geometry is the shared placement of one stack.
type Geometry struct {
	X, Width float64 // Horizontal slot; defaults to Area when Width is 0
	YScale   scale.Scale
	Area     Rect
}

// Style holds the layout knobs. All sizes are in pixels.
type Style struct {
	BarPadding    float64 `json:"bar_padding" toml:"bar_padding" yaml:"bar_padding"`
	StackGap      float64 `json:"stack_gap" toml:"stack_gap" yaml:"stack_gap"`
	BarMinSize    float64 `json:"bar_min_size" toml:"bar_min_size" yaml:"bar_min_size"`
	StackMinSize  float64 `json:"stack_min_size" toml:"stack_min_size" yaml:"stack_min_size"`
	BorderRadius  float64 `json:"border_radius" toml:"border_radius" yaml:"border_radius"`
	RoundBaseline bool    `json:"round_baseline" toml:"round_baseline" yaml:"round_baseline"`
}

// Bar is one laid out rectangle.
type Bar struct {
	SeriesID    string       `json:"series_id"`
	Rect        Rect         `json:"rect"`
	RoundTop    bool         `json:"round_top"`
	RoundBottom bool         `json:"round_bottom"`
	Radius      float64      `json:"radius"`
	Side        Side         `json:"side"`
	Value       series.Value `json:"value"`
}

// Result is the output of one layout pass.
type Result struct {
	Bars     []Bar   `json:"bars"`
	Bounds   Rect    `json:"bounds"`
	Baseline float64 `json:"baseline"` // Baseline pixel
}

// Baseline returns the data value bars grow from: the domain minimum when the
// domain is non-negative, the maximum when it is non-positive, and 0 otherwise.
func Baseline(d scale.Domain) float64 {
	switch {
	case d.Min >= 0:
		return d.Min
	case d.Max <= 0:
		return d.Max
	default:
		return 0
	}
}

// slot is a bar in side-local coordinates: distances in pixels from the
// baseline to the bar's near (inner) and far (outer) edge.
type slot struct {
	bar    int
	side   Side
	scalar bool
	inner  float64
	outer  float64
}

func (s *slot) height() float64 { return s.outer - s.inner }

// Layout computes the bars of the series at a category index. All series are
// assumed to share one stack; use [Groups] to partition a chart's series.
//
// Scalars stack additively per side of zero. Ranges are placed literally.
// Values that the y scale cannot map are skipped.
func Layout(ss []series.Series, index int, geom Geometry, style Style) Result {
	if geom.Width == 0 && geom.Area.Width > 0 {
		geom.X, geom.Width = geom.Area.X, geom.Area.Width
	}
	x := geom.X + style.BarPadding
	w := math.Max(0, geom.Width-2*style.BarPadding)

	if geom.YScale == nil {
		return Result{Bounds: Rect{X: x, Width: w}}
	}
	ys := geom.YScale
	base := Baseline(ys.Domain())
	basePx, ok := ys.Forward(base)
	if !ok {
		return Result{Bounds: Rect{X: x, Width: w}}
	}

	bars, slots := place(ss, index, ys, base, basePx)

	if len(slots) >= 2 {
		applyGaps(slots, style.StackGap)
	}
	if style.BarMinSize > 0 {
		applyBarMin(slots, style.BarMinSize)
	}
	if style.StackMinSize > 0 && len(slots) > 0 {
		applyStackMin(slots, style.StackMinSize)
	}

	dir := scale.Direction(ys)
	for i := range slots {
		sl := &slots[i]
		sdir := float64(sl.side) * dir
		bars[sl.bar].Rect = verticalSpan(x, w, basePx+sdir*sl.inner, basePx+sdir*sl.outer)
	}
	applyRounding(slots, bars, style, dir, w)

	res := Result{Bars: bars, Baseline: basePx, Bounds: Rect{X: x, Y: basePx, Width: w}}
	for i, b := range bars {
		if i == 0 {
			res.Bounds = b.Rect
			continue
		}
		res.Bounds = res.Bounds.Union(b.Rect)
	}
	return res
}

// place converts the values at index into bars and side-local slots.
func place(ss []series.Series, index int, ys scale.Scale, base, basePx float64) ([]Bar, []slot) {
	bars := make([]Bar, 0, len(ss))
	slots := make([]slot, 0, len(ss))
	var posAcc, negAcc float64

	for _, s := range ss {
		v := s.At(index)
		var lo, hi float64
		var side Side
		switch v.Kind() {
		case series.KindScalar:
			x, _ := v.Scalar()
			if x >= 0 {
				lo, hi = posAcc, posAcc+x
				posAcc = hi
				side = SideAbove
			} else {
				lo, hi = negAcc+x, negAcc
				negAcc = lo
				side = SideBelow
			}
		case series.KindRange:
			lo, hi, _ = v.Range()
			side = SideAbove
			if (lo+hi)/2 < base {
				side = SideBelow
			}
		default:
			continue
		}

		near, far := math.Max(lo, base), math.Max(hi, base)
		if side == SideBelow {
			near, far = math.Min(hi, base), math.Min(lo, base)
		}
		pxNear, okNear := ys.Forward(near)
		pxFar, okFar := ys.Forward(far)
		if !okNear || !okFar {
			continue
		}
		inner, outer := math.Abs(pxNear-basePx), math.Abs(pxFar-basePx)
		if outer < inner {
			inner, outer = outer, inner
		}

		slots = append(slots, slot{
			bar:    len(bars),
			side:   side,
			scalar: v.Kind() == series.KindScalar,
			inner:  inner,
			outer:  outer,
		})
		bars = append(bars, Bar{SeriesID: s.ID, Side: side, Value: v})
	}
	return bars, slots
}

// applyGaps pushes each scalar bar StackGap pixels further out per scalar bar
// of non-zero height already placed on its side.
func applyGaps(slots []slot, gap float64) {
	if gap <= 0 {
		return
	}
	count := map[Side]int{}
	for i := range slots {
		sl := &slots[i]
		if !sl.scalar {
			continue
		}
		off := gap * float64(max(0, count[sl.side]))
		sl.inner += off
		sl.outer += off
		if sl.height() > eps {
			count[sl.side]++
		}
	}
}

// sideOrder returns the indices of slots on side ordered from the baseline
// outward. Ties keep series order.
func sideOrder(slots []slot, side Side) []int {
	var idx []int
	for i := range slots {
		if slots[i].side == side {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return slots[idx[a]].inner < slots[idx[b]].inner
	})
	return idx
}

// gapsOf returns the pixel gap in front of each slot in order: gaps[0] is the
// distance to the baseline, gaps[k] the distance to the previous bar. Overlaps
// count as zero.
func gapsOf(slots []slot, order []int) []float64 {
	gaps := make([]float64, len(order))
	for k, i := range order {
		if k == 0 {
			gaps[k] = math.Max(0, slots[i].inner)
			continue
		}
		gaps[k] = math.Max(0, slots[i].inner-slots[order[k-1]].outer)
	}
	return gaps
}

// reposition stacks the slots outward from the first one, keeping their
// heights and restoring the given gaps between neighbours.
func reposition(slots []slot, order []int, gaps []float64) {
	for k := 1; k < len(order); k++ {
		sl := &slots[order[k]]
		h := sl.height()
		sl.inner = slots[order[k-1]].outer + gaps[k]
		sl.outer = sl.inner + h
	}
}

// expand grows a bar to size pixels. A bar sitting on the baseline grows
// outward; any other bar grows by half the deficit on both edges. Zero-height
// bars expand too.
func expand(sl *slot, size float64) bool {
	h := sl.height()
	if h >= size {
		return false
	}
	if sl.inner <= eps {
		sl.outer = sl.inner + size
		return true
	}
	d := (size - h) / 2
	sl.inner -= d
	sl.outer += d
	if sl.inner < 0 {
		sl.outer -= sl.inner
		sl.inner = 0
	}
	return true
}

func applyBarMin(slots []slot, size float64) {
	sides := []Side{SideAbove, SideBelow}
	orders := make([][]int, len(sides))
	gaps := make([][]float64, len(sides))
	for i, side := range sides {
		orders[i] = sideOrder(slots, side)
		gaps[i] = gapsOf(slots, orders[i])
	}

	expanded := false
	for i := range slots {
		if expand(&slots[i], size) {
			expanded = true
		}
	}
	if !expanded || len(slots) < 2 {
		return
	}
	for i := range sides {
		reposition(slots, orders[i], gaps[i])
	}
}

func applyStackMin(slots []slot, size float64) {
	if len(slots) == 1 {
		expand(&slots[0], size)
		return
	}

	var above, below, totalBar float64
	for i := range slots {
		sl := &slots[i]
		totalBar += sl.height()
		if sl.side == SideAbove {
			above = math.Max(above, sl.outer)
		} else {
			below = math.Max(below, sl.outer)
		}
	}
	union := unionLength(slots, above, below)
	if union >= size || totalBar <= eps {
		return
	}

	totalGap := math.Max(0, union-totalBar)
	required := size - totalGap
	factor := required / totalBar

	for _, side := range []Side{SideAbove, SideBelow} {
		order := sideOrder(slots, side)
		if len(order) == 0 {
			continue
		}
		gaps := gapsOf(slots, order)
		for _, i := range order {
			sl := &slots[i]
			sl.outer = sl.inner + sl.height()*factor
		}
		reposition(slots, order, gaps)
	}
}

// unionLength returns the pixel length of the union of all bars.
func unionLength(slots []slot, above, below float64) float64 {
	hasAbove, hasBelow := false, false
	innerAbove, innerBelow := math.Inf(1), math.Inf(1)
	for i := range slots {
		if slots[i].side == SideAbove {
			hasAbove = true
			innerAbove = math.Min(innerAbove, slots[i].inner)
		} else {
			hasBelow = true
			innerBelow = math.Min(innerBelow, slots[i].inner)
		}
	}
	switch {
	case hasAbove && hasBelow:
		return above + below
	case hasAbove:
		return above - innerAbove
	default:
		return below - innerBelow
	}
}

// applyRounding sets corner flags. The outer edge of a bar is rounded when it
// is the outermost bar on its side or a visible gap separates it from the
// next bar; the inner edge likewise toward the previous bar or the baseline.
func applyRounding(slots []slot, bars []Bar, style Style, dir, width float64) {
	for _, side := range []Side{SideAbove, SideBelow} {
		var order []int
		for _, i := range sideOrder(slots, side) {
			if slots[i].height() > eps {
				order = append(order, i)
			}
		}
		for k, i := range order {
			sl := slots[i]
			roundOuter := k == len(order)-1 || slots[order[k+1]].inner-sl.outer > eps
			var roundInner bool
			if k == 0 {
				roundInner = sl.inner > eps || style.RoundBaseline
			} else {
				roundInner = sl.inner-slots[order[k-1]].outer > eps
			}

			b := &bars[sl.bar]
			// The outer edge is the top when the side grows toward smaller y.
			if float64(side)*dir < 0 {
				b.RoundTop, b.RoundBottom = roundOuter, roundInner
			} else {
				b.RoundTop, b.RoundBottom = roundInner, roundOuter
			}
			b.Radius = radius(style.BorderRadius, width, sl.height(), roundOuter && roundInner)
		}
	}
}

func radius(r, width, height float64, both bool) float64 {
	if r <= 0 {
		return 0
	}
	limit := height
	if both {
		limit = height / 2
	}
	return math.Max(0, math.Min(r, math.Min(width/2, limit)))
}
