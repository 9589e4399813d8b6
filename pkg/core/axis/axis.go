package axis

import (
	"math"
	"sort"

	"github.com/matzehuels/stackchart/pkg/core/scale"
)

// Tick is a planned axis tick.
type Tick struct {
	Value    float64 `json:"value"`    // Data value (category index for band scales)
	Position float64 `json:"position"` // Pixel position along the axis
	Label    string  `json:"label"`
}

// Constraints controls tick planning. The zero value plans DefaultCount nice
// ticks inside the domain.
type Constraints struct {
	// Ticks lists explicit tick values. When non-empty it is authoritative and
	// every other field except Format is ignored.
	Ticks []float64

	// Filter keeps only the candidate ticks for which it returns true. For band
	// scales it is evaluated against every category index.
	Filter func(value float64, index int) bool

	// Count is the requested number of ticks. Zero means DefaultCount.
	Count int

	// Interval derives Count from the pixel distance between ticks. It takes
	// precedence over Count when positive.
	Interval float64

	// MinStep and MaxStep clamp the tick step when non-zero.
	MinStep, MaxStep float64

	// Nice extends the generated ticks to the step-rounded domain bounds
	// instead of keeping them inside the domain.
	Nice bool

	// Format renders tick labels. Continuous scales default to printing the
	// decimals the step requires, band scales to the category name.
	Format func(float64) string
}

// count resolves the effective tick count for a pixel range.
func (c Constraints) count(r scale.Range) int {
	if c.Interval > 0 {
		return max(1, int(math.Floor(math.Abs(r.Span())/c.Interval)))
	}
	if c.Count > 0 {
		return c.Count
	}
	return DefaultCount
}

// step returns the candidate step for a domain span, clamped to the
// configured bounds.
func (c Constraints) step(span float64, count int) float64 {
	step := NiceStep(span, count)
	if c.MinStep > 0 && step < c.MinStep {
		step = c.MinStep
	}
	if c.MaxStep > 0 && step > c.MaxStep {
		step = c.MaxStep
	}
	return step
}

// Plan computes the ticks for s under c, ordered by value ascending.
//
// Explicit ticks are authoritative; values that the scale cannot map are
// dropped. Otherwise candidate ticks are derived from the scale kind and, if
// c.Filter is set, reduced to those the predicate accepts.
func Plan(s scale.Scale, c Constraints) []Tick {
	if len(c.Ticks) > 0 {
		return explicit(s, c)
	}
	switch sc := s.(type) {
	case scale.Band:
		return bandTicks(sc, c)
	case scale.Log:
		return logTicks(sc, c)
	}
	return linearTicks(s, c)
}

func explicit(s scale.Scale, c Constraints) []Tick {
	format := c.Format
	if format == nil {
		if b, ok := s.(scale.Band); ok {
			format = categoryLabel(b)
		} else {
			format = FormatValue
		}
	}
	values := append([]float64(nil), c.Ticks...)
	sort.Float64s(values)

	ticks := make([]Tick, 0, len(values))
	for _, v := range values {
		px, ok := position(s, v)
		if !ok {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Position: px, Label: format(v)})
	}
	return ticks
}

// position maps v to the tick pixel: the band centre for band scales, the
// forward mapping otherwise.
func position(s scale.Scale, v float64) (float64, bool) {
	if b, ok := s.(scale.Band); ok {
		if v != math.Trunc(v) {
			return 0, false
		}
		return b.Center(int(v))
	}
	px, ok := s.Forward(v)
	if !ok || math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, false
	}
	return px, true
}

func categoryLabel(b scale.Band) func(float64) string {
	cats := b.Categories()
	return func(v float64) string {
		i := int(v)
		if i < 0 || i >= len(cats) {
			return FormatValue(v)
		}
		return cats[i]
	}
}

func bandTicks(b scale.Band, c Constraints) []Tick {
	n := b.Len()
	if n == 0 {
		return nil
	}
	format := c.Format
	if format == nil {
		format = categoryLabel(b)
	}

	stride := 1
	if c.Filter == nil {
		if want := c.count(b.Range()); (c.Count > 0 || c.Interval > 0) && want < n {
			stride = int(math.Ceil(float64(n) / float64(want)))
		}
	}

	ticks := make([]Tick, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		v := float64(i)
		if c.Filter != nil && !c.Filter(v, i) {
			continue
		}
		px, _ := b.Center(i)
		ticks = append(ticks, Tick{Value: v, Position: px, Label: format(v)})
	}
	return ticks
}

func linearTicks(s scale.Scale, c Constraints) []Tick {
	d := s.Domain()
	if d.Span() == 0 {
		return single(s, d.Min, c.Format)
	}

	step := c.step(d.Span(), c.count(s.Range()))
	if step == 0 {
		return nil
	}
	format := c.Format
	if format == nil {
		format = FormatStep(step)
	}
	return build(s, stepValues(d.Min, d.Max, step, c.Nice), c.Filter, format)
}

func logTicks(s scale.Log, c Constraints) []Tick {
	d := s.Domain()
	lo, hi := math.Abs(d.Min), math.Abs(d.Max)
	if lo > hi {
		lo, hi = hi, lo
	}
	base := s.Base()
	logb := func(v float64) float64 { return math.Log(v) / math.Log(base) }

	slack := 1e-10
	var first, last float64
	if c.Nice {
		first, last = math.Floor(logb(lo)+slack), math.Ceil(logb(hi)-slack)
	} else {
		first, last = math.Ceil(logb(lo)-slack), math.Floor(logb(hi)+slack)
	}
	powers := int(last-first) + 1
	if powers < 2 {
		// Domain narrower than one decade: fall back to linear ticks.
		return linearTicks(s, c)
	}

	stride := 1
	if c.Filter == nil {
		if want := c.count(s.Range()); want < powers {
			stride = int(math.Ceil(float64(powers) / float64(want)))
		}
	}

	values := make([]float64, 0, powers)
	for k := first; k <= last && len(values) < maxTicks; k += float64(stride) {
		v := math.Pow(base, k)
		if s.Negative() {
			v = -v
		}
		values = append(values, v)
	}
	sort.Float64s(values)

	format := c.Format
	if format == nil {
		format = FormatValue
	}
	return build(s, values, c.Filter, format)
}

func single(s scale.Scale, v float64, format func(float64) string) []Tick {
	px, ok := position(s, v)
	if !ok {
		return nil
	}
	if format == nil {
		format = FormatValue
	}
	return []Tick{{Value: v, Position: px, Label: format(v)}}
}

func build(s scale.Scale, values []float64, filter func(float64, int) bool, format func(float64) string) []Tick {
	ticks := make([]Tick, 0, len(values))
	for i, v := range values {
		if filter != nil && !filter(v, i) {
			continue
		}
		px, ok := position(s, v)
		if !ok {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Position: px, Label: format(v)})
	}
	return ticks
}

// Positions returns the pixel positions of ticks.
func Positions(ticks []Tick) []float64 {
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = t.Position
	}
	return out
}
