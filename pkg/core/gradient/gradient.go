package gradient

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Axis selects which scale a gradient follows.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Stop is a gradient stop in data space.
type Stop struct {
	Offset  float64  `json:"offset" toml:"offset" yaml:"offset"`
	Color   string   `json:"color" toml:"color" yaml:"color"`
	Opacity *float64 `json:"opacity,omitempty" toml:"opacity,omitempty" yaml:"opacity,omitempty"`
}

// Alpha returns the stop opacity, defaulting to 1.
func (s Stop) Alpha() float64 {
	if s.Opacity == nil {
		return 1
	}
	return math.Max(0, math.Min(1, *s.Opacity))
}

// Opacity returns a pointer to o for use in [Stop] literals.
func Opacity(o float64) *float64 { return &o }

// Definition describes a gradient. Either Stops or StopsFunc is set; the
// function form derives stops from the current domain and wins when both are.
type Definition struct {
	Axis      Axis                       `json:"axis,omitempty" toml:"axis,omitempty" yaml:"axis,omitempty"`
	Stops     []Stop                     `json:"stops" toml:"stops" yaml:"stops"`
	StopsFunc func(scale.Domain) []Stop `json:"-" toml:"-" yaml:"-"`
}

// AxisOrDefault returns the configured axis, defaulting to [AxisY].
func (d Definition) AxisOrDefault() Axis {
	if d.Axis == AxisX {
		return AxisX
	}
	return AxisY
}

// ResolveStops returns the stops of def for a domain.
//
// Offsets must be non-decreasing; equal consecutive offsets encode a hard
// transition. A single stop becomes two stops fading from opacity 0 at the
// domain edge nearest zero to the stop colour at the opposite edge.
func ResolveStops(def Definition, d scale.Domain) ([]Stop, error) {
	stops := def.Stops
	if def.StopsFunc != nil {
		stops = def.StopsFunc(d)
	}
	if len(stops) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGradient, "gradient has no stops")
	}
	for i, s := range stops {
		if math.IsNaN(s.Offset) || math.IsInf(s.Offset, 0) {
			return nil, errors.New(errors.ErrCodeInvalidGradient, "stop %d has invalid offset %g", i, s.Offset)
		}
		if i > 0 && s.Offset < stops[i-1].Offset {
			return nil, errors.New(errors.ErrCodeInvalidGradient,
				"stop offsets must be non-decreasing: %g after %g", s.Offset, stops[i-1].Offset)
		}
	}
	if len(stops) == 1 {
		return fade(stops[0], d), nil
	}
	return append([]Stop(nil), stops...), nil
}

func fade(s Stop, d scale.Domain) []Stop {
	near, far := d.Min, d.Max
	if math.Abs(d.Max) < math.Abs(d.Min) {
		near, far = d.Max, d.Min
	}
	from := Stop{Offset: near, Color: s.Color, Opacity: Opacity(0)}
	to := Stop{Offset: far, Color: s.Color, Opacity: s.Opacity}
	if from.Offset > to.Offset {
		return []Stop{to, from}
	}
	return []Stop{from, to}
}

// RenderTable is a renderer-agnostic stop table with scale-relative
// positions in [0, 1], measured from the start of the scale's pixel range.
type RenderTable struct {
	Positions []float64 `json:"positions"`
	Colors    []string  `json:"colors"`
	Opacities []float64 `json:"opacities"`
}

// Len returns the number of stops.
func (t RenderTable) Len() int { return len(t.Positions) }

// Resolve normalizes the stops of def against s. Out-of-domain offsets are
// clamped to [0, 1].
func Resolve(def Definition, s scale.Scale) (RenderTable, error) {
	stops, err := ResolveStops(def, s.Domain())
	if err != nil {
		return RenderTable{}, err
	}
	t := RenderTable{
		Positions: make([]float64, len(stops)),
		Colors:    make([]string, len(stops)),
		Opacities: make([]float64, len(stops)),
	}
	for i, st := range stops {
		t.Positions[i] = position(s, st.Offset)
		t.Colors[i] = st.Color
		t.Opacities[i] = st.Alpha()
	}
	return t, nil
}

// position returns the normalized position of a data value on s.
func position(s scale.Scale, v float64) float64 {
	if s.Kind() != scale.KindBand {
		if p, ok := scale.Normalize(s, v); ok {
			return p
		}
	}
	d := s.Domain()
	if d.Span() == 0 {
		if v > d.Max {
			return 1
		}
		return 0
	}
	if s.Kind() == scale.KindLog && !d.Contains(v) {
		// Unmappable log values sit beyond the edge nearest zero.
		if math.Abs(d.Max) < math.Abs(d.Min) {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, (v-d.Min)/d.Span()))
}

// EvaluateAt computes the colour of def at a data value.
//
// An exact match on a stop position yields the last colour defined at that
// position. Between stops the bracketing pair is blended by the relative
// distance; outside the stops the end colours are used.
func EvaluateAt(def Definition, value float64, s scale.Scale) (Color, error) {
	stops, err := ResolveStops(def, s.Domain())
	if err != nil {
		return Color{}, err
	}
	pos := make([]float64, len(stops))
	for i, st := range stops {
		pos[i] = position(s, st.Offset)
	}
	p := position(s, value)

	last := -1
	for i := range pos {
		if pos[i] == p {
			last = i
		}
	}
	if last >= 0 {
		return Solid(stops[last].Color, stops[last].Alpha()), nil
	}
	if p < pos[0] {
		return Solid(stops[0].Color, stops[0].Alpha()), nil
	}
	n := len(stops) - 1
	if p > pos[n] {
		return Solid(stops[n].Color, stops[n].Alpha()), nil
	}

	// pos[i] < p < pos[i+1]
	i := 0
	for i < n-1 && pos[i+1] < p {
		i++
	}
	a, b := stops[i], stops[i+1]
	t := (p - pos[i]) / (pos[i+1] - pos[i])
	return Color{
		A:       a.Color,
		B:       b.Color,
		T:       t,
		Opacity: a.Alpha() + (b.Alpha()-a.Alpha())*t,
	}, nil
}

// EvaluateColor is EvaluateAt rendered as a colour expression. It returns ""
// when the definition is invalid.
func EvaluateColor(def Definition, value float64, s scale.Scale) string {
	c, err := EvaluateAt(def, value, s)
	if err != nil {
		return ""
	}
	return c.String()
}
