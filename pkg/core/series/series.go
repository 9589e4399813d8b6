package series

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/core/gradient"
	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Shape is the common shape of a series' non-gap values.
type Shape uint8

const (
	ShapeEmpty Shape = iota
	ShapeScalar
	ShapeRange
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeRange:
		return "range"
	default:
		return "empty"
	}
}

// Series is an ingested data series. All non-gap values share one shape.
type Series struct {
	ID       string               `json:"id"`
	Data     []Value              `json:"data"`
	XAxisID  string               `json:"x_axis_id,omitempty"`
	YAxisID  string               `json:"y_axis_id,omitempty"`
	StackID  string               `json:"stack_id,omitempty"`
	Color    string               `json:"color,omitempty"`
	Gradient *gradient.Definition `json:"gradient,omitempty"`
}

// Len returns the number of data points.
func (s Series) Len() int { return len(s.Data) }

// At returns the value at index i, or a gap when i is out of bounds.
func (s Series) At(i int) Value {
	if i < 0 || i >= len(s.Data) {
		return Gap()
	}
	return s.Data[i]
}

// Shape reports the shape of the series' values.
func (s Series) Shape() Shape {
	for _, v := range s.Data {
		switch v.Kind() {
		case KindScalar:
			return ShapeScalar
		case KindRange:
			return ShapeRange
		}
	}
	return ShapeEmpty
}

// Stacked reports whether the series belongs to a stack.
func (s Series) Stacked() bool { return s.StackID != "" }

// Raw is a series as decoded from configuration, before ingestion.
type Raw struct {
	ID       string               `json:"id" toml:"id" yaml:"id"`
	Data     []any                `json:"data" toml:"data" yaml:"data"`
	XAxisID  string               `json:"x_axis_id,omitempty" toml:"x_axis_id,omitempty" yaml:"x_axis_id,omitempty"`
	YAxisID  string               `json:"y_axis_id,omitempty" toml:"y_axis_id,omitempty" yaml:"y_axis_id,omitempty"`
	StackID  string               `json:"stack_id,omitempty" toml:"stack_id,omitempty" yaml:"stack_id,omitempty"`
	Color    string               `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Gradient *gradient.Definition `json:"gradient,omitempty" toml:"gradient,omitempty" yaml:"gradient,omitempty"`
}

// Ingest validates a raw series and resolves every data point into a
// [Value]. Mixing scalars and ranges in one series is rejected.
func Ingest(r Raw) (Series, error) {
	if err := errors.ValidateSeriesID(r.ID); err != nil {
		return Series{}, err
	}
	if err := errors.ValidateAxisID(r.XAxisID); err != nil {
		return Series{}, err
	}
	if err := errors.ValidateAxisID(r.YAxisID); err != nil {
		return Series{}, err
	}

	s := Series{
		ID:       r.ID,
		Data:     make([]Value, len(r.Data)),
		XAxisID:  r.XAxisID,
		YAxisID:  r.YAxisID,
		StackID:  r.StackID,
		Color:    r.Color,
		Gradient: r.Gradient,
	}
	shape := KindGap
	for i, x := range r.Data {
		v, err := ParseValue(x)
		if err != nil {
			return Series{}, errors.Wrap(errors.ErrCodeInvalidSeries, err, "series %q: data[%d]", r.ID, i)
		}
		if k := v.Kind(); k != KindGap {
			if shape != KindGap && k != shape {
				return Series{}, errors.New(errors.ErrCodeInvalidSeries,
					"series %q: data[%d] is a %s but earlier values are %ss", r.ID, i, k, shape)
			}
			shape = k
		}
		s.Data[i] = v
	}
	return s, nil
}

// MaxLen returns the length of the longest series.
func MaxLen(series []Series) int {
	n := 0
	for _, s := range series {
		n = max(n, s.Len())
	}
	return n
}

// Extent returns the data domain covered by series. When stacked is true,
// scalar values of series sharing a stack (same StackID and YAxisID) are
// summed per side of zero at each index. ok is false when there is no data.
func Extent(series []Series, stacked bool) (d scale.Domain, ok bool) {
	d = scale.Domain{Min: math.Inf(1), Max: math.Inf(-1)}
	include := func(v float64) {
		d.Min = math.Min(d.Min, v)
		d.Max = math.Max(d.Max, v)
		ok = true
	}

	type key struct{ stack, axis string }
	type sums struct{ pos, neg []float64 }
	stacks := map[key]*sums{}

	for _, s := range series {
		for i, v := range s.Data {
			switch v.Kind() {
			case KindRange:
				lo, hi, _ := v.Range()
				include(lo)
				include(hi)
			case KindScalar:
				x, _ := v.Scalar()
				if !stacked || !s.Stacked() {
					include(x)
					continue
				}
				k := key{s.StackID, s.YAxisID}
				st := stacks[k]
				if st == nil {
					st = &sums{}
					stacks[k] = st
				}
				for len(st.pos) <= i {
					st.pos = append(st.pos, 0)
					st.neg = append(st.neg, 0)
				}
				if x >= 0 {
					st.pos[i] += x
					include(st.pos[i])
				} else {
					st.neg[i] += x
					include(st.neg[i])
				}
			}
		}
	}
	if !ok {
		return scale.Domain{}, false
	}
	return d, true
}
