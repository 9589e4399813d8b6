package scale

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Linear is a continuous linear scale. Values outside the domain are
// extrapolated. A Linear with a degenerate domain (Min == Max) maps every
// value to the middle of the range; use [NewLinear] to reject that case.
type Linear struct {
	Dom Domain
	Rng Range
}

var _ Continuous = Linear{}

// NewLinear creates a linear scale. The range must have a nonzero span and the
// domain must satisfy Min < Max.
func NewLinear(d Domain, r Range) (Linear, error) {
	if !validRange(r) {
		return Linear{}, errors.New(errors.ErrCodeInvalidScale, "range span is zero: [%g, %g]", r.Start, r.End)
	}
	if !(d.Min < d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return Linear{}, errors.New(errors.ErrCodeInvalidScale, "degenerate domain: [%g, %g]", d.Min, d.Max)
	}
	return Linear{Dom: d, Rng: r}, nil
}

// Kind returns KindLinear.
func (s Linear) Kind() Kind { return KindLinear }

// Domain returns the data domain.
func (s Linear) Domain() Domain { return s.Dom }

// Range returns the pixel range.
func (s Linear) Range() Range { return s.Rng }

// Forward maps v to a pixel by linear interpolation (or extrapolation).
func (s Linear) Forward(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	span := s.Dom.Span()
	if span == 0 {
		return s.Rng.Start + s.Rng.Span()/2, true
	}
	return s.Rng.Start + (v-s.Dom.Min)/span*s.Rng.Span(), true
}

// Invert maps a pixel back to a data value.
func (s Linear) Invert(px float64) (float64, bool) {
	span := s.Rng.Span()
	if span == 0 || math.IsNaN(px) {
		return 0, false
	}
	return s.Dom.Min + (px-s.Rng.Start)/span*s.Dom.Span(), true
}
