package scale

import (
	"math"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// DefaultLogBase is used when a log scale is created with base 0.
const DefaultLogBase = 10

// Log is a continuous logarithmic scale. The domain lies entirely on one
// side of zero. For a negative domain values are mirrored: -log(-x).
type Log struct {
	dom  Domain
	rng  Range
	base float64
	neg  bool
}

var _ Continuous = Log{}

// NewLog creates a logarithmic scale. A base of 0 selects [DefaultLogBase];
// bases must otherwise be positive and not 1. The domain must not contain
// or touch zero.
func NewLog(d Domain, r Range, base float64) (Log, error) {
	if base == 0 {
		base = DefaultLogBase
	}
	if base <= 0 || base == 1 || math.IsNaN(base) {
		return Log{}, errors.New(errors.ErrCodeInvalidScale, "invalid log base: %g", base)
	}
	if !validRange(r) {
		return Log{}, errors.New(errors.ErrCodeInvalidScale, "range span is zero: [%g, %g]", r.Start, r.End)
	}
	if !(d.Min < d.Max) {
		return Log{}, errors.New(errors.ErrCodeInvalidScale, "degenerate domain: [%g, %g]", d.Min, d.Max)
	}
	if d.Min <= 0 && d.Max >= 0 {
		return Log{}, errors.New(errors.ErrCodeInvalidScale, "log domain must not include zero: [%g, %g]", d.Min, d.Max)
	}
	return Log{dom: d, rng: r, base: base, neg: d.Max < 0}, nil
}

// Kind returns KindLog.
func (s Log) Kind() Kind { return KindLog }

// Domain returns the data domain.
func (s Log) Domain() Domain { return s.dom }

// Range returns the pixel range.
func (s Log) Range() Range { return s.rng }

// Base returns the logarithm base.
func (s Log) Base() float64 { return s.base }

// Negative reports whether the domain is negative-only.
func (s Log) Negative() bool { return s.neg }

func (s Log) transform(v float64) (float64, bool) {
	if s.neg {
		if !(v < 0) {
			return 0, false
		}
		return -math.Log(-v) / math.Log(s.base), true
	}
	if !(v > 0) {
		return 0, false
	}
	return math.Log(v) / math.Log(s.base), true
}

func (s Log) untransform(t float64) float64 {
	if s.neg {
		return -math.Pow(s.base, -t)
	}
	return math.Pow(s.base, t)
}

// Forward maps v to a pixel. ok is false for values on the wrong side of
// zero.
func (s Log) Forward(v float64) (float64, bool) {
	tv, ok := s.transform(v)
	if !ok {
		return 0, false
	}
	t0, _ := s.transform(s.dom.Min)
	t1, _ := s.transform(s.dom.Max)
	return s.rng.Start + (tv-t0)/(t1-t0)*s.rng.Span(), true
}

// Invert maps a pixel back to a data value.
func (s Log) Invert(px float64) (float64, bool) {
	span := s.rng.Span()
	if span == 0 || math.IsNaN(px) {
		return 0, false
	}
	t0, _ := s.transform(s.dom.Min)
	t1, _ := s.transform(s.dom.Max)
	return s.untransform(t0 + (px-s.rng.Start)/span*(t1-t0)), true
}
