package scale

import (
	"fmt"
	"math"
)

// Kind identifies the scale variant.
type Kind int

const (
	KindLinear Kind = iota
	KindLog
	KindBand
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindLog:
		return "log"
	case KindBand:
		return "band"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a configuration name into a Kind. The empty string
// selects [KindLinear].
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "", "linear":
		return KindLinear, true
	case "log":
		return KindLog, true
	case "band":
		return KindBand, true
	default:
		return 0, false
	}
}

// Domain is a closed data interval.
type Domain struct {
	Min, Max float64
}

// Span returns Max - Min.
func (d Domain) Span() float64 { return d.Max - d.Min }

// Contains reports whether v lies in [Min, Max] allowing for a relative
// floating-point slack.
func (d Domain) Contains(v float64) bool {
	slack := math.Abs(d.Span()) * 1e-10
	return v >= d.Min-slack && v <= d.Max+slack
}

// Include returns the smallest domain containing both d and v.
func (d Domain) Include(v float64) Domain {
	return Domain{Min: math.Min(d.Min, v), Max: math.Max(d.Max, v)}
}

// Range is a pixel interval. Start may be greater than End for inverted
// axes (the usual case for a y axis with origin at the top-left).
type Range struct {
	Start, End float64
}

// Span returns End - Start. The sign carries the axis direction.
func (r Range) Span() float64 { return r.End - r.Start }

// Min returns the smaller pixel bound.
func (r Range) Min() float64 { return math.Min(r.Start, r.End) }

// Max returns the larger pixel bound.
func (r Range) Max() float64 { return math.Max(r.Start, r.End) }

// Scale maps data values to pixels.
type Scale interface {
	// Kind reports the scale variant.
	Kind() Kind
	// Forward maps v to a pixel. ok is false for out-of-domain lookups.
	Forward(v float64) (px float64, ok bool)
	// Domain returns the data domain. Band scales return the index domain.
	Domain() Domain
	// Range returns the pixel range.
	Range() Range
}

// Continuous is a Scale that can also map pixels back to data values.
type Continuous interface {
	Scale
	// Invert maps a pixel back to a data value.
	Invert(px float64) (v float64, ok bool)
}

// Direction returns +1 when increasing data values map to increasing pixels
// and -1 otherwise.
func Direction(s Scale) float64 {
	if s.Range().Span() < 0 {
		return -1
	}
	return 1
}

// Normalize returns the position of v within the pixel range of s as a
// fraction in [0, 1] measured from Range().Start. Values outside the range
// are clamped. ok is false when v cannot be mapped.
func Normalize(s Scale, v float64) (float64, bool) {
	px, ok := s.Forward(v)
	if !ok {
		return 0, false
	}
	span := s.Range().Span()
	if span == 0 {
		return 0, false
	}
	return clamp01((px - s.Range().Start) / span), true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func validRange(r Range) bool {
	return r.Span() != 0 && !math.IsNaN(r.Start) && !math.IsNaN(r.End) &&
		!math.IsInf(r.Start, 0) && !math.IsInf(r.End, 0)
}
