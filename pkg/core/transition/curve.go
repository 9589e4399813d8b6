package transition

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Curve maps normalized progress in [0,1] to an interpolation factor.
// Curves return 0 at 0 and 1 at 1; springs may overshoot in between.
type Curve func(p float64) float64

// Linear is the identity curve.
func Linear(p float64) float64 { return p }

var easings = map[string]Curve{
	"linear":      Linear,
	"ease":        CubicBezier(0.25, 0.1, 0.25, 1),
	"ease-in":     CubicBezier(0.42, 0, 1, 1),
	"ease-out":    CubicBezier(0, 0, 0.58, 1),
	"ease-in-out": CubicBezier(0.42, 0, 0.58, 1),
}

// ParseEasing parses a CSS-style easing: a keyword or
// "cubic-bezier(x1, y1, x2, y2)".
func ParseEasing(s string) (Curve, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := easings[name]; ok {
		return c, nil
	}
	if args, ok := strings.CutPrefix(name, "cubic-bezier("); ok && strings.HasSuffix(args, ")") {
		var x1, y1, x2, y2 float64
		fields := strings.ReplaceAll(strings.TrimSuffix(args, ")"), ",", " ")
		if n, err := fmt.Sscan(fields, &x1, &y1, &x2, &y2); err != nil || n != 4 {
			return nil, errors.New(errors.ErrCodeInvalidTransition, "invalid easing %q", s)
		}
		if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
			return nil, errors.New(errors.ErrCodeInvalidTransition, "cubic-bezier x values must be in [0,1]: %q", s)
		}
		return CubicBezier(x1, y1, x2, y2), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidTransition, "unknown easing %q", s)
}

// CubicBezier returns the CSS timing function with control points
// (x1,y1) and (x2,y2).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	bez := func(a, b, t float64) float64 {
		u := 1 - t
		return 3*u*u*t*a + 3*u*t*t*b + t*t*t
	}
	dbez := func(a, b, t float64) float64 {
		u := 1 - t
		return 3*u*u*a + 6*u*t*(b-a) + 3*t*t*(1-b)
	}
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		// Newton first, bisection when the slope vanishes.
		t := p
		for range 8 {
			x := bez(x1, x2, t) - p
			if math.Abs(x) < 1e-7 {
				return bez(y1, y2, t)
			}
			d := dbez(x1, x2, t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= x / d
		}
		lo, hi := 0.0, 1.0
		t = p
		for range 50 {
			x := bez(x1, x2, t)
			if math.Abs(x-p) < 1e-7 {
				break
			}
			if x < p {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return bez(y1, y2, t)
	}
}

// restDelta is the remaining displacement, relative to the travel, at which
// a spring counts as settled.
const restDelta = 1e-3

// maxSettle caps the settle time of very soft springs.
const maxSettle = 60 * time.Second

type spring struct {
	k, c, m float64
}

func (s spring) omega() float64 { return math.Sqrt(s.k / s.m) }
func (s spring) zeta() float64  { return s.c / (2 * math.Sqrt(s.k*s.m)) }

// displacement returns the remaining fraction of the travel at time t for a
// spring released from rest.
func (s spring) displacement(t float64) float64 {
	w0, z := s.omega(), s.zeta()
	switch {
	case z < 1:
		wd := w0 * math.Sqrt(1-z*z)
		return math.Exp(-z*w0*t) * (math.Cos(wd*t) + z*w0/wd*math.Sin(wd*t))
	case z == 1:
		return math.Exp(-w0*t) * (1 + w0*t)
	default:
		r := math.Sqrt(z*z - 1)
		r1, r2 := -w0*(z-r), -w0*(z+r)
		return (r2*math.Exp(r1*t) - r1*math.Exp(r2*t)) / (r2 - r1)
	}
}

// SettleTime returns how long a spring takes until its displacement stays
// below 0.1% of the travel.
func SettleTime(stiffness, damping, mass float64) time.Duration {
	if stiffness <= 0 || damping <= 0 || mass <= 0 {
		return maxSettle
	}
	return spring{k: stiffness, c: damping, m: mass}.settle()
}

func (s spring) settle() time.Duration {
	w0, z := s.omega(), s.zeta()
	var sec float64
	if z < 1 {
		// The envelope bounds the oscillation.
		amp := 1 / math.Sqrt(1-z*z)
		sec = math.Log(amp/restDelta) / (z * w0)
	} else {
		// Critically and over-damped springs decay monotonically.
		hi := 1 / w0
		for s.displacement(hi) > restDelta && hi < maxSettle.Seconds() {
			hi *= 2
		}
		lo := 0.0
		for range 60 {
			mid := (lo + hi) / 2
			if s.displacement(mid) > restDelta {
				lo = mid
			} else {
				hi = mid
			}
		}
		sec = hi
	}
	d := time.Duration(sec * float64(time.Second))
	return min(max(d, time.Millisecond), maxSettle)
}

// curve returns the spring's mix factor over normalized progress, where
// progress 1 is d.
func (s spring) curve(d time.Duration) Curve {
	total := d.Seconds()
	return func(p float64) float64 {
		if p <= 0 {
			return 0
		}
		if p >= 1 {
			return 1
		}
		return 1 - s.displacement(p*total)
	}
}
