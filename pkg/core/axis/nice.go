package axis

import (
	"math"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/core/scale"
)

// DefaultCount is the tick count requested when neither Count nor Interval is
// set.
const DefaultCount = 5

// maxTicks bounds tick generation when step clamping forces a tiny step over
// a wide domain.
const maxTicks = 10000

var (
	sqrt50 = math.Sqrt(50)
	sqrt10 = math.Sqrt(10)
	sqrt2  = math.Sqrt(2)
)

// NiceStep returns a step of the form 1, 2 or 5 × 10^k that divides span into
// roughly count intervals. It returns 0 for a non-positive span or count.
func NiceStep(span float64, count int) float64 {
	span = math.Abs(span)
	if span == 0 || count <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0
	}
	raw := span / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch e := raw / mag; {
	case e >= sqrt50:
		return 10 * mag
	case e >= sqrt10:
		return 5 * mag
	case e >= sqrt2:
		return 2 * mag
	default:
		return mag
	}
}

// NiceDomain extends d outward to multiples of NiceStep(d.Span(), count).
// A degenerate domain is returned unchanged.
func NiceDomain(d scale.Domain, count int) scale.Domain {
	step := NiceStep(d.Span(), count)
	if step == 0 {
		return d
	}
	slack := d.Span() * 1e-10
	return scale.Domain{
		Min: math.Floor((d.Min+slack)/step) * step,
		Max: math.Ceil((d.Max-slack)/step) * step,
	}
}

// stepValues returns the multiples of step inside [lo, hi], or the enclosing
// multiples when roundOut is set.
func stepValues(lo, hi, step float64, roundOut bool) []float64 {
	slack := (hi - lo) * 1e-10
	var first, last float64
	if roundOut {
		first = math.Floor((lo + slack) / step)
		last = math.Ceil((hi - slack) / step)
	} else {
		first = math.Ceil((lo - slack) / step)
		last = math.Floor((hi + slack) / step)
	}
	if last < first {
		return nil
	}
	n := int(last-first) + 1
	if n > maxTicks {
		n = maxTicks
	}

	// Dividing by the inverse keeps 0.1 steps exact (0.3, not 0.30000000000000004).
	inv := 0.0
	if step < 1 {
		inv = math.Round(1 / step)
	}
	values := make([]float64, n)
	for i := range values {
		k := first + float64(i)
		if inv > 0 && math.Abs(1/inv-step) < step*1e-12 {
			values[i] = k / inv
		} else {
			values[i] = k * step
		}
	}
	return values
}

// precision returns the number of decimals needed to print multiples of step.
func precision(step float64) int {
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return -1
	}
	p := -int(math.Floor(math.Log10(step) + 1e-9))
	return max(0, p)
}

// FormatStep returns a label formatter that prints values with the number of
// decimals a tick step requires.
func FormatStep(step float64) func(float64) string {
	prec := precision(step)
	return func(v float64) string {
		if v == 0 {
			v = 0 // avoid "-0"
		}
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
}

// FormatValue prints v with the fewest digits that represent it exactly.
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
