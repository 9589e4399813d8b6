package transition

import (
	"github.com/matzehuels/stackchart/pkg/core/gradient"
	"github.com/matzehuels/stackchart/pkg/core/path"
	"github.com/matzehuels/stackchart/pkg/core/stack"
)

// Float interpolates numbers linearly.
func Float(a, b, t float64) float64 { return a + (b-a)*t }

// Rect interpolates each field of a rectangle. Negative sizes from
// overshooting curves clamp to zero.
func Rect(a, b stack.Rect, t float64) stack.Rect {
	return stack.Rect{
		X:      Float(a.X, b.X, t),
		Y:      Float(a.Y, b.Y, t),
		Width:  max(0, Float(a.Width, b.Width, t)),
		Height: max(0, Float(a.Height, b.Height, t)),
	}
}

// Color blends two CSS colors in RGB. Paint that is not a plain color, such
// as a gradient url(#id) reference, cannot be mixed and snaps to b at t=0.5.
func Color(a, b string, t float64) string {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	_, errA := gradient.ParseColor(a)
	_, errB := gradient.ParseColor(b)
	if errA != nil || errB != nil {
		if t < 0.5 {
			return a
		}
		return b
	}
	return gradient.Blend(a, b, t)
}

// Path morphs between two SVG path strings.
func Path(a, b string, t float64) string { return path.Lerp(a, b, t) }

var (
	_ Interpolator[float64]    = Float
	_ Interpolator[stack.Rect] = Rect
	_ Interpolator[string]     = Color
	_ Interpolator[string]     = Path
)
