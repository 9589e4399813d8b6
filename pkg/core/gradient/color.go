package gradient

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Color is the result of a point evaluation: a blend of two stop colours.
// T is the weight of B. Renderers that support CSS colour mixing use [Color.Mix];
// others use [Color.RGB].
type Color struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	T       float64 `json:"t"`
	Opacity float64 `json:"opacity"`
}

// Solid returns a colour that is exactly c.
func Solid(c string, opacity float64) Color {
	return Color{A: c, B: c, Opacity: opacity}
}

// IsSolid reports whether the colour is a single stop colour without blending.
func (c Color) IsSolid() bool {
	return c.T <= 0 || c.T >= 1 || c.A == c.B
}

// String returns the exact stop colour when no blending is needed and the
// color-mix expression otherwise.
func (c Color) String() string {
	switch {
	case c.T <= 0 || c.A == c.B:
		return c.A
	case c.T >= 1:
		return c.B
	}
	return c.Mix()
}

// Mix returns a CSS color-mix expression in the sRGB space.
func (c Color) Mix() string {
	t := math.Max(0, math.Min(1, c.T))
	return fmt.Sprintf("color-mix(in srgb, %s %s%%, %s %s%%)",
		c.A, percent(1-t), c.B, percent(t))
}

// RGB returns the blend as a #rrggbb hex string. Colours that cannot be
// parsed fall back to [Color.String].
func (c Color) RGB() string {
	if c.T <= 0 {
		if a, err := ParseColor(c.A); err == nil {
			return a.Hex()
		}
		return c.String()
	}
	return Blend(c.A, c.B, c.T)
}

func percent(f float64) string {
	return strconv.FormatFloat(math.Round(f*10000)/100, 'f', -1, 64)
}

// ParseColor parses #rgb, #rrggbb, rgb(r, g, b) and CSS named colours.
func ParseColor(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidGradient, "empty colour")
	case strings.HasPrefix(v, "#"):
		if len(v) != 4 && len(v) != 7 {
			return colorful.Color{}, errors.New(errors.ErrCodeInvalidGradient, "parse colour %q: want #rgb or #rrggbb", s)
		}
		c, err := colorful.Hex(v)
		if err != nil {
			return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidGradient, err, "parse colour %q", s)
		}
		return c, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		var r, g, b int
		body := strings.ReplaceAll(v[4:len(v)-1], " ", "")
		if _, err := fmt.Sscanf(body, "%d,%d,%d", &r, &g, &b); err != nil {
			return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidGradient, err, "parse colour %q", s)
		}
		return colorful.Color{R: channel(r), G: channel(g), B: channel(b)}, nil
	}
	if named, ok := colornames.Map[v]; ok {
		return colorful.Color{R: channel(int(named.R)), G: channel(int(named.G)), B: channel(int(named.B))}, nil
	}
	return colorful.Color{}, errors.New(errors.ErrCodeInvalidGradient, "unknown colour %q", s)
}

func channel(v int) float64 {
	return float64(max(0, min(255, v))) / 255
}

// Blend linearly interpolates two colours in RGB and returns a #rrggbb hex
// string. When either colour cannot be parsed it returns a CSS color-mix
// expression instead.
func Blend(a, b string, t float64) string {
	t = math.Max(0, math.Min(1, t))
	ca, errA := ParseColor(a)
	cb, errB := ParseColor(b)
	if errA != nil || errB != nil {
		return Color{A: a, B: b, T: t}.String()
	}
	return ca.BlendRgb(cb, t).Clamped().Hex()
}
