package stack

import "math"

// Rect is an axis-aligned rectangle in pixel space. Y grows downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Top returns the smaller y coordinate.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the larger y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Right returns the larger x coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Overlaps reports whether r and o share interior area. Rectangles that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// verticalSpan returns a rect covering x..x+w horizontally and the pixel
// interval [a, b] in either order vertically.
func verticalSpan(x, w, a, b float64) Rect {
	return Rect{X: x, Y: math.Min(a, b), Width: w, Height: math.Abs(b - a)}
}
