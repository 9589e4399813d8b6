package path

import "math"

// maxRotation bounds the point count for which closed subpaths are rotated
// to the best starting correspondence.
const maxRotation = 512

// Morph is a precomputed correspondence between two paths. Build one with
// [NewMorph] when the same pair is sampled every frame.
type Morph struct {
	from, to string
	a, b     Path
	ok       bool
}

// NewMorph parses both paths and aligns them: subpath counts are equalised
// by adding collapsed subpaths, and each subpath pair is brought to a common
// point count by splitting the longest segments of the sparser one.
//
// If either path cannot be parsed the morph snaps from one to the other at
// t=0.5.
func NewMorph(from, to string) *Morph {
	m := &Morph{from: from, to: to}
	a, errA := Parse(from)
	b, errB := Parse(to)
	if errA != nil || errB != nil || len(a) == 0 || len(b) == 0 {
		return m
	}
	a, b = padSubpaths(a, b)
	for i := range a {
		a[i], b[i] = align(a[i], b[i])
	}
	m.a, m.b, m.ok = a, b, true
	return m
}

// At samples the morph. t<=0 yields the original from string and t>=1 the
// original to string.
func (m *Morph) At(t float64) string {
	switch {
	case t <= 0 || m.from == m.to:
		return m.from
	case t >= 1:
		return m.to
	case !m.ok:
		if t < 0.5 {
			return m.from
		}
		return m.to
	}
	out := make(Path, len(m.a))
	for i := range m.a {
		sa, sb := m.a[i], m.b[i]
		pts := make([]Point, len(sa.Points))
		for k := range pts {
			pts[k] = sa.Points[k].lerp(sb.Points[k], t)
		}
		closed := sa.Closed
		if t >= 0.5 {
			closed = sb.Closed
		}
		out[i] = Subpath{Points: pts, Closed: closed}
	}
	return out.String()
}

// Interpolate returns the path at t between from and to.
func Interpolate(from, to string, t float64) string {
	if t <= 0 || from == to {
		return from
	}
	if t >= 1 {
		return to
	}
	return NewMorph(from, to).At(t)
}

// Lerp is [Interpolate] with the argument order used by interpolators.
func Lerp(a, b string, t float64) string {
	return Interpolate(a, b, t)
}

// padSubpaths appends collapsed subpaths to the shorter path so both have
// the same number of subpaths. A collapsed subpath sits at the centroid of
// the shorter path's last subpath.
func padSubpaths(a, b Path) (Path, Path) {
	a, b = append(Path(nil), a...), append(Path(nil), b...)
	for len(a) < len(b) {
		a = append(a, collapsed(a[len(a)-1], b[len(a)]))
	}
	for len(b) < len(a) {
		b = append(b, collapsed(b[len(b)-1], a[len(b)]))
	}
	return a, b
}

func collapsed(anchor, like Subpath) Subpath {
	return Subpath{Points: []Point{anchor.centroid()}, Closed: like.Closed}
}

// align returns copies of a and b with equal point counts.
func align(a, b Subpath) (Subpath, Subpath) {
	n := max(len(a.Points), len(b.Points))
	a = densify(a, n)
	b = densify(b, n)
	if a.Closed && b.Closed && n <= maxRotation {
		b = rotate(b, bestOffset(a.Points, b.Points))
	}
	return a, b
}

// densify splits the longest segment of s until it has n points. A single
// point is repeated.
func densify(s Subpath, n int) Subpath {
	pts := append([]Point(nil), s.Points...)
	if len(pts) == 1 {
		for len(pts) < n {
			pts = append(pts, pts[0])
		}
		return Subpath{Points: pts, Closed: s.Closed}
	}
	for len(pts) < n {
		segs := len(pts) - 1
		if s.Closed {
			segs++
		}
		best, bestLen := 0, -1.0
		for i := 0; i < segs; i++ {
			l := pts[i].dist(pts[(i+1)%len(pts)])
			if l > bestLen {
				best, bestLen = i, l
			}
		}
		mid := pts[best].lerp(pts[(best+1)%len(pts)], 0.5)
		pts = append(pts[:best+1], append([]Point{mid}, pts[best+1:]...)...)
	}
	return Subpath{Points: pts, Closed: s.Closed}
}

// bestOffset returns the rotation of b that minimises the summed squared
// distance to a.
func bestOffset(a, b []Point) int {
	n := len(a)
	best, bestSum := 0, math.Inf(1)
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			q := b[(i+k)%n]
			dx, dy := a[i].X-q.X, a[i].Y-q.Y
			sum += dx*dx + dy*dy
			if sum >= bestSum {
				break
			}
		}
		if sum < bestSum {
			best, bestSum = k, sum
		}
	}
	return best
}

func rotate(s Subpath, k int) Subpath {
	if k == 0 {
		return s
	}
	n := len(s.Points)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = s.Points[(i+k)%n]
	}
	return Subpath{Points: pts, Closed: s.Closed}
}
