// Package scrub resolves a pointer position to the nearest data index.
//
// Interactive overlays precompute the pixel position of every data point
// once per layout pass and query [NearestIndex] on every pointer move.
// Ties resolve to the earlier index.
package scrub

import "math"

// BinaryThreshold is the length from which [NearestIndex] switches from a
// linear scan to binary search.
const BinaryThreshold = 64

// NearestIndex returns the index of the pixel closest to target, or -1 for
// an empty slice. Long slices must be monotonic (ascending or descending).
func NearestIndex(pixels []float64, target float64) int {
	if len(pixels) < BinaryThreshold {
		return NearestIndexLinear(pixels, target)
	}
	return NearestIndexSorted(pixels, target)
}

// NearestIndexLinear scans every pixel. It accepts unordered input.
func NearestIndexLinear(pixels []float64, target float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, p := range pixels {
		if d := math.Abs(p - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// NearestIndexSorted binary-searches monotonic pixels and compares the two
// candidates straddling target.
func NearestIndexSorted(pixels []float64, target float64) int {
	n := len(pixels)
	if n == 0 {
		return -1
	}
	asc := pixels[n-1] >= pixels[0]
	before := func(p float64) bool {
		if asc {
			return p < target
		}
		return p > target
	}
	// lo is the first index not strictly before target.
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if before(pixels[mid]) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == n {
		return firstEqual(pixels, n-1)
	}
	// Equal pixels tie; the earliest wins.
	lo = firstEqual(pixels, lo)
	if lo == 0 {
		return 0
	}
	if math.Abs(pixels[lo-1]-target) <= math.Abs(pixels[lo]-target) {
		return firstEqual(pixels, lo-1)
	}
	return lo
}

func firstEqual(pixels []float64, i int) int {
	for i > 0 && pixels[i-1] == pixels[i] {
		i--
	}
	return i
}
