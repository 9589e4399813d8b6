package scale

import (
	"math"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Band is a categorical scale dividing its range into equal bands, one per
// category. Forward takes a category index and returns the pixel at which the
// band starts (its smaller pixel edge).
type Band struct {
	categories   []string
	index        map[string]int
	rng          Range
	paddingInner float64
	paddingOuter float64
	align        float64
}

var _ Scale = Band{}

// BandOption configures a band scale.
type BandOption func(*Band)

// WithPaddingInner sets the fraction of each step reserved as space between
// bands. Values are clamped to [0, 1].
func WithPaddingInner(p float64) BandOption {
	return func(b *Band) { b.paddingInner = clamp01(p) }
}

// WithPaddingOuter sets the padding before the first and after the last band,
// as a multiple of the step.
func WithPaddingOuter(p float64) BandOption {
	return func(b *Band) { b.paddingOuter = math.Max(0, p) }
}

// WithAlign distributes leftover outer space: 0 pushes bands toward the range
// start, 1 toward the end, 0.5 (the default) centers them.
func WithAlign(a float64) BandOption {
	return func(b *Band) { b.align = clamp01(a) }
}

// NewBand creates a band scale over the given categories.
func NewBand(categories []string, r Range, opts ...BandOption) (Band, error) {
	if !validRange(r) {
		return Band{}, errors.New(errors.ErrCodeInvalidScale, "range span is zero: [%g, %g]", r.Start, r.End)
	}
	b := Band{
		categories: append([]string(nil), categories...),
		index:      make(map[string]int, len(categories)),
		rng:        r,
		align:      0.5,
	}
	for i, c := range b.categories {
		if _, dup := b.index[c]; !dup {
			b.index[c] = i
		}
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b, nil
}

// NewIndexBand creates a band scale with n anonymous categories "0".."n-1".
func NewIndexBand(n int, r Range, opts ...BandOption) (Band, error) {
	cats := make([]string, max(0, n))
	for i := range cats {
		cats[i] = strconv.Itoa(i)
	}
	return NewBand(cats, r, opts...)
}

// Kind returns KindBand.
func (b Band) Kind() Kind { return KindBand }

// Range returns the pixel range.
func (b Band) Range() Range { return b.rng }

// Domain returns the index domain [0, n-1].
func (b Band) Domain() Domain {
	return Domain{Min: 0, Max: float64(max(0, len(b.categories)-1))}
}

// Len returns the number of categories.
func (b Band) Len() int { return len(b.categories) }

// Categories returns a copy of the category labels.
func (b Band) Categories() []string { return append([]string(nil), b.categories...) }

// Index returns the index of a category label.
func (b Band) Index(category string) (int, bool) {
	i, ok := b.index[category]
	return i, ok
}

// step returns the signed distance between consecutive band starts and the
// signed pixel position of band 0.
func (b Band) step() (step, start float64) {
	n := float64(len(b.categories))
	span := b.rng.Span()
	step = span / math.Max(1, n-b.paddingInner+2*b.paddingOuter)
	start = b.rng.Start + (span-step*(n-b.paddingInner))*b.align
	return step, start
}

// Step returns the (unsigned) distance between consecutive band starts.
func (b Band) Step() float64 {
	s, _ := b.step()
	return math.Abs(s)
}

// Bandwidth returns the width of a single band.
func (b Band) Bandwidth() float64 {
	return b.Step() * (1 - b.paddingInner)
}

// Forward returns the start pixel of the band at index v. ok is false when v
// is not an integral index in [0, n).
func (b Band) Forward(v float64) (float64, bool) {
	if math.IsNaN(v) || v != math.Trunc(v) || v < 0 || v >= float64(len(b.categories)) {
		return 0, false
	}
	step, start := b.step()
	a := start + step*v
	e := a + step*(1-b.paddingInner)
	return math.Min(a, e), true
}

// Center returns the pixel at the middle of the band at index i.
func (b Band) Center(i int) (float64, bool) {
	px, ok := b.Forward(float64(i))
	if !ok {
		return 0, false
	}
	return px + b.Bandwidth()/2, true
}

// ForwardCategory returns the start pixel of a category's band.
func (b Band) ForwardCategory(category string) (float64, bool) {
	i, ok := b.index[category]
	if !ok {
		return 0, false
	}
	return b.Forward(float64(i))
}

// IndexAt returns the index of the band containing px, or the nearest band
// when px falls into padding. ok is false for an empty scale.
func (b Band) IndexAt(px float64) (int, bool) {
	n := len(b.categories)
	if n == 0 {
		return 0, false
	}
	step, start := b.step()
	i := int(math.Floor((px - start) / step))
	return max(0, min(n-1, i)), true
}
