package series

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Kind discriminates the [Value] union.
type Kind uint8

const (
	KindGap Kind = iota
	KindScalar
	KindRange
)

func (k Kind) String() string {
	switch k {
	case KindGap:
		return "gap"
	case KindScalar:
		return "scalar"
	case KindRange:
		return "range"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a single data point: a gap, a scalar, or a pre-stacked [lo, hi]
// range. The zero Value is a gap.
type Value struct {
	kind   Kind
	lo, hi float64
}

// Gap returns a missing value.
func Gap() Value { return Value{} }

// Scalar returns a scalar value. NaN becomes a gap.
func Scalar(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: KindScalar, hi: v}
}

// Range returns a pre-stacked range. The bounds are swapped when lo > hi; a
// NaN bound yields a gap.
func Range(lo, hi float64) Value {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Value{}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return Value{kind: KindRange, lo: lo, hi: hi}
}

// Kind returns the variant.
func (v Value) Kind() Kind { return v.kind }

// IsGap reports whether the value is missing.
func (v Value) IsGap() bool { return v.kind == KindGap }

// Scalar returns the scalar value.
func (v Value) Scalar() (float64, bool) {
	return v.hi, v.kind == KindScalar
}

// Range returns the range bounds.
func (v Value) Range() (lo, hi float64, ok bool) {
	return v.lo, v.hi, v.kind == KindRange
}

// Span returns the data interval covered by the value: [lo, hi] for ranges
// and [baseline, v] (ordered) for scalars. ok is false for gaps.
func (v Value) Span(baseline float64) (lo, hi float64, ok bool) {
	switch v.kind {
	case KindScalar:
		return math.Min(baseline, v.hi), math.Max(baseline, v.hi), true
	case KindRange:
		return v.lo, v.hi, true
	}
	return 0, 0, false
}

// Magnitude returns the scalar value or the range midpoint. Gaps return 0.
func (v Value) Magnitude() float64 {
	switch v.kind {
	case KindScalar:
		return v.hi
	case KindRange:
		return (v.lo + v.hi) / 2
	}
	return 0
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return strconv.FormatFloat(v.hi, 'g', -1, 64)
	case KindRange:
		return fmt.Sprintf("[%g, %g]", v.lo, v.hi)
	}
	return "null"
}

// MarshalJSON encodes gaps as null, scalars as numbers and ranges as
// two-element arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.hi)
	case KindRange:
		return json.Marshal([2]float64{v.lo, v.hi})
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes the encoding produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = Gap()
		return nil
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseValue converts a loosely typed data point as produced by JSON, TOML or
// YAML decoders. Accepted forms: nil, "null", "", NaN (gaps); any Go number
// or numeric string (scalars); two-element arrays of numbers (ranges).
func ParseValue(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Gap(), nil
	case Value:
		return t, nil
	case [2]float64:
		return checkedRange(t[0], t[1])
	case []float64:
		if len(t) != 2 {
			return Value{}, errors.New(errors.ErrCodeInvalidSeries, "range must have 2 elements, got %d", len(t))
		}
		return checkedRange(t[0], t[1])
	case []any:
		if len(t) != 2 {
			return Value{}, errors.New(errors.ErrCodeInvalidSeries, "range must have 2 elements, got %d", len(t))
		}
		lo, err := number(t[0])
		if err != nil {
			return Value{}, err
		}
		hi, err := number(t[1])
		if err != nil {
			return Value{}, err
		}
		return checkedRange(lo, hi)
	case string:
		s := strings.TrimSpace(t)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan") {
			return Gap(), nil
		}
	}
	f, err := number(x)
	if err != nil {
		return Value{}, err
	}
	if math.IsInf(f, 0) {
		return Value{}, errors.New(errors.ErrCodeInvalidSeries, "value is infinite")
	}
	return Scalar(f), nil
}

func checkedRange(lo, hi float64) (Value, error) {
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return Value{}, errors.New(errors.ErrCodeInvalidSeries, "range bound is infinite")
	}
	return Range(lo, hi), nil
}

func number(x any) (float64, error) {
	switch n := x.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidSeries, err, "invalid number %q", n.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidSeries, err, "invalid number %q", n)
		}
		return f, nil
	case nil:
		return 0, errors.New(errors.ErrCodeInvalidSeries, "range bound is null")
	}
	return 0, errors.New(errors.ErrCodeInvalidSeries, "unsupported value type %T", x)
}
