// Package scale maps data values to pixel positions.
//
// # Overview
//
// A [Scale] is an immutable snapshot built once per render pass from a data
// domain and a pixel range. Three variants are provided:
//
//   - [Linear]: continuous linear mapping with extrapolation outside the domain
//   - [Log]: continuous logarithmic mapping for strictly positive (or strictly
//     negative) domains
//   - [Band]: categorical mapping that divides the range into equal bands
//
// # Forward Mapping
//
// Every scale implements Forward(v) (px, ok). The ok flag is false for domain
// errors: an index outside a band scale, or a non-positive value on a
// positive log scale. Callers skip the element rather than failing the chart:
//
//	y, _ := scale.NewLinear(scale.Domain{Min: 0, Max: 100}, scale.Range{Start: 300, End: 0})
//	px, ok := y.Forward(50) // 150, true
//
// Continuous scales never clamp, so partially visible bars and lines keep
// their correct positions:
//
//	px, _ = y.Forward(150) // -150
//
// # Construction
//
// The New* factories validate their input and return errors coded
// [errors.ErrCodeInvalidScale] for a zero-span range, a degenerate domain, or a
// log domain that touches zero. Scales are never mutated after construction;
// build a new one when the data changes.
//
// [errors.ErrCodeInvalidScale]: github.com/matzehuels/stackchart/pkg/errors
package scale
