// Package axis plans readable tick sets for scales.
//
// # Planning
//
// [Plan] turns a [scale.Scale] and a set of [Constraints] into an ordered list
// of [Tick] values with pixel positions and labels. Candidates are chosen in
// this order of precedence:
//
//  1. Explicit tick values (Constraints.Ticks) are used as given.
//  2. A predicate (Constraints.Filter) selects from every category index of a
//     band scale, or from the default candidates of a continuous scale.
//  3. Otherwise a nice step (1, 2 or 5 × 10^k) is derived from the domain
//     span and the requested count, clamped to MinStep and MaxStep.
//
// Band scales place one tick at the centre of each band. Log scales place
// ticks at powers of the base. A zero-span domain yields a single tick.
//
// # Example
//
//	y, _ := scale.NewLinear(scale.Domain{Min: 0, Max: 97}, scale.Range{Start: 300, End: 0})
//	ticks := axis.Plan(y, axis.Constraints{Count: 5})
//	// 0, 20, 40, 60, 80
package axis
