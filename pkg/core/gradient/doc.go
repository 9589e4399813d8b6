// Package gradient resolves data-space colour gradients.
//
// A [Definition] lists [Stop] values whose offsets are data values on the x or
// y scale. Stops may also be computed from the current domain through
// Definition.StopsFunc, which lets a gradient follow a changing data extent.
//
// # Render Tables
//
// [Resolve] converts stops into a [RenderTable] with scale-relative positions
// in [0, 1], ready for native gradient primitives such as SVG
// linearGradient. Offsets outside the domain are clamped.
//
// # Point Evaluation
//
// [EvaluateAt] computes the colour at a single data value. Repeating an offset
// creates a hard transition: the value at that exact offset takes the last
// colour listed there. Between stops the result is a [Color] blend that
// renders either as a CSS color-mix expression or as an RGB lerp:
//
//	def := gradient.Definition{Stops: []gradient.Stop{
//	    {Offset: 0, Color: "red"},
//	    {Offset: 100, Color: "green"},
//	}}
//	c, _ := gradient.EvaluateAt(def, 50, y)
//	c.Mix() // color-mix(in srgb, red 50%, green 50%)
//	c.RGB() // #804000
//
// Stop offsets that decrease are a configuration error coded
// INVALID_GRADIENT. Callers report a warning and skip the gradient.
package gradient
