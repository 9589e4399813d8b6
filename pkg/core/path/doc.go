// Package path builds and interpolates SVG path data.
//
// [Parse] reads the full SVG path grammar and flattens curves and arcs into
// polylines within [Tolerance] pixels. [Interpolate] morphs between two
// path strings that may differ in subpath and vertex counts; the endpoints
// t=0 and t=1 always return the inputs unchanged, so a finished animation
// lands exactly on its target.
//
// The builders produce the outlines the chart draws: [RoundedRect] for
// stacked bars and [Line] and [Area] for series paths, joined by a [Curve].
package path
