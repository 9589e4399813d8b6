// Package styles provides visual styles for chart rendering.
//
// A [Style] writes SVG for the primitives the sink lays out: bars, line and
// area marks, axes, grid lines, text and legend swatches. Styles never
// position anything themselves.
//
// Two styles ship: [NameSimple] (dark ink on white) and [NameDark]. Both
// are [Simple] with a different [Palette]:
//
//	style, err := styles.Lookup("dark")
//	svg := sink.RenderSVG(f, sink.WithStyle(style))
package styles
