// Package render converts rendered charts between output formats.
//
// Chart drawing lives in the [sink] subpackage, which turns a laid out
// frame into SVG or JSON. This package converts that SVG into raster and
// print formats with the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(f)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [sink]: github.com/matzehuels/stackchart/pkg/render/sink
package render
