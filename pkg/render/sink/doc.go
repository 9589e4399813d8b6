// Package sink draws laid out frames.
//
// [RenderSVG] is the primary output. Elements are written in a fixed order
// so that later ones paint over earlier ones:
//
//  1. gradient definitions (one linearGradient per gradient series)
//  2. background and optional grid
//  3. title
//  4. line and area marks
//  5. bars
//  6. axes with ticks and labels
//  7. optional legend
//
// Visual appearance comes from a [styles.Style]; the default is
// [styles.Simple] with the light palette.
//
// [RenderPNG] and [RenderPDF] convert the SVG with rsvg-convert.
// [RenderJSON] emits the frame itself.
//
// # Usage
//
//	svg := sink.RenderSVG(f, sink.WithGrid(), sink.WithLegend())
//	png, err := sink.RenderPNG(ctx, f, sink.WithScale(2), sink.WithPNGSVGOptions(sink.WithGrid()))
package sink
