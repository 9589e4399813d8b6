// Package frame defines the serialization format of a laid out chart.
//
// A [Frame] is everything a renderer needs to draw one chart state: plot
// area, axis ticks, bar rectangles with their SVG paths, line and area
// paths, and gradient render tables. It is the canonical wire format for
// JSON output, API responses, caching, and animation frames.
//
// Frames are produced by pkg/pipeline and consumed by pkg/render/sink:
//
//	f, _ := runner.Build(ctx, cfg)
//	data, _ := frame.Marshal(f)       // Frame → []byte
//	parsed, _ := frame.Unmarshal(data) // []byte → Frame
//
// Animation frames carry a Progress in [0, 1]; a static frame has
// Progress 0 and omits it from JSON.
package frame
