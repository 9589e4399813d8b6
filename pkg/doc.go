// Package pkg provides the libraries behind Stackchart, a renderer-agnostic
// charting core for stacked bar, line and area charts.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [core] - Chart math (scales, ticks, gradients, stack layout, paths,
//     transitions, scrubbing)
//  2. [frame] - The laid out, serializable state of one chart
//  3. [pipeline] - Orchestration (build → render → animate)
//  4. Infrastructure - [cache], [observability], [io], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow through Stackchart:
//
//	Chart config (TOML, YAML or JSON)
//	         ↓
//	    [core/chart] package (series, axes and scales)
//	         ↓
//	    [core/axis], [core/stack], [core/path], [core/gradient]
//	         ↓
//	    [frame] package (ticks, bars, paths, gradient tables)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON)
//
// Two frames can be interpolated with [core/transition] through
// [pipeline.Runner.Animate], producing one frame per animation step.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/stackchart/pkg/io"
//	    "github.com/matzehuels/stackchart/pkg/pipeline"
//	)
//
//	cfg, _ := io.ReadConfig("sales.toml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	f, _ := runner.Build(context.Background(), cfg)
//	artifacts, _ := runner.Render(context.Background(), f, pipeline.Options{})
//	svg := artifacts["svg"]
//
// # Main Packages
//
// ## Core
//
// [core/scale] - Linear, log and band scales with forward and inverse
// mapping. Lookups outside the domain report ok=false instead of failing.
//
// [core/axis] - Tick planning under count, interval, step and explicit tick
// constraints, with d3-style nice steps.
//
// [core/gradient] - Data-space gradient stops resolved against a scale into
// render tables of positions, colours and opacities.
//
// [core/stack] - Stacked bar layout: per-side accumulation from zero,
// minimum bar and stack sizes, gaps and rounded ends.
//
// [core/path] - SVG path construction (lines, areas, rounded rectangles) and
// shape interpolation between arbitrary paths.
//
// [core/transition] - Timing and spring transitions driving typed animated
// properties.
//
// [core/scrub] - Nearest data index for a pointer position.
//
// ## Surfaces
//
// [render/sink] - SVG, JSON, PNG and PDF output of a [frame.Frame].
//
// [cache] - Null, memory, file, Redis and MongoDB caches for frames and
// rendered artifacts.
//
// [core]: github.com/matzehuels/stackchart/pkg/core
// [core/chart]: github.com/matzehuels/stackchart/pkg/core/chart
// [core/axis]: github.com/matzehuels/stackchart/pkg/core/axis
// [core/scale]: github.com/matzehuels/stackchart/pkg/core/scale
// [core/gradient]: github.com/matzehuels/stackchart/pkg/core/gradient
// [core/stack]: github.com/matzehuels/stackchart/pkg/core/stack
// [core/path]: github.com/matzehuels/stackchart/pkg/core/path
// [core/transition]: github.com/matzehuels/stackchart/pkg/core/transition
// [core/scrub]: github.com/matzehuels/stackchart/pkg/core/scrub
// [frame]: github.com/matzehuels/stackchart/pkg/frame
// [pipeline]: github.com/matzehuels/stackchart/pkg/pipeline
// [pipeline.Runner.Animate]: github.com/matzehuels/stackchart/pkg/pipeline.Runner.Animate
// [frame.Frame]: github.com/matzehuels/stackchart/pkg/frame.Frame
// [render/sink]: github.com/matzehuels/stackchart/pkg/render/sink
// [cache]: github.com/matzehuels/stackchart/pkg/cache
// [observability]: github.com/matzehuels/stackchart/pkg/observability
// [io]: github.com/matzehuels/stackchart/pkg/io
// [errors]: github.com/matzehuels/stackchart/pkg/errors
// [buildinfo]: github.com/matzehuels/stackchart/pkg/buildinfo
package pkg
