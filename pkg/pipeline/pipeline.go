// Package pipeline turns chart configurations into rendered artifacts.
//
// The pipeline has three stages that the CLI and the HTTP server share:
//
//  1. Build: lay out a [chart.Config] into a [frame.Frame] (ticks, stacks,
//     paths, gradient tables)
//  2. Render: draw a frame in one or more formats (SVG, PNG, PDF, JSON)
//  3. Animate: interpolate between two frames with the transition engine
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	f, err := runner.Build(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifacts, err := runner.Render(ctx, f, pipeline.Options{Formats: []string{"svg"}})
//	svg := artifacts["svg"]
//
// Build and Render results are cached through the runner's [cache.Cache];
// Animate output is not.
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/render/sink/styles"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

const (
	// DefaultStyle is the default visual style.
	DefaultStyle = styles.NameSimple

	// DefaultFPS is the frame rate of Animate.
	DefaultFPS = 60

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0

	// MaxFrames bounds the output of a single Animate call.
	MaxFrames = 3600
)

// Options configures rendering and animation.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Grid    bool     `json:"grid,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG pixel density

	// Animation options
	FPS        int              `json:"fps,omitempty"`
	Transition *transition.Spec `json:"transition,omitempty"` // Overrides the target frame's transition

	// Refresh skips cache reads.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates rendering options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	for _, f := range o.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	if _, err := styles.Lookup(o.Style); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// SetAnimateDefaults sets default values for animation.
func (o *Options) SetAnimateDefaults() {
	if o.FPS == 0 {
		o.FPS = DefaultFPS
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForAnimate sets defaults and validates animation options.
func (o *Options) ValidateForAnimate() error {
	o.SetAnimateDefaults()
	if o.FPS < 1 || o.FPS > 240 {
		return errors.New(errors.ErrCodeInvalidInput, "fps must be between 1 and 240, got %d", o.FPS)
	}
	if o.Transition != nil {
		return o.Transition.Validate()
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for rendering one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Grid:   o.Grid,
		Legend: o.Legend,
		Scale:  o.Scale,
	}
}
