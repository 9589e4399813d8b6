package chart

import (
	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Kind is the mark a chart draws for its series.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindArea Kind = "area"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 400
)

// DefaultPadding leaves room for axis labels on the left and bottom.
var DefaultPadding = Padding{Top: 20, Right: 20, Bottom: 40, Left: 56}

// Padding is the space between the canvas edge and the plot area.
type Padding struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// AxisConfig declares one axis. Unset bounds are derived from the data.
type AxisConfig struct {
	ID    string `json:"id,omitempty" toml:"id" yaml:"id,omitempty"`
	Scale string `json:"scale,omitempty" toml:"scale" yaml:"scale,omitempty"` // linear, log or band
	Label string `json:"label,omitempty" toml:"label" yaml:"label,omitempty"`

	Min  *float64 `json:"min,omitempty" toml:"min" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" toml:"max" yaml:"max,omitempty"`
	Base float64  `json:"base,omitempty" toml:"base" yaml:"base,omitempty"` // Log base

	Categories   []string `json:"categories,omitempty" toml:"categories" yaml:"categories,omitempty"`
	PaddingInner float64  `json:"padding_inner,omitempty" toml:"padding_inner" yaml:"padding_inner,omitempty"`
	PaddingOuter float64  `json:"padding_outer,omitempty" toml:"padding_outer" yaml:"padding_outer,omitempty"`

	Ticks        []float64 `json:"ticks,omitempty" toml:"ticks" yaml:"ticks,omitempty"`
	TickCount    int       `json:"tick_count,omitempty" toml:"tick_count" yaml:"tick_count,omitempty"`
	TickInterval float64   `json:"tick_interval,omitempty" toml:"tick_interval" yaml:"tick_interval,omitempty"`
	MinStep      float64   `json:"min_step,omitempty" toml:"min_step" yaml:"min_step,omitempty"`
	MaxStep      float64   `json:"max_step,omitempty" toml:"max_step" yaml:"max_step,omitempty"`
	Nice         bool      `json:"nice,omitempty" toml:"nice" yaml:"nice,omitempty"`
}

// Constraints returns the tick constraints declared on the axis.
func (a AxisConfig) Constraints() axis.Constraints {
	return axis.Constraints{
		Ticks:    a.Ticks,
		Count:    a.TickCount,
		Interval: a.TickInterval,
		MinStep:  a.MinStep,
		MaxStep:  a.MaxStep,
		Nice:     a.Nice,
	}
}

// Config is a declarative chart.
type Config struct {
	Title   string  `json:"title,omitempty" toml:"title" yaml:"title,omitempty"`
	Kind    Kind    `json:"kind,omitempty" toml:"kind" yaml:"kind,omitempty"`
	Width   float64 `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height  float64 `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	Padding *Padding `json:"padding,omitempty" toml:"padding" yaml:"padding,omitempty"`

	// Categories labels the x band; it is shorthand for the categories of
	// the first x axis.
	Categories []string `json:"categories,omitempty" toml:"categories" yaml:"categories,omitempty"`

	XAxes []AxisConfig `json:"x_axes,omitempty" toml:"x_axes" yaml:"x_axes,omitempty"`
	YAxes []AxisConfig `json:"y_axes,omitempty" toml:"y_axes" yaml:"y_axes,omitempty"`

	Series []series.Raw `json:"series" toml:"series" yaml:"series"`

	Style stack.Style `json:"style" toml:"style" yaml:"style"`
	// GroupGap separates stack groups sharing a category, in pixels.
	GroupGap float64 `json:"group_gap,omitempty" toml:"group_gap" yaml:"group_gap,omitempty"`
	// Curve joins line and area points: linear, step or monotone.
	Curve string `json:"curve,omitempty" toml:"curve" yaml:"curve,omitempty"`

	Transition transition.Spec `json:"transition" toml:"transition" yaml:"transition"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Kind == "" {
		c.Kind = KindBar
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Padding == nil {
		p := DefaultPadding
		c.Padding = &p
	}
}

// Validate checks the fields that make a chart impossible to build.
func (c *Config) Validate() error {
	switch c.Kind {
	case KindBar, KindLine, KindArea:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown chart kind %q (want bar, line or area)", c.Kind)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "size must be positive, got %gx%g", c.Width, c.Height)
	}
	p := c.Padding
	if c.Width-p.Left-p.Right <= 0 || c.Height-p.Top-p.Bottom <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding leaves no plot area")
	}
	for _, axes := range [][]AxisConfig{c.XAxes, c.YAxes} {
		seen := map[string]bool{}
		for _, a := range axes {
			if err := errors.ValidateAxisID(a.ID); err != nil {
				return err
			}
			if seen[a.ID] {
				return errors.New(errors.ErrCodeInvalidConfig, "duplicate axis id %q", a.ID)
			}
			seen[a.ID] = true
		}
	}
	if c.Style.BarMinSize < 0 || c.Style.StackMinSize < 0 || c.Style.StackGap < 0 || c.Style.BorderRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "style sizes must be non-negative")
	}
	return c.Transition.Validate()
}
