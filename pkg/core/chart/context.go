package chart

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/errors"
)

// Warning is a non-fatal problem with one chart element.
type Warning = errors.Warning

// Axis is a configured axis and the scale built for it.
type Axis struct {
	Config AxisConfig
	Scale  scale.Scale
}

// Context is the read-only state of one render pass. Every layout function
// receives it instead of reaching for global state.
type Context struct {
	Config     Config
	Width      float64
	Height     float64
	Area       stack.Rect
	Series     []series.Series
	Categories []string

	xAxes []Axis
	yAxes []Axis
}

// XAxes returns the x axes in configuration order.
func (c *Context) XAxes() []Axis { return c.xAxes }

// YAxes returns the y axes in configuration order.
func (c *Context) YAxes() []Axis { return c.yAxes }

// XScale returns the scale of the x axis with the given id. The empty id
// selects the first axis.
func (c *Context) XScale(id string) (scale.Scale, bool) {
	if i := axisIndex(c.xAxes, id); i >= 0 {
		return c.xAxes[i].Scale, true
	}
	return nil, false
}

// YScale returns the scale of the y axis with the given id. The empty id
// selects the first axis.
func (c *Context) YScale(id string) (scale.Scale, bool) {
	if i := axisIndex(c.yAxes, id); i >= 0 {
		return c.yAxes[i].Scale, true
	}
	return nil, false
}

// SeriesByID returns the ingested series with the given id.
func (c *Context) SeriesByID(id string) (series.Series, bool) {
	for _, s := range c.Series {
		if s.ID == id {
			return s, true
		}
	}
	return series.Series{}, false
}

// Len returns the number of data points along the x axis.
func (c *Context) Len() int { return len(c.Categories) }

func axisIndex(axes []Axis, id string) int {
	if id == "" && len(axes) > 0 {
		return 0
	}
	for i, a := range axes {
		if a.Config.ID == id {
			return i
		}
	}
	return -1
}

// Build validates cfg and derives the context of a render pass. Malformed
// series and unusable axis settings are reported as warnings and skipped;
// only a config that cannot produce any chart returns an error.
func Build(cfg Config) (*Context, []Warning, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	p := cfg.Padding
	ctx := &Context{
		Config: cfg,
		Width:  cfg.Width,
		Height: cfg.Height,
		Area: stack.Rect{
			X:      p.Left,
			Y:      p.Top,
			Width:  cfg.Width - p.Left - p.Right,
			Height: cfg.Height - p.Top - p.Bottom,
		},
	}

	xcfg := cfg.XAxes
	if len(xcfg) == 0 {
		xcfg = []AxisConfig{{}}
	}
	ycfg := cfg.YAxes
	if len(ycfg) == 0 {
		ycfg = []AxisConfig{{}}
	}

	var warnings []Warning
	warn := func(element string, err error) {
		warnings = append(warnings, Warning{Element: element, Err: err})
	}

	seen := map[string]bool{}
	for i, raw := range cfg.Series {
		element := fmt.Sprintf("series[%d]", i)
		if raw.ID != "" {
			element = fmt.Sprintf("series %q", raw.ID)
		}
		s, err := series.Ingest(raw)
		if err != nil {
			warn(element, err)
			continue
		}
		if seen[s.ID] {
			warn(element, errors.New(errors.ErrCodeInvalidSeries, "duplicate series id"))
			continue
		}
		if !hasAxis(xcfg, s.XAxisID) {
			warn(element, errors.New(errors.ErrCodeNotFound, "unknown x axis %q", s.XAxisID))
			continue
		}
		if !hasAxis(ycfg, s.YAxisID) {
			warn(element, errors.New(errors.ErrCodeNotFound, "unknown y axis %q", s.YAxisID))
			continue
		}
		seen[s.ID] = true
		ctx.Series = append(ctx.Series, s)
	}

	for i, a := range xcfg {
		sc, cats, err := ctx.buildX(a, i == 0)
		if err != nil {
			warn(axisElement("x", a), err)
		}
		if i == 0 {
			ctx.Categories = cats
		}
		ctx.xAxes = append(ctx.xAxes, Axis{Config: a, Scale: sc})
	}
	for i, a := range ycfg {
		sc, err := ctx.buildY(a, i == 0)
		if err != nil {
			warn(axisElement("y", a), err)
		}
		ctx.yAxes = append(ctx.yAxes, Axis{Config: a, Scale: sc})
	}
	return ctx, warnings, nil
}

func hasAxis(axes []AxisConfig, id string) bool {
	if id == "" {
		return true
	}
	for _, a := range axes {
		if a.ID == id {
			return true
		}
	}
	return false
}

func axisElement(orient string, a AxisConfig) string {
	if a.ID == "" {
		return orient + " axis"
	}
	return fmt.Sprintf("%s axis %q", orient, a.ID)
}

// onAxis returns the series attached to an axis.
func onAxis(ss []series.Series, a AxisConfig, first bool, id func(series.Series) string) []series.Series {
	var out []series.Series
	for _, s := range ss {
		sid := id(s)
		if sid == a.ID || (sid == "" && first) {
			out = append(out, s)
		}
	}
	return out
}

// buildX returns a band scale over the categories, or a linear scale over
// the point indices. A failing setting falls back to the band scale and is
// returned as error.
func (c *Context) buildX(a AxisConfig, first bool) (scale.Scale, []string, error) {
	ss := onAxis(c.Series, a, first, func(s series.Series) string { return s.XAxisID })
	cats := a.Categories
	if len(cats) == 0 && first {
		cats = c.Config.Categories
	}
	n := max(len(cats), series.MaxLen(ss))
	labels := make([]string, n)
	for i := range labels {
		if i < len(cats) {
			labels[i] = cats[i]
		} else {
			labels[i] = strconv.Itoa(i)
		}
	}
	r := scale.Range{Start: c.Area.X, End: c.Area.Right()}

	var fallbackErr error
	switch kind, ok := scale.ParseKind(a.Scale); {
	case a.Scale == "" || (ok && kind == scale.KindBand):
	case ok && kind == scale.KindLinear:
		d := scale.Domain{Min: 0, Max: float64(max(n-1, 1))}
		sc, err := scale.NewLinear(d, r)
		if err == nil {
			return sc, labels, nil
		}
		fallbackErr = err
	default:
		fallbackErr = errors.New(errors.ErrCodeInvalidScale, "x axis supports band and linear scales, got %q", a.Scale)
	}

	opts := []scale.BandOption{scale.WithPaddingInner(a.PaddingInner), scale.WithPaddingOuter(a.PaddingOuter)}
	if a.PaddingInner == 0 && a.PaddingOuter == 0 && c.Config.Kind == KindBar {
		opts = []scale.BandOption{scale.WithPaddingInner(0.2), scale.WithPaddingOuter(0.1)}
	}
	band, err := scale.NewBand(labels, r, opts...)
	if err != nil {
		return nil, labels, err
	}
	return band, labels, fallbackErr
}

// buildY derives the domain of a y axis and builds its scale. A log scale
// that cannot hold the domain falls back to linear and returns the reason.
func (c *Context) buildY(a AxisConfig, first bool) (scale.Scale, error) {
	ss := onAxis(c.Series, a, first, func(s series.Series) string { return s.YAxisID })
	kind := scale.KindLinear
	var warnErr error
	if a.Scale != "" {
		k, ok := scale.ParseKind(a.Scale)
		switch {
		case !ok || k == scale.KindBand:
			warnErr = errors.New(errors.ErrCodeInvalidScale, "y axis supports linear and log scales, got %q", a.Scale)
		default:
			kind = k
		}
	}

	d, ok := series.Extent(ss, c.Config.Kind != KindLine)
	if !ok {
		d = scale.Domain{Min: 0, Max: 1}
		if kind == scale.KindLog {
			d = scale.Domain{Min: 1, Max: 10}
		}
	}
	if c.Config.Kind == KindBar && kind == scale.KindLinear {
		d = d.Include(0)
	}
	if a.Min != nil {
		d.Min = *a.Min
	}
	if a.Max != nil {
		d.Max = *a.Max
	}
	if d.Min > d.Max {
		warnErr = errors.New(errors.ErrCodeInvalidConfig, "min %g is greater than max %g", d.Min, d.Max)
		d.Min, d.Max = d.Max, d.Min
	}
	if d.Min == d.Max {
		d = widen(d, kind, a.Base)
	}
	r := scale.Range{Start: c.Area.Bottom(), End: c.Area.Top()}

	if kind == scale.KindLog {
		sc, err := scale.NewLog(d, r, a.Base)
		if err == nil {
			return sc, warnErr
		}
		warnErr = errors.Wrap(errors.ErrCodeInvalidScale, err, "falling back to a linear scale")
		if c.Config.Kind == KindBar {
			d = d.Include(0)
		}
	}
	if a.Nice {
		count := a.TickCount
		if count <= 0 {
			count = axis.DefaultCount
		}
		d = axis.NiceDomain(d, count)
	}
	sc, err := scale.NewLinear(d, r)
	if err != nil {
		return nil, err
	}
	return sc, warnErr
}

// widen turns a single value into a usable domain.
func widen(d scale.Domain, kind scale.Kind, base float64) scale.Domain {
	v := d.Min
	if kind == scale.KindLog && v != 0 {
		if base == 0 {
			base = scale.DefaultLogBase
		}
		lo, hi := v/base, v*base
		return scale.Domain{Min: math.Min(lo, hi), Max: math.Max(lo, hi)}
	}
	if v == 0 {
		return scale.Domain{Min: 0, Max: 1}
	}
	return scale.Domain{Min: v - math.Abs(v), Max: v + math.Abs(v)}
}
