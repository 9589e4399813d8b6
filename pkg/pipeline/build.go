package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/chart"
	"github.com/matzehuels/stackchart/pkg/core/gradient"
	"github.com/matzehuels/stackchart/pkg/core/path"
	"github.com/matzehuels/stackchart/pkg/core/scale"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/frame"
)

// Palette colours series that do not set their own colour, in series order.
var Palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// barFill is the share of a linear x step a bar occupies.
const barFill = 0.8

// BuildFrame lays out cfg. Problems limited to one element are returned as
// warnings and recorded on the frame.
func BuildFrame(cfg chart.Config) (*frame.Frame, []chart.Warning, error) {
	ctx, warnings, err := chart.Build(cfg)
	if err != nil {
		return nil, nil, err
	}
	warn := func(element string, err error) {
		warnings = append(warnings, chart.Warning{Element: element, Err: err})
	}

	f := &frame.Frame{
		ID:         frameID(cfg),
		Title:      ctx.Config.Title,
		Kind:       string(ctx.Config.Kind),
		Width:      ctx.Width,
		Height:     ctx.Height,
		Area:       ctx.Area,
		Categories: ctx.Categories,
		Transition: ctx.Config.Transition,
	}
	f.Axes = planAxes(ctx)

	colors := make(map[string]string, len(ctx.Series))
	fills := make(map[string]string, len(ctx.Series))
	for i, s := range ctx.Series {
		color := s.Color
		if color == "" {
			color = Palette[i%len(Palette)]
		}
		colors[s.ID] = color
		fills[s.ID] = color
		f.Legend = append(f.Legend, frame.Entry{SeriesID: s.ID, Color: color})
		if s.Gradient == nil {
			continue
		}
		g, err := resolveGradient(ctx, s)
		if err != nil {
			warn(fmt.Sprintf("gradient of series %q", s.ID), err)
			continue
		}
		f.Gradients = append(f.Gradients, g)
		fills[s.ID] = "url(#" + g.ID + ")"
	}

	switch ctx.Config.Kind {
	case chart.KindBar:
		f.Stacks = layoutStacks(ctx, fills)
	default:
		curve, err := path.ParseCurve(ctx.Config.Curve)
		if err != nil {
			warn("curve", err)
		}
		f.Paths = layoutPaths(ctx, colors, fills, curve)
	}

	for _, w := range warnings {
		f.Warnings = append(f.Warnings, w.Error())
	}
	return f, warnings, nil
}

// frameID derives a stable id from the configuration.
func frameID(cfg chart.Config) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return uuid.NewString()
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data).String()
}

// planAxes plans the ticks of every axis. The first x axis sits below the
// plot and the first y axis to its left; further axes alternate sides.
func planAxes(ctx *chart.Context) []frame.Axis {
	var out []frame.Axis
	for i, a := range ctx.XAxes() {
		if a.Scale == nil {
			continue
		}
		offset := ctx.Area.Bottom()
		if i%2 == 1 {
			offset = ctx.Area.Top()
		}
		out = append(out, planAxis(frame.OrientX, a, offset))
	}
	for i, a := range ctx.YAxes() {
		if a.Scale == nil {
			continue
		}
		offset := ctx.Area.X
		if i%2 == 1 {
			offset = ctx.Area.Right()
		}
		out = append(out, planAxis(frame.OrientY, a, offset))
	}
	return out
}

func planAxis(orient string, a chart.Axis, offset float64) frame.Axis {
	ticks := axis.Plan(a.Scale, a.Config.Constraints())
	if ticks == nil {
		ticks = []axis.Tick{}
	}
	return frame.Axis{
		ID:     a.Config.ID,
		Orient: orient,
		Scale:  a.Scale.Kind().String(),
		Label:  a.Config.Label,
		Offset: offset,
		Ticks:  ticks,
	}
}

// resolveGradient builds the render table of a series gradient in user
// space along the gradient's axis.
func resolveGradient(ctx *chart.Context, s series.Series) (frame.Gradient, error) {
	def := *s.Gradient
	var sc scale.Scale
	var ok bool
	if def.AxisOrDefault() == gradient.AxisX {
		sc, ok = ctx.XScale(s.XAxisID)
	} else {
		sc, ok = ctx.YScale(s.YAxisID)
	}
	if !ok || sc == nil {
		return frame.Gradient{}, errors.New(errors.ErrCodeNotFound, "no scale for gradient axis %q", def.AxisOrDefault())
	}
	table, err := gradient.Resolve(def, sc)
	if err != nil {
		return frame.Gradient{}, err
	}
	g := frame.Gradient{ID: "grad-" + s.ID, SeriesID: s.ID, Table: table}
	r := sc.Range()
	if def.AxisOrDefault() == gradient.AxisX {
		g.X1, g.X2 = r.Start, r.End
		g.Y1, g.Y2 = ctx.Area.Y, ctx.Area.Y
	} else {
		g.X1, g.X2 = ctx.Area.X, ctx.Area.X
		g.Y1, g.Y2 = r.Start, r.End
	}
	return g, nil
}

// slotOf returns the horizontal band of category i on an x scale.
func slotOf(xs scale.Scale, i, n int, area stack.Rect) (x, width float64, ok bool) {
	if b, isBand := xs.(scale.Band); isBand {
		px, ok := b.Forward(float64(i))
		return px, b.Bandwidth(), ok
	}
	c, ok := xs.Forward(float64(i))
	if !ok {
		return 0, 0, false
	}
	w := area.Width / float64(max(n, 1)) * barFill
	return c - w/2, w, true
}

// xPosition returns the pixel of data point i on an x scale.
func xPosition(xs scale.Scale, i int) (float64, bool) {
	if b, isBand := xs.(scale.Band); isBand {
		return b.Center(i)
	}
	return xs.Forward(float64(i))
}

// layoutStacks lays out one stack per group and category.
func layoutStacks(ctx *chart.Context, fills map[string]string) []frame.Stack {
	groups := stack.Groups(ctx.Series)
	if len(groups) == 0 {
		return nil
	}
	style := ctx.Config.Style

	// Each group is placed on the x axis of its first series.
	xScales := make([]scale.Scale, len(groups))
	for gi, g := range groups {
		if members := g.Select(ctx.Series); len(members) > 0 {
			xScales[gi], _ = ctx.XScale(members[0].XAxisID)
		}
	}

	var out []frame.Stack
	for i := 0; i < ctx.Len(); i++ {
		for gi, g := range groups {
			xs := xScales[gi]
			if xs == nil {
				continue
			}
			x, w, ok := slotOf(xs, i, ctx.Len(), ctx.Area)
			if !ok {
				continue
			}
			ys, ok := ctx.YScale(g.YAxisID)
			if !ok || ys == nil {
				continue
			}
			sl := stack.Slots(x, w, len(groups), ctx.Config.GroupGap)[gi]
			geom := stack.Geometry{X: sl.X, Width: sl.Width, YScale: ys, Area: ctx.Area}
			res := stack.Layout(g.Select(ctx.Series), i, geom, style)
			if len(res.Bars) == 0 {
				continue
			}
			st := frame.Stack{
				Index:    i,
				Category: ctx.Categories[i],
				StackID:  g.StackID,
				YAxisID:  g.YAxisID,
				Bounds:   res.Bounds,
				Baseline: res.Baseline,
				Bars:     make([]frame.Bar, len(res.Bars)),
			}
			for bi, b := range res.Bars {
				st.Bars[bi] = frame.Bar{
					SeriesID:    b.SeriesID,
					Rect:        b.Rect,
					Path:        path.RoundedRect(b.Rect, b.Radius, b.RoundTop, b.RoundBottom),
					Fill:        fills[b.SeriesID],
					Side:        b.Side.String(),
					RoundTop:    b.RoundTop,
					RoundBottom: b.RoundBottom,
					Radius:      b.Radius,
					Value:       b.Value,
				}
			}
			out = append(out, st)
		}
	}
	return out
}

// layoutPaths draws one line or area per series. Gaps split the mark into
// separate subpaths. Area series sharing a stack accumulate per side.
func layoutPaths(ctx *chart.Context, colors, fills map[string]string, curve path.Curve) []frame.Path {
	area := ctx.Config.Kind == chart.KindArea
	n := ctx.Len()
	out := make([]frame.Path, 0, len(ctx.Series))
	for _, g := range stack.Groups(ctx.Series) {
		ys, ok := ctx.YScale(g.YAxisID)
		if !ok || ys == nil {
			continue
		}
		base := stack.Baseline(ys.Domain())
		pos := make([]float64, n)
		neg := make([]float64, n)
		for _, s := range g.Select(ctx.Series) {
			xs, ok := ctx.XScale(s.XAxisID)
			if !ok || xs == nil {
				continue
			}
			var d string
			var top, bottom []path.Point
			flush := func() {
				if len(top) == 0 {
					return
				}
				if area {
					d += path.Area(top, bottom, curve)
				} else {
					d += path.Line(top, curve)
				}
				top, bottom = nil, nil
			}
			for i := 0; i < n; i++ {
				lo, hi, ok := span(s, i, area && g.StackID != "", base, pos, neg)
				px, okx := xPosition(xs, i)
				ylo, oklo := ys.Forward(lo)
				yhi, okhi := ys.Forward(hi)
				if !ok || !okx || !oklo || !okhi {
					flush()
					continue
				}
				top = append(top, path.Point{X: px, Y: yhi})
				bottom = append(bottom, path.Point{X: px, Y: ylo})
			}
			flush()

			p := frame.Path{SeriesID: s.ID, Kind: frame.PathLine, D: d, Stroke: colors[s.ID]}
			if area {
				p.Kind = frame.PathArea
				p.Fill = fills[s.ID]
			}
			out = append(out, p)
		}
	}
	return out
}

// span returns the data interval a series covers at index i. Stacked
// scalars accumulate per side from zero; unstacked scalars grow from the
// baseline; ranges are literal. The line of a range follows its upper end.
func span(s series.Series, i int, stacked bool, base float64, pos, neg []float64) (lo, hi float64, ok bool) {
	v := s.At(i)
	if r0, r1, isRange := v.Range(); isRange {
		return r0, r1, true
	}
	x, isScalar := v.Scalar()
	if !isScalar {
		return 0, 0, false
	}
	if !stacked {
		return base, x, true
	}
	if x >= 0 {
		lo, hi = pos[i], pos[i]+x
		pos[i] = hi
	} else {
		lo, hi = neg[i], neg[i]+x
		neg[i] = hi
	}
	return lo, hi, true
}
