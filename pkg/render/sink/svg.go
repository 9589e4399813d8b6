package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/render/sink/styles"
)

const (
	titleSize   = 14.0
	legendRow   = 16.0
	legendWidth = 110.0
	swatchSize  = 10.0
	axisLabelAt = 32.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style  styles.Style
	grid   bool
	legend bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithGrid() SVGOption                { return func(r *svgRenderer) { r.grid = true } }
func WithLegend() SVGOption              { return func(r *svgRenderer) { r.legend = true } }

// RenderSVG draws a frame. Marks are drawn below bars and axes above both.
func RenderSVG(f *frame.Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)

	buf.WriteString("<defs>\n")
	r.style.RenderDefs(&buf)
	renderGradients(&buf, f.Gradients)
	buf.WriteString("</defs>\n")

	r.style.RenderBackground(&buf, f.Width, f.Height)
	if r.grid {
		renderGrid(&buf, r.style, f)
	}
	if f.Title != "" {
		r.style.RenderText(&buf, styles.Text{
			X: f.Width / 2, Y: math.Max(titleSize, f.Area.Y/2+titleSize/3),
			Content: f.Title, Anchor: "middle", Size: titleSize, Class: "title",
		})
	}
	for _, p := range f.Paths {
		r.style.RenderMark(&buf, styles.Mark{
			SeriesID: p.SeriesID,
			Area:     p.Kind == frame.PathArea,
			D:        p.D,
			Stroke:   p.Stroke,
			Fill:     p.Fill,
		})
	}
	for _, s := range f.Stacks {
		for _, b := range s.Bars {
			r.style.RenderBar(&buf, styles.Bar{SeriesID: b.SeriesID, Path: b.Path, Fill: b.Fill})
		}
	}
	for _, a := range f.Axes {
		renderAxis(&buf, r.style, f, a)
	}
	if r.legend {
		renderLegend(&buf, r.style, f)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Simple{Palette: styles.Light}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderGradients(buf *bytes.Buffer, gs []frame.Gradient) {
	for _, g := range gs {
		fmt.Fprintf(buf, `  <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">`+"\n",
			styles.EscapeXML(g.ID), g.X1, g.Y1, g.X2, g.Y2)
		for i := range g.Table.Positions {
			fmt.Fprintf(buf, `    <stop offset="%.4f" stop-color="%s" stop-opacity="%.2f"/>`+"\n",
				g.Table.Positions[i], styles.EscapeXML(g.Table.Colors[i]), g.Table.Opacities[i])
		}
		buf.WriteString("  </linearGradient>\n")
	}
}

// renderGrid draws a line across the plot at every tick of the first axis
// of each orientation.
func renderGrid(buf *bytes.Buffer, style styles.Style, f *frame.Frame) {
	var xDone, yDone bool
	for _, a := range f.Axes {
		switch {
		case a.Orient == frame.OrientX && !xDone:
			xDone = true
			for _, t := range a.Ticks {
				style.RenderGridLine(buf, styles.Line{X1: t.Position, Y1: f.Area.Top(), X2: t.Position, Y2: f.Area.Bottom()})
			}
		case a.Orient == frame.OrientY && !yDone:
			yDone = true
			for _, t := range a.Ticks {
				style.RenderGridLine(buf, styles.Line{X1: f.Area.X, Y1: t.Position, X2: f.Area.Right(), Y2: t.Position})
			}
		}
	}
}

// axisSide places an axis relative to the plot from its offset.
func axisSide(f *frame.Frame, a frame.Axis) styles.Side {
	mid := f.Area.Y + f.Area.Height/2
	if a.Orient == frame.OrientX {
		if a.Offset < mid {
			return styles.SideTop
		}
		return styles.SideBottom
	}
	if a.Offset > f.Area.X+f.Area.Width/2 {
		return styles.SideRight
	}
	return styles.SideLeft
}

func renderAxis(buf *bytes.Buffer, style styles.Style, f *frame.Frame, a frame.Axis) {
	sa := styles.Axis{Side: axisSide(f, a), Label: a.Label}
	var label styles.Text
	if a.Orient == frame.OrientX {
		sa.Line = styles.Line{X1: f.Area.X, Y1: a.Offset, X2: f.Area.Right(), Y2: a.Offset}
		for _, t := range a.Ticks {
			sa.Ticks = append(sa.Ticks, styles.Tick{X: t.Position, Y: a.Offset, Label: t.Label})
		}
		dy := axisLabelAt
		if sa.Side == styles.SideTop {
			dy = -axisLabelAt + 8
		}
		label = styles.Text{X: f.Area.X + f.Area.Width/2, Y: a.Offset + dy, Anchor: "middle"}
	} else {
		sa.Line = styles.Line{X1: a.Offset, Y1: f.Area.Top(), X2: a.Offset, Y2: f.Area.Bottom()}
		for _, t := range a.Ticks {
			sa.Ticks = append(sa.Ticks, styles.Tick{X: a.Offset, Y: t.Position, Label: t.Label})
		}
		label = styles.Text{X: a.Offset, Y: f.Area.Top() - 8, Anchor: "middle"}
	}
	style.RenderAxis(buf, sa)
	if a.Label != "" {
		label.Content = a.Label
		label.Class = "axis-label"
		style.RenderText(buf, label)
	}
}

// renderLegend lists the series in the top right corner of the plot.
func renderLegend(buf *bytes.Buffer, style styles.Style, f *frame.Frame) {
	x := f.Area.Right() - legendWidth
	for i, e := range f.Legend {
		y := f.Area.Top() + 4 + float64(i)*legendRow
		style.RenderSwatch(buf, x, y, swatchSize, e.Color)
		style.RenderText(buf, styles.Text{
			X:       x + swatchSize + 4,
			Y:       y + swatchSize - 1,
			Content: styles.Truncate(e.SeriesID, legendWidth-swatchSize-4, 11),
			Class:   "legend",
		})
	}
}
