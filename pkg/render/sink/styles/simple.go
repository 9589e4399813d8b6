package styles

import (
	"bytes"
	"fmt"
)

// Palette holds the non-data colours of a style.
type Palette struct {
	Background string
	Ink        string // Axis lines and labels
	Grid       string
	Font       string
}

var (
	// Light is dark ink on white.
	Light = Palette{Background: "white", Ink: "#333", Grid: "#e5e5e5", Font: "system-ui, sans-serif"}
	// Dark is light ink on a near-black canvas.
	Dark = Palette{Background: "#16181d", Ink: "#c9ccd1", Grid: "#2c3038", Font: "system-ui, sans-serif"}
)

const (
	tickSize  = 6.0
	tickGap   = 3.0
	labelSize = 11.0
)

// Simple draws flat fills and thin axis lines.
type Simple struct {
	Palette Palette
}

func (s Simple) RenderDefs(*bytes.Buffer) {}

func (s Simple) RenderBackground(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect class="background" x="0" y="0" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		width, height, EscapeXML(s.Palette.Background))
}

func (s Simple) RenderGridLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf, `  <line class="grid" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, EscapeXML(s.Palette.Grid))
}

func (s Simple) RenderAxis(buf *bytes.Buffer, a Axis) {
	ink := EscapeXML(s.Palette.Ink)
	fmt.Fprintf(buf, `  <g class="axis axis-%s">`+"\n", a.Side)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		a.Line.X1, a.Line.Y1, a.Line.X2, a.Line.Y2, ink)
	for _, t := range a.Ticks {
		dx, dy := tickDirection(a.Side)
		fmt.Fprintf(buf, `    <line class="tick" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
			t.X, t.Y, t.X+dx*tickSize, t.Y+dy*tickSize, ink)
		if t.Label == "" {
			continue
		}
		lx := t.X + dx*(tickSize+tickGap)
		ly := t.Y + dy*(tickSize+tickGap)
		anchor, baseline := "middle", "hanging"
		switch a.Side {
		case SideTop:
			baseline = "auto"
		case SideLeft:
			anchor, baseline = "end", "middle"
		case SideRight:
			anchor, baseline = "start", "middle"
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s" font-family="%s" font-size="%.0f" fill="%s">%s</text>`+"\n",
			lx, ly, anchor, baseline, EscapeXML(s.Palette.Font), labelSize, ink, EscapeXML(t.Label))
	}
	buf.WriteString("  </g>\n")
}

// tickDirection points away from the plot area.
func tickDirection(side Side) (dx, dy float64) {
	switch side {
	case SideTop:
		return 0, -1
	case SideLeft:
		return -1, 0
	case SideRight:
		return 1, 0
	}
	return 0, 1
}

func (s Simple) RenderBar(buf *bytes.Buffer, b Bar) {
	fmt.Fprintf(buf, `  <path class="bar" data-series="%s" d="%s" fill="%s"/>`+"\n",
		EscapeXML(b.SeriesID), b.Path, EscapeXML(b.Fill))
}

func (s Simple) RenderMark(buf *bytes.Buffer, m Mark) {
	if m.Area {
		fmt.Fprintf(buf, `  <path class="area" data-series="%s" d="%s" fill="%s" fill-opacity="0.35" stroke="%s" stroke-width="1.5"/>`+"\n",
			EscapeXML(m.SeriesID), m.D, EscapeXML(m.Fill), EscapeXML(m.Stroke))
		return
	}
	fmt.Fprintf(buf, `  <path class="line" data-series="%s" d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round" stroke-linecap="round"/>`+"\n",
		EscapeXML(m.SeriesID), m.D, EscapeXML(m.Stroke))
}

func (s Simple) RenderText(buf *bytes.Buffer, t Text) {
	size := t.Size
	if size == 0 {
		size = labelSize
	}
	anchor := t.Anchor
	if anchor == "" {
		anchor = "start"
	}
	class := ""
	if t.Class != "" {
		class = fmt.Sprintf(` class="%s"`, EscapeXML(t.Class))
	}
	fmt.Fprintf(buf, `  <text%s x="%.2f" y="%.2f" text-anchor="%s" font-family="%s" font-size="%.0f" fill="%s">%s</text>`+"\n",
		class, t.X, t.Y, anchor, EscapeXML(s.Palette.Font), size, EscapeXML(s.Palette.Ink), EscapeXML(t.Content))
}

func (s Simple) RenderSwatch(buf *bytes.Buffer, x, y, size float64, fill string) {
	fmt.Fprintf(buf, `  <rect class="swatch" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="2" ry="2" fill="%s"/>`+"\n",
		x, y, size, size, EscapeXML(fill))
}
