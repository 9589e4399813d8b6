package styles

import (
	"bytes"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Style defines the visual appearance of a chart.
// Implementations control how bars, marks, axes and text are drawn; the
// sink decides where.
type Style interface {
	// RenderDefs writes SVG <defs> content shared by every element.
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground fills the canvas.
	RenderBackground(buf *bytes.Buffer, width, height float64)
	// RenderGridLine writes one grid line across the plot area.
	RenderGridLine(buf *bytes.Buffer, l Line)
	// RenderAxis writes an axis line with its ticks and labels.
	RenderAxis(buf *bytes.Buffer, a Axis)
	// RenderBar writes one bar outline.
	RenderBar(buf *bytes.Buffer, b Bar)
	// RenderMark writes a line or area path.
	RenderMark(buf *bytes.Buffer, m Mark)
	// RenderText writes a label.
	RenderText(buf *bytes.Buffer, t Text)
	// RenderSwatch writes a legend colour square.
	RenderSwatch(buf *bytes.Buffer, x, y, size float64, fill string)
}

// Side is where an axis sits relative to the plot area.
type Side string

const (
	SideBottom Side = "bottom"
	SideTop    Side = "top"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Tick is one labelled tick. X and Y are its anchor on the axis line.
type Tick struct {
	X, Y  float64
	Label string
}

// Axis contains everything needed to draw one axis.
type Axis struct {
	Side  Side
	Line  Line
	Ticks []Tick
	Label string
}

// Bar contains the outline of a single bar.
type Bar struct {
	SeriesID string
	Path     string // SVG path data
	Fill     string // Colour or url(#gradient)
}

// Mark contains a line or area path of one series.
type Mark struct {
	SeriesID string
	Area     bool
	D        string
	Stroke   string
	Fill     string
}

// Text is a positioned label.
type Text struct {
	X, Y    float64
	Content string
	Anchor  string // start, middle or end
	Size    float64
	Class   string
}

// Style names.
const (
	NameSimple = "simple"
	NameDark   = "dark"
)

// Names lists the available styles.
var Names = []string{NameSimple, NameDark}

// Lookup returns the style with the given name.
func Lookup(name string) (Style, error) {
	switch name {
	case NameSimple, "":
		return Simple{Palette: Light}, nil
	case NameDark:
		return Simple{Palette: Dark}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be one of: simple, dark)", name)
}
