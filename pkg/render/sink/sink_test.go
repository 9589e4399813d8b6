package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/gradient"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/render/sink/styles"
)

func testFrame() *frame.Frame {
	area := stack.Rect{X: 40, Y: 20, Width: 200, Height: 100}
	return &frame.Frame{
		Title:  "Sales",
		Kind:   "bar",
		Width:  260,
		Height: 160,
		Area:   area,
		Axes: []frame.Axis{
			{Orient: frame.OrientX, Scale: "band", Offset: area.Bottom(), Label: "Day",
				Ticks: []axis.Tick{{Value: 0, Position: 90, Label: "Mon"}}},
			{Orient: frame.OrientY, Scale: "linear", Offset: area.X,
				Ticks: []axis.Tick{{Value: 0, Position: 120, Label: "0"}, {Value: 10, Position: 20, Label: "10"}}},
		},
		Stacks: []frame.Stack{{
			Category: "Mon",
			Bars: []frame.Bar{
				{SeriesID: "a", Path: "M50,70L130,70L130,120L50,120Z", Fill: "url(#grad-a)"},
				{SeriesID: "b", Path: "M50,40L130,40L130,68L50,68Z", Fill: "#f28e2b"},
			},
		}},
		Paths: []frame.Path{{SeriesID: "trend", Kind: frame.PathLine, D: "M50,100L130,60", Stroke: "#59a14f"}},
		Gradients: []frame.Gradient{{
			ID: "grad-a", SeriesID: "a", X1: 40, Y1: 120, X2: 40, Y2: 20,
			Table: gradient.RenderTable{Positions: []float64{0, 1}, Colors: []string{"#fff", "#4e79a7"}, Opacities: []float64{0, 1}},
		}},
		Legend: []frame.Entry{{SeriesID: "a", Color: "#4e79a7"}, {SeriesID: "b", Color: "#f28e2b"}},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFrame()))

	for _, want := range []string{
		`viewBox="0 0 260.0 160.0"`,
		`<linearGradient id="grad-a" gradientUnits="userSpaceOnUse" x1="40.00" y1="120.00" x2="40.00" y2="20.00">`,
		`<stop offset="1.0000" stop-color="#4e79a7" stop-opacity="1.00"/>`,
		`fill="url(#grad-a)"`,
		`class="line"`,
		`axis-bottom`,
		`axis-left`,
		`>Mon</text>`,
		`>Sales</text>`,
		`>Day</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %q", want)
		}
	}
	if strings.Contains(svg, `class="grid"`) || strings.Contains(svg, `class="swatch"`) {
		t.Error("RenderSVG() drew grid or legend without options")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() output not closed")
	}

	// Marks sit below bars, axes above both.
	line := strings.Index(svg, `class="line"`)
	bar := strings.Index(svg, `class="bar"`)
	ax := strings.Index(svg, `class="axis`)
	if !(line < bar && bar < ax) {
		t.Errorf("paint order line=%d bar=%d axis=%d", line, bar, ax)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	style, _ := styles.Lookup(styles.NameDark)
	svg := string(RenderSVG(testFrame(), WithGrid(), WithLegend(), WithStyle(style)))

	if got := strings.Count(svg, `class="grid"`); got != 3 {
		t.Errorf("grid lines = %d, want 3 (1 x tick + 2 y ticks)", got)
	}
	if got := strings.Count(svg, `class="swatch"`); got != 2 {
		t.Errorf("legend swatches = %d, want 2", got)
	}
	if !strings.Contains(svg, styles.Dark.Background) {
		t.Error("dark style background missing")
	}
}

func TestAxisSide(t *testing.T) {
	f := testFrame()
	tests := []struct {
		axis frame.Axis
		want styles.Side
	}{
		{frame.Axis{Orient: frame.OrientX, Offset: f.Area.Bottom()}, styles.SideBottom},
		{frame.Axis{Orient: frame.OrientX, Offset: f.Area.Top()}, styles.SideTop},
		{frame.Axis{Orient: frame.OrientY, Offset: f.Area.X}, styles.SideLeft},
		{frame.Axis{Orient: frame.OrientY, Offset: f.Area.Right()}, styles.SideRight},
	}
	for _, tt := range tests {
		if got := axisSide(f, tt.axis); got != tt.want {
			t.Errorf("axisSide(%s at %g) = %s, want %s", tt.axis.Orient, tt.axis.Offset, got, tt.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testFrame())
	if err != nil {
		t.Fatal(err)
	}
	f, err := frame.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal(RenderJSON()) error: %v", err)
	}
	if f.BarCount() != 2 || f.Title != "Sales" {
		t.Errorf("decoded frame = %+v", f)
	}
}
