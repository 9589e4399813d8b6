package frame

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/gradient"
	"github.com/matzehuels/stackchart/pkg/core/series"
	"github.com/matzehuels/stackchart/pkg/core/stack"
	"github.com/matzehuels/stackchart/pkg/core/transition"
)

// Orientations of an [Axis].
const (
	OrientX = "x"
	OrientY = "y"
)

// Path kinds.
const (
	PathLine = "line"
	PathArea = "area"
)

// Frame is one laid out chart state.
type Frame struct {
	ID       string     `json:"id"`
	Title    string     `json:"title,omitempty"`
	Kind     string     `json:"kind"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Area     stack.Rect `json:"area"`
	Progress float64    `json:"progress,omitempty"`

	Categories []string   `json:"categories,omitempty"`
	Axes       []Axis     `json:"axes,omitempty"`
	Stacks     []Stack    `json:"stacks,omitempty"`
	Paths      []Path     `json:"paths,omitempty"`
	Gradients  []Gradient `json:"gradients,omitempty"`
	Legend     []Entry    `json:"legend,omitempty"`

	// Transition animates changes toward this frame.
	Transition transition.Spec `json:"transition"`

	Warnings []string `json:"warnings,omitempty"`
}

// Axis is a planned axis. Offset is the pixel position of the axis line
// across the plot: a y coordinate for x axes and an x coordinate for y axes.
type Axis struct {
	ID     string      `json:"id,omitempty"`
	Orient string      `json:"orient"`
	Scale  string      `json:"scale"`
	Label  string      `json:"label,omitempty"`
	Offset float64     `json:"offset"`
	Ticks  []axis.Tick `json:"ticks"`
}

// Stack is the layout of one stack group at one category.
type Stack struct {
	Index    int        `json:"index"`
	Category string     `json:"category"`
	StackID  string     `json:"stack_id,omitempty"`
	YAxisID  string     `json:"y_axis_id,omitempty"`
	Bounds   stack.Rect `json:"bounds"`
	Baseline float64    `json:"baseline"`
	Bars     []Bar      `json:"bars"`
}

// Key identifies the stack across frames.
func (s Stack) Key() string {
	return fmt.Sprintf("%d/%s/%s", s.Index, s.StackID, s.YAxisID)
}

// Bar is a positioned bar and its outline.
type Bar struct {
	SeriesID    string       `json:"series_id"`
	Rect        stack.Rect   `json:"rect"`
	Path        string       `json:"path"`
	Fill        string       `json:"fill"`
	Side        string       `json:"side"`
	RoundTop    bool         `json:"round_top,omitempty"`
	RoundBottom bool         `json:"round_bottom,omitempty"`
	Radius      float64      `json:"radius,omitempty"`
	Value       series.Value `json:"value"`
}

// Path is the mark of a line or area series.
type Path struct {
	SeriesID string `json:"series_id"`
	Kind     string `json:"kind"`
	D        string `json:"d"`
	Stroke   string `json:"stroke"`
	Fill     string `json:"fill,omitempty"`
}

// Gradient is a linear gradient in user space. Fills reference it as
// url(#ID).
type Gradient struct {
	ID       string               `json:"id"`
	SeriesID string               `json:"series_id"`
	X1       float64              `json:"x1"`
	Y1       float64              `json:"y1"`
	X2       float64              `json:"x2"`
	Y2       float64              `json:"y2"`
	Table    gradient.RenderTable `json:"table"`
}

// Entry is one legend row.
type Entry struct {
	SeriesID string `json:"series_id"`
	Color    string `json:"color"`
}

// Marshal serializes a frame to pretty-printed JSON.
func Marshal(f *Frame) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// Unmarshal decodes a frame and checks that it has a usable canvas.
func Unmarshal(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal frame: %w", err)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("frame must have a positive size, got %gx%g", f.Width, f.Height)
	}
	return &f, nil
}

// WriteFile writes a frame to a JSON file.
func WriteFile(f *Frame, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile reads a frame from a JSON file.
func ReadFile(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// BarCount returns the number of bars across all stacks.
func (f *Frame) BarCount() int {
	n := 0
	for _, s := range f.Stacks {
		n += len(s.Bars)
	}
	return n
}
