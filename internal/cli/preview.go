package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/core/scrub"
	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// Terminal chart geometry.
const (
	previewLabelWidth = 8
	previewColWidth   = 3
	previewMinRows    = 6
	previewMaxRows    = 40
	previewFPS        = 30
)

var (
	previewAxisStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewCursorStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// previewCommand shows bar charts in the terminal and animates between
// the given configs.
func (c *CLI) previewCommand() *cobra.Command {
	var flags cacheFlags

	cmd := &cobra.Command{
		Use:   "preview <chart.toml> [more.toml...]",
		Short: "Preview bar charts in the terminal and animate between them",
		Long: `Preview draws the chart's bars with terminal blocks.

Keys:
  space/tab  animate to the next config
  ←/→        move the category cursor (the mouse works too)
  q          quit`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			frames := make([]*frame.Frame, 0, len(args))
			for _, path := range args {
				f, _, err := c.buildFile(cmd.Context(), runner, path, false)
				if err != nil {
					return err
				}
				frames = append(frames, f)
			}

			m := newPreviewModel(cmd.Context(), args, frames)
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// previewTickMsg advances the animation queue by one frame.
type previewTickMsg struct{}

// previewColumn is one stack drawn as a terminal column.
type previewColumn struct {
	x        int // first terminal cell after the label gutter
	category int
	stack    frame.Stack
}

// previewModel is the bubbletea model of the preview command.
type previewModel struct {
	ctx     context.Context
	names   []string
	targets []*frame.Frame
	current int

	shown *frame.Frame
	queue []*frame.Frame

	cursor int // selected category index
	rows   int
	err    error
}

func newPreviewModel(ctx context.Context, names []string, targets []*frame.Frame) previewModel {
	return previewModel{
		ctx:     ctx,
		names:   names,
		targets: targets,
		shown:   targets[0],
		rows:    16,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "tab", "n":
			return m.advance()
		case "left", "h":
			m.cursor = max(m.cursor-1, 0)
		case "right", "l":
			m.cursor = min(m.cursor+1, max(len(m.shown.Categories)-1, 0))
		}
	case tea.MouseMsg:
		if i := m.categoryAt(msg.X); i >= 0 {
			m.cursor = i
		}
	case tea.WindowSizeMsg:
		m.rows = min(max(msg.Height-8, previewMinRows), previewMaxRows)
	case previewTickMsg:
		if len(m.queue) == 0 {
			return m, nil
		}
		m.shown, m.queue = m.queue[0], m.queue[1:]
		if len(m.queue) > 0 {
			return m, previewTick()
		}
	}
	return m, nil
}

// advance animates from the frame on screen to the next config. An
// animation in flight is retargeted from wherever it is.
func (m previewModel) advance() (tea.Model, tea.Cmd) {
	if len(m.targets) < 2 {
		return m, nil
	}
	m.current = (m.current + 1) % len(m.targets)
	to := m.targets[m.current]
	frames, err := pipeline.AnimateFrames(m.ctx, m.shown, to, to.Transition, previewFPS)
	if err != nil {
		m.err = err
		m.shown, m.queue = to, nil
		return m, nil
	}
	m.err = nil
	m.shown, m.queue = frames[0], frames[1:]
	if len(m.queue) == 0 {
		return m, nil
	}
	return m, previewTick()
}

func previewTick() tea.Cmd {
	return tea.Tick(time.Second/previewFPS, func(time.Time) tea.Msg { return previewTickMsg{} })
}

// columns lays out the shown stacks left to right. Stacks of one category
// sit one cell apart and categories two cells apart.
func (m previewModel) columns() []previewColumn {
	cols := make([]previewColumn, 0, len(m.shown.Stacks))
	x := previewLabelWidth + 1
	for i, s := range m.shown.Stacks {
		if i > 0 {
			if s.Index != m.shown.Stacks[i-1].Index {
				x += 2
			} else {
				x++
			}
		}
		cols = append(cols, previewColumn{x: x, category: s.Index, stack: s})
		x += previewColWidth
	}
	return cols
}

// categoryAt maps a terminal column to the nearest category, or -1.
func (m previewModel) categoryAt(x int) int {
	var centers []float64
	var categories []int
	for _, col := range m.columns() {
		center := float64(col.x) + float64(previewColWidth)/2
		if n := len(categories); n > 0 && categories[n-1] == col.category {
			centers[n-1] = (centers[n-1] + center) / 2
			continue
		}
		centers = append(centers, center)
		categories = append(categories, col.category)
	}
	i := scrub.NearestIndex(centers, float64(x))
	if i < 0 {
		return -1
	}
	return categories[i]
}

func (m previewModel) View() string {
	f := m.shown
	var b strings.Builder

	title := f.Title
	if title == "" {
		title = m.names[m.current]
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("[%d/%d]", m.current+1, len(m.targets))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space next · ←/→ scrub · q quit"))
	b.WriteString("\n\n")

	if len(f.Stacks) == 0 {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%s chart with %d paths has no bars to preview", f.Kind, len(f.Paths))))
		b.WriteString("\n")
		return b.String()
	}

	cols := m.columns()
	fills := legendColors(f)
	rowHeight := f.Area.Height / float64(m.rows)
	labels := yLabels(f)

	for r := 0; r < m.rows; r++ {
		top := f.Area.Y + float64(r)*rowHeight
		y := top + rowHeight/2

		label := ""
		for _, t := range labels {
			if t.Position >= top && t.Position < top+rowHeight {
				label = t.Label
			}
		}
		b.WriteString(previewAxisStyle.Render(fmt.Sprintf("%*s│", previewLabelWidth, label)))

		pos := previewLabelWidth + 1
		for _, col := range cols {
			b.WriteString(strings.Repeat(" ", col.x-pos))
			b.WriteString(cell(col.stack, y, fills))
			pos = col.x + previewColWidth
		}
		b.WriteString("\n")
	}

	width := previewColWidth
	if n := len(cols); n > 0 {
		width = cols[n-1].x + previewColWidth - previewLabelWidth - 1
	}
	b.WriteString(previewAxisStyle.Render(strings.Repeat(" ", previewLabelWidth) + "└" + strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.cursorLine(cols))
	b.WriteString("\n")
	b.WriteString(m.detail())

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(m.err.Error()))
	}
	return b.String()
}

// cursorLine marks the selected category below the axis.
func (m previewModel) cursorLine(cols []previewColumn) string {
	line := []rune(strings.Repeat(" ", previewLabelWidth+1))
	for _, col := range cols {
		for len(line) < col.x+previewColWidth {
			line = append(line, ' ')
		}
		if col.category == m.cursor {
			line[col.x+previewColWidth/2] = '▲'
		}
	}
	return previewCursorStyle.Render(strings.TrimRight(string(line), " "))
}

// detail lists the values of the selected category.
func (m previewModel) detail() string {
	f := m.shown
	if m.cursor >= len(f.Categories) {
		return ""
	}
	parts := []string{StyleValue.Render(f.Categories[m.cursor])}
	for _, s := range f.Stacks {
		if s.Index != m.cursor {
			continue
		}
		for _, bar := range s.Bars {
			parts = append(parts, StyleDim.Render(bar.SeriesID)+" "+StyleNumber.Render(bar.Value.String()))
		}
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// cell draws the bar of a stack that covers pixel row y.
func cell(s frame.Stack, y float64, fills map[string]string) string {
	for _, bar := range s.Bars {
		if bar.Rect.Height <= 0 || y < bar.Rect.Top() || y >= bar.Rect.Bottom() {
			continue
		}
		color := bar.Fill
		if !strings.HasPrefix(color, "#") {
			color = fills[bar.SeriesID]
		}
		if color == "" {
			return StyleValue.Render(strings.Repeat("█", previewColWidth))
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", previewColWidth))
	}
	return strings.Repeat(" ", previewColWidth)
}

// legendColors maps series to their solid legend color. Gradient fills
// are drawn in it.
func legendColors(f *frame.Frame) map[string]string {
	colors := make(map[string]string, len(f.Legend))
	for _, e := range f.Legend {
		colors[e.SeriesID] = e.Color
	}
	return colors
}

// yLabels returns the ticks of the first y axis with labels that fit the
// gutter.
func yLabels(f *frame.Frame) []axis.Tick {
	for _, a := range f.Axes {
		if a.Orient == frame.OrientY {
			ticks := make([]axis.Tick, len(a.Ticks))
			for i, t := range a.Ticks {
				t.Label = truncate(t.Label, previewLabelWidth)
				ticks[i] = t
			}
			return ticks
		}
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
