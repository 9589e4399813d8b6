package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/core/axis"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// ticksCommand prints planned axis ticks, either for every axis of a chart
// config or for one standalone scale described by flags.
func (c *CLI) ticksCommand() *cobra.Command {
	var (
		req    pipeline.TickRequest
		domain []float64
		rng    []float64
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "ticks [chart.toml]",
		Short: "Print the planned ticks of a chart's axes or of a single scale",
		Long: `Ticks shows where axis ticks land and how they are labeled.

Examples:
  stackchart ticks sales.toml
  stackchart ticks --domain 0,100 --range 0,500 --count 5
  stackchart ticks --scale log --domain 1,1000 --range 400,0
  stackchart ticks --scale band --categories Mon,Tue,Wed --range 0,300`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				runner, err := c.newRunner(cmd.Context(), flags)
				if err != nil {
					return err
				}
				defer runner.Close()

				f, _, err := c.buildFile(cmd.Context(), runner, args[0], false)
				if err != nil {
					return err
				}
				for _, a := range f.Axes {
					fmt.Fprintln(stdout, axisTitle(a))
					fmt.Fprintln(stdout, tickTable(a.Ticks))
				}
				return nil
			}

			if req.Scale != "band" {
				if len(domain) != 2 {
					return errors.New(errors.ErrCodeInvalidInput, "--domain needs two values, got %d", len(domain))
				}
				req.Domain = [2]float64{domain[0], domain[1]}
			}
			if len(rng) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "--range needs two values, got %d", len(rng))
			}
			req.Range = [2]float64{rng[0], rng[1]}

			ticks, err := pipeline.PlanTicks(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, tickTable(ticks))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Scale, "scale", "linear", "scale kind: linear, log, band")
	cmd.Flags().Float64SliceVar(&domain, "domain", nil, "data domain min,max")
	cmd.Flags().Float64SliceVar(&rng, "range", []float64{0, 500}, "pixel range start,end")
	cmd.Flags().Float64Var(&req.Base, "base", 10, "log base")
	cmd.Flags().StringSliceVar(&req.Categories, "categories", nil, "band categories")
	cmd.Flags().IntVar(&req.Count, "count", axis.DefaultCount, "requested tick count")
	cmd.Flags().Float64Var(&req.Interval, "interval", 0, "pixel distance between ticks (overrides --count)")
	cmd.Flags().Float64Var(&req.MinStep, "min-step", 0, "smallest allowed step")
	cmd.Flags().Float64Var(&req.MaxStep, "max-step", 0, "largest allowed step")
	cmd.Flags().BoolVar(&req.Nice, "nice", false, "extend ticks to step-rounded bounds")
	flags.register(cmd)

	return cmd
}

func axisTitle(a frame.Axis) string {
	title := a.Orient + " axis"
	if a.ID != "" {
		title += " " + a.ID
	}
	detail := a.Scale
	if a.Label != "" {
		detail = a.Label + " · " + detail
	}
	return StyleTitle.Render(title) + " " + StyleDim.Render(detail)
}

// tickTable renders ticks as a bordered table.
func tickTable(ticks []axis.Tick) string {
	rows := make([][]string, 0, len(ticks))
	for _, t := range ticks {
		rows = append(rows, []string{
			t.Label,
			strconv.FormatFloat(t.Value, 'g', -1, 64),
			strconv.FormatFloat(t.Position, 'f', 2, 64),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Label", "Value", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleValue
			default:
				return StyleNumber
			}
		}).
		Render()
}
