package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/frame"
	chartio "github.com/matzehuels/stackchart/pkg/io"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// renderOpts holds the command-line flags shared by render and watch.
type renderOpts struct {
	output  string  // output file (single format) or base path
	formats string  // comma-separated formats
	style   string  // visual style
	grid    bool    // draw grid lines
	legend  bool    // draw the legend
	scale   float64 // PNG pixel density
	refresh bool    // bypass cache reads
	cache   cacheFlags
}

func (o *renderOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&o.formats, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&o.style, "style", pipeline.DefaultStyle, "visual style: simple, dark")
	cmd.Flags().BoolVar(&o.grid, "grid", false, "draw grid lines at the y ticks")
	cmd.Flags().BoolVar(&o.legend, "legend", false, "draw a legend")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached frames and artifacts")
	o.cache.register(cmd)
}

// pipelineOptions converts the flags and validates them.
func (o *renderOpts) pipelineOptions() (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats: parseFormats(o.formats),
		Style:   o.style,
		Grid:    o.grid,
		Legend:  o.legend,
		Scale:   o.scale,
		Refresh: o.refresh,
	}
	if err := opts.ValidateForRender(); err != nil {
		return opts, err
	}
	return opts, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <chart.toml|chart.yaml|chart.json>",
		Short: "Render a chart config to SVG, PNG, PDF or JSON",
		Long: `Render lays out a chart config and writes one file per output format.

Examples:
  stackchart render sales.toml                     # sales.svg
  stackchart render sales.yaml -f svg,png -o out/  # out.svg and out.png
  stackchart render sales.json -f json -o frame.json --style dark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.pipelineOptions()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			_, paths, err := c.runRender(cmd.Context(), runner, args[0], opts.output, popts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				printFile(p)
			}
			if slices.Contains(popts.Formats, pipeline.FormatSVG) {
				printNextStep("Preview in the terminal", fmt.Sprintf("%s preview %s", appName, args[0]))
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

// runRender builds and renders one config. It returns the frame and the
// written paths.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options) (*frame.Frame, []string, error) {
	prog := newProgress(c.Logger)

	f, frameHit, err := c.buildFile(ctx, runner, input, opts.Refresh)
	if err != nil {
		return nil, nil, err
	}
	artifacts, artifactHit, err := runner.RenderWithCacheInfo(ctx, f, opts)
	if err != nil {
		return nil, nil, err
	}

	var paths []string
	for _, format := range opts.Formats {
		path := outputPath(output, input, format, len(opts.Formats))
		if err := writeOutput(path, artifacts[format]); err != nil {
			return nil, paths, err
		}
		paths = append(paths, path)
	}
	prog.done("rendered chart", "input", input, "formats", opts.Formats)
	printSuccess("Rendered %s", input)
	printFrameStats(f, frameHit && artifactHit)
	return f, paths, nil
}

// buildFile reads a config and builds its frame, printing any warnings.
func (c *CLI) buildFile(ctx context.Context, runner *pipeline.Runner, input string, refresh bool) (*frame.Frame, bool, error) {
	cfg, err := chartio.ReadConfig(input)
	if err != nil {
		return nil, false, err
	}
	f, hit, err := runner.BuildWithCacheInfo(ctx, cfg, refresh)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", input, err)
	}
	printWarnings(f)
	return f, hit, nil
}

// outputPath names the file of one format. A single format with an
// explicit output writes exactly there.
func outputPath(output, input, format string, formats int) string {
	if output != "" && formats == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}
