package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/core/transition"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// transitionFlags overrides the target config's transition.
type transitionFlags struct {
	kind      string
	duration  time.Duration
	easing    string
	stiffness float64
	damping   float64
	mass      float64
}

func (t *transitionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.kind, "transition", "", "override the transition: timing, spring, none")
	cmd.Flags().DurationVar(&t.duration, "duration", transition.DefaultDuration, "timing duration")
	cmd.Flags().StringVar(&t.easing, "easing", transition.DefaultEasing, "timing easing: linear, ease, ease-in, ease-out, ease-in-out or cubic-bezier(...)")
	cmd.Flags().Float64Var(&t.stiffness, "stiffness", transition.DefaultStiffness, "spring stiffness")
	cmd.Flags().Float64Var(&t.damping, "damping", transition.DefaultDamping, "spring damping")
	cmd.Flags().Float64Var(&t.mass, "mass", transition.DefaultMass, "spring mass")
}

// spec returns the override, or nil to keep the config's transition.
func (t *transitionFlags) spec() (*transition.Spec, error) {
	var s transition.Spec
	switch t.kind {
	case "":
		return nil, nil
	case string(transition.Timing):
		s = transition.Spec{Type: transition.Timing, Duration: transition.Duration(t.duration), Easing: t.easing}
	case string(transition.Spring):
		s = transition.Spec{Type: transition.Spring, Stiffness: t.stiffness, Damping: t.damping, Mass: t.mass}
	case "none":
		s = transition.Spec{Disabled: true}
	default:
		return nil, errors.New(errors.ErrCodeInvalidTransition,
			"invalid transition %q (must be one of: timing, spring, none)", t.kind)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// animateCommand renders the frames of the transition between two chart
// configs into a directory.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		output string
		format string
		style  string
		fps    int
		trans  transitionFlags
		flags  cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "animate [from.toml] <to.toml>",
		Short: "Render the transition between two chart configs as numbered frames",
		Long: `Animate lays out both configs and writes one file per animation frame.
With a single config, bars grow in from their baseline.

Examples:
  stackchart animate q1.toml q2.toml -o frames/
  stackchart animate q2.toml --transition spring --fps 30
  stackchart animate q1.toml q2.toml -f json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := trans.spec()
			if err != nil {
				return err
			}
			aopts := pipeline.Options{FPS: fps, Transition: spec}
			if err := aopts.ValidateForAnimate(); err != nil {
				return err
			}
			ropts := pipeline.Options{Formats: []string{format}, Style: style}
			if err := ropts.ValidateForRender(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			var from *frame.Frame
			if len(args) == 2 {
				if from, _, err = c.buildFile(cmd.Context(), runner, args[0], false); err != nil {
					return err
				}
			}
			target := args[len(args)-1]
			to, _, err := c.buildFile(cmd.Context(), runner, target, false)
			if err != nil {
				return err
			}

			dir := output
			if dir == "" {
				dir = basePath("", target) + "_frames"
			}
			n, err := c.writeAnimation(cmd.Context(), runner, from, to, dir, aopts, ropts)
			if err != nil {
				return err
			}
			printDetail("%d frames at %d fps", n, aopts.FPS)
			printFile(dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default <to>_frames)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "frame format: svg, json, png, pdf")
	cmd.Flags().StringVar(&style, "style", pipeline.DefaultStyle, "visual style: simple, dark")
	cmd.Flags().IntVar(&fps, "fps", pipeline.DefaultFPS, "frames per second (1-240)")
	trans.register(cmd)
	flags.register(cmd)

	return cmd
}

// writeAnimation animates from one frame to the next and writes every
// frame to dir as frame_0000.<format>. It returns the frame count.
func (c *CLI) writeAnimation(ctx context.Context, runner *pipeline.Runner, from, to *frame.Frame, dir string, aopts, ropts pipeline.Options) (int, error) {
	prog := newProgress(c.Logger)
	spin := newSpinner(ctx, "Animating...")
	spin.Start()
	defer spin.Stop()

	frames, err := runner.Animate(ctx, from, to, aopts)
	if err != nil {
		spin.StopWithError("Animation failed")
		return 0, err
	}

	format := ropts.Formats[0]
	for i, f := range frames {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		spin.SetMessage("Rendering frame %d/%d", i+1, len(frames))
		artifacts, err := pipeline.RenderFrame(ctx, f, ropts)
		if err != nil {
			spin.StopWithError("Rendering frame %d failed", i)
			return i, err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.%s", i, format))
		if err := writeOutput(path, artifacts[format]); err != nil {
			return i, err
		}
	}

	prog.done("animated chart", "frames", len(frames), "dir", dir)
	spin.StopWithSuccess("Animated %d frames", len(frames))
	return len(frames), nil
}
