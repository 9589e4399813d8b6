package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// watchDebounce coalesces the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchCommand re-renders a config whenever it changes on disk.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts    renderOpts
		animate bool
		fps     int
	)

	cmd := &cobra.Command{
		Use:   "watch <chart.toml>",
		Short: "Re-render a chart config every time it is saved",
		Long: `Watch renders the config once and again after every save. With --animate it also
writes the frames of the transition from the previous version.

Examples:
  stackchart watch sales.toml
  stackchart watch sales.toml -f svg,png --animate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.pipelineOptions()
			if err != nil {
				return err
			}
			aopts := pipeline.Options{FPS: fps}
			if err := aopts.ValidateForAnimate(); err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			w := &watchSession{
				cli:     c,
				runner:  runner,
				input:   args[0],
				output:  opts.output,
				render:  popts,
				animate: animate,
				anim:    aopts,
			}
			return w.run(cmd.Context())
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&animate, "animate", false, "also write the transition frames from the previous version")
	cmd.Flags().IntVar(&fps, "fps", pipeline.DefaultFPS, "frames per second for --animate")

	return cmd
}

// watchSession holds the state of one watch run.
type watchSession struct {
	cli     *CLI
	runner  *pipeline.Runner
	input   string
	output  string
	render  pipeline.Options
	animate bool
	anim    pipeline.Options

	previous *frame.Frame
}

func (w *watchSession) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(w.input)); err != nil {
		return fmt.Errorf("watch %s: %w", w.input, err)
	}

	w.rebuild(ctx)
	printInfo("Watching %s (ctrl+c to stop)", w.input)

	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if changed(ev, w.input) {
				debounce.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.cli.Logger.Warn("watch error", "error", err)
		case <-debounce.C:
			w.rebuild(ctx)
		}
	}
}

// rebuild renders the current config. Failures are reported and the
// watch continues with the last good frame.
func (w *watchSession) rebuild(ctx context.Context) {
	f, _, err := w.cli.runRender(ctx, w.runner, w.input, w.output, w.render)
	if err != nil {
		printError("%v", err)
		return
	}
	if w.animate && w.previous != nil && w.previous.ID != f.ID {
		dir := basePath(w.output, w.input) + "_frames"
		ropts := w.render
		ropts.Formats = []string{pipeline.FormatSVG}
		if _, err := w.cli.writeAnimation(ctx, w.runner, w.previous, f, dir, w.anim, ropts); err != nil {
			printError("%v", err)
		}
	}
	w.previous = f
}

// changed reports whether ev touches the watched file.
func changed(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(path) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
