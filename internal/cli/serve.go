package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/internal/server"
	"github.com/matzehuels/stackchart/pkg/buildinfo"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noStats bool
		flags   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render, animate, ticks and scrub endpoints over HTTP",
		Long: `Serve starts the HTTP API and runs until interrupted.

Examples:
  stackchart serve
  stackchart serve --addr 127.0.0.1:9000 --cache redis --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer runner.Close()

			var stats *observability.Stats
			if !noStats {
				stats = observability.NewStats()
				observability.SetPipelineHooks(stats)
				observability.SetCacheHooks(stats)
				observability.SetServerHooks(stats)
				defer observability.Reset()
			}

			printKeyValue("Version", buildinfo.Get().Version)
			printKeyValue("Address", addr)
			printKeyValue("Cache", flags.backend)

			return server.New(runner, c.Logger, stats).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noStats, "no-stats", false, "disable the /v1/stats counters")
	flags.register(cmd)

	return cmd
}
