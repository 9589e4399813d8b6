package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached frames and rendered artifacts",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears
// whichever backend --cache selects.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var flags cacheFlags
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.backend == cacheFile || flags.backend == "" {
				dir, err := resolveCacheDir(flags)
				if err != nil {
					return err
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			cc, err := newCache(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer cc.Close()

			switch cc := cc.(type) {
			case *cache.FileCache:
				if err := cc.Clear(); err != nil {
					return fmt.Errorf("clear file cache: %w", err)
				}
				printSuccess("Cleared file cache")
				printDetail("Directory: %s", cc.Dir())
			case *cache.RedisCache:
				if err := cc.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
				printSuccess("Cleared redis cache")
			case *cache.MongoCache:
				if err := cc.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear mongo cache: %w", err)
				}
				printSuccess("Cleared mongo cache")
			default:
				printInfo("The %s cache does not persist between runs", flags.backend)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var flags cacheFlags
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveCacheDir(flags)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.dir, "cache-dir", "", "file cache directory (default ~/.cache/stackchart)")
	return cmd
}

// resolveCacheDir returns --cache-dir or the XDG default.
func resolveCacheDir(flags cacheFlags) (string, error) {
	if flags.dir != "" {
		return flags.dir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}
