// Package cli implements the stackchart command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/buildinfo"
	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stackchart"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backends selectable with --cache.
const (
	cacheFile   = "file"
	cacheMemory = "memory"
	cacheRedis  = "redis"
	cacheMongo  = "mongo"
	cacheNone   = "none"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stackchart lays out and renders stacked bar, line and area charts",
		Long: `Stackchart turns declarative chart configs (TOML, YAML or JSON) into SVG, PNG, PDF
or JSON frames, and animates between chart versions.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.ticksCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend of a command.
type cacheFlags struct {
	backend  string
	dir      string
	redisURL string
	mongoURI string
	mongoDB  string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "cache", cacheFile, "cache backend: file, memory, redis, mongo, none")
	cmd.Flags().StringVar(&f.dir, "cache-dir", "", "file cache directory (default ~/.cache/stackchart)")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", os.Getenv("STACKCHART_REDIS_URL"), "redis URL for --cache redis")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", os.Getenv("STACKCHART_MONGO_URI"), "mongodb URI for --cache mongo")
	cmd.Flags().StringVar(&f.mongoDB, "mongo-db", appName, "mongodb database for --cache mongo")
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache ready", "backend", flags.backend)
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	switch flags.backend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheMemory:
		return cache.NewMemoryCache(0), nil
	case cacheRedis:
		if flags.redisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--cache redis needs --redis-url")
		}
		return cache.NewRedisCache(ctx, flags.redisURL, appName+":")
	case cacheMongo:
		if flags.mongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--cache mongo needs --mongo-uri")
		}
		return cache.NewMongoCache(ctx, flags.mongoURI, flags.mongoDB, cache.DefaultMongoCollection)
	case cacheFile, "":
		dir := flags.dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput,
		"invalid cache backend: %q (must be one of: file, memory, redis, mongo, none)", flags.backend)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stackchart/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the output path without extension. An empty output
// strips the extension of the input; a known format extension on output is
// stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if errors.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path after validating it.
func writeOutput(path string, data []byte) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
