package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/core/chart"
	"github.com/matzehuels/stackchart/pkg/frame"
	"github.com/matzehuels/stackchart/pkg/observability"
)

// Runner executes pipeline stages with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can share one.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer selects the default keyer, a nil
// cache disables caching and a nil logger selects the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// BuildWithCacheInfo lays out cfg with caching and reports whether the
// frame came from the cache.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, cfg chart.Config, refresh bool) (*frame.Frame, bool, error) {
	key := ""
	if data, err := json.Marshal(cfg); err == nil {
		key = r.Keyer.FrameKey(cache.Hash(data), cache.FrameKeyOpts{
			Width:  cfg.Width,
			Height: cfg.Height,
			Kind:   string(cfg.Kind),
		})
	}

	if key != "" && !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if f, err := frame.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "frame")
				return f, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "frame")
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, string(cfg.Kind), len(cfg.Series))
	start := time.Now()
	f, warnings, err := BuildFrame(cfg)
	hooks.OnBuildComplete(ctx, string(cfg.Kind), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for _, w := range warnings {
		r.Logger.Warn("skipped chart element", "element", w.Element, "err", w.Err)
	}
	r.Logger.Debug("built frame",
		"kind", f.Kind,
		"bars", f.BarCount(),
		"paths", len(f.Paths),
		"duration", time.Since(start))

	if key != "" {
		if data, err := frame.Marshal(f); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLFrame); err != nil {
				r.Logger.Debug("cache write failed", "key", key, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "frame", len(data))
			}
		}
	}
	return f, false, nil
}

// Build is BuildWithCacheInfo without the cache hit info.
func (r *Runner) Build(ctx context.Context, cfg chart.Config) (*frame.Frame, error) {
	f, _, err := r.BuildWithCacheInfo(ctx, cfg, false)
	return f, err
}

// RenderWithCacheInfo renders f in every requested format and reports
// whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *frame.Frame, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	data, err := frame.Marshal(f)
	if err != nil {
		return nil, false, fmt.Errorf("serialize frame for cache key: %w", err)
	}
	frameHash := cache.Hash(data)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFrame(ctx, f, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered frame", "formats", opts.Formats, "duration", time.Since(start))

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(frameHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, f *frame.Frame, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, opts)
	return artifacts, err
}

// Animate returns the frames of the transition from one frame to the next.
// A nil from animates bars in from their baseline.
func (r *Runner) Animate(ctx context.Context, from, to *frame.Frame, opts Options) ([]*frame.Frame, error) {
	if err := opts.ValidateForAnimate(); err != nil {
		return nil, err
	}
	spec := to.Transition
	if opts.Transition != nil {
		spec = *opts.Transition
	}

	hooks := observability.Pipeline()
	hooks.OnAnimateStart(ctx, 0)
	start := time.Now()
	frames, err := AnimateFrames(ctx, from, to, spec, opts.FPS)
	hooks.OnAnimateComplete(ctx, len(frames), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("animated frames", "frames", len(frames), "fps", opts.FPS, "duration", time.Since(start))
	return frames, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
