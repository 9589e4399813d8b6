package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, "bar", 3)
	p.OnBuildComplete(ctx, "bar", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)
	p.OnAnimateStart(ctx, 10)
	p.OnAnimateComplete(ctx, 10, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "frame")
	c.OnCacheMiss(ctx, "frame")
	c.OnCacheSet(ctx, "artifact", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/v1/frames")
	s.OnResponse(ctx, "POST", "/v1/frames", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	stats := NewStats()
	SetPipelineHooks(stats)
	SetCacheHooks(stats)
	SetServerHooks(stats)
	if Pipeline() != PipelineHooks(stats) || Cache() != CacheHooks(stats) || Server() != ServerHooks(stats) {
		t.Error("Set*Hooks did not register")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(stats) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := NewStats()

	s.OnBuildComplete(ctx, "bar", 2*time.Millisecond, nil)
	s.OnBuildComplete(ctx, "bar", 3*time.Millisecond, errors.New("boom"))
	s.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)
	s.OnAnimateComplete(ctx, 19, time.Millisecond, nil)
	s.OnCacheHit(ctx, "frame")
	s.OnCacheMiss(ctx, "frame")
	s.OnCacheSet(ctx, "frame", 100)
	s.OnCacheSet(ctx, "frame", 50)
	s.OnRequest(ctx, "GET", "/healthz")
	s.OnResponse(ctx, "GET", "/healthz", 404, time.Millisecond)

	tests := []struct {
		name string
		want int64
	}{
		{"build.bar", 2},
		{"build.bar.errors", 1},
		{"render.svg", 1},
		{"render.png", 1},
		{"animate", 1},
		{"animate.frames", 19},
		{"cache.hit.frame", 1},
		{"cache.miss.frame", 1},
		{"cache.set.frame", 2},
		{"cache.bytes.frame", 150},
		{"http.requests", 1},
		{"http.4xx", 1},
		{"http.5xx", 0},
	}
	for _, tt := range tests {
		if got := s.Count(tt.name); got != tt.want {
			t.Errorf("Count(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}

	snap := s.Snapshot()
	if snap.TotalMillis["build.bar"] != 5 {
		t.Errorf("TotalMillis[build.bar] = %d, want 5", snap.TotalMillis["build.bar"])
	}
	snap.Counters["build.bar"] = 99
	if s.Count("build.bar") != 2 {
		t.Error("Snapshot shares its map with Stats")
	}
}
