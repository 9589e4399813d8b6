package observability

import (
	"context"
	"maps"
	"sync"
	"time"
)

// Stats counts events in memory. It implements every hook interface; the
// server exposes a snapshot on its stats endpoint.
type Stats struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string]time.Duration
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{
		counters: make(map[string]int64),
		timings:  make(map[string]time.Duration),
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Counters map[string]int64 `json:"counters"`
	// TotalMillis is the accumulated duration per completed event.
	TotalMillis map[string]int64 `json:"total_ms"`
}

// Snapshot copies the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Counters:    maps.Clone(s.counters),
		TotalMillis: make(map[string]int64, len(s.timings)),
	}
	for k, d := range s.timings {
		snap.TotalMillis[k] = d.Milliseconds()
	}
	return snap
}

// Count returns a single counter.
func (s *Stats) Count(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[name]
}

func (s *Stats) add(name string, n int64) {
	s.mu.Lock()
	s.counters[name] += n
	s.mu.Unlock()
}

func (s *Stats) done(name string, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[name]++
	s.timings[name] += d
	if err != nil {
		s.counters[name+".errors"]++
	}
}

func (s *Stats) OnBuildStart(context.Context, string, int) {}

func (s *Stats) OnBuildComplete(_ context.Context, kind string, d time.Duration, err error) {
	s.done("build."+kind, d, err)
}

func (s *Stats) OnRenderStart(context.Context, []string) {}

func (s *Stats) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	for _, f := range formats {
		s.done("render."+f, d, err)
	}
}

func (s *Stats) OnAnimateStart(context.Context, int) {}

func (s *Stats) OnAnimateComplete(_ context.Context, frames int, d time.Duration, err error) {
	s.done("animate", d, err)
	s.add("animate.frames", int64(frames))
}

func (s *Stats) OnCacheHit(_ context.Context, keyType string)  { s.add("cache.hit."+keyType, 1) }
func (s *Stats) OnCacheMiss(_ context.Context, keyType string) { s.add("cache.miss."+keyType, 1) }

func (s *Stats) OnCacheSet(_ context.Context, keyType string, size int) {
	s.add("cache.set."+keyType, 1)
	s.add("cache.bytes."+keyType, int64(size))
}

func (s *Stats) OnRequest(_ context.Context, method, route string) {
	s.add("http.requests", 1)
}

func (s *Stats) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	s.done("http."+method+" "+route, d, nil)
	if status >= 500 {
		s.add("http.5xx", 1)
	} else if status >= 400 {
		s.add("http.4xx", 1)
	}
}
