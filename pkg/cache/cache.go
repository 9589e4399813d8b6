// Package cache stores computed frames and rendered artifacts.
//
// Every backend implements [Cache], a byte-oriented key/value store with
// per-entry expiry. Keys come from a [Keyer] so that the CLI, the HTTP
// server and tests agree on them:
//
//	frame:<sha256 of config and frame options>
//	artifact:<sha256 of frame hash and render options>
//
// Backends:
//   - [NullCache] never stores anything (caching disabled)
//   - [MemoryCache] keeps entries in process, for the server and tests
//   - [FileCache] writes one JSON file per entry, for the CLI
//   - [RedisCache] and [MongoCache] share entries between server replicas
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized frames and artifacts.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero keeps the entry until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Entry lifetimes.
const (
	TTLFrame    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// FrameKey identifies a laid out frame.
	FrameKey(configHash string, opts FrameKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a frame.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// FrameKeyOpts lists the layout options that change a frame.
type FrameKeyOpts struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Kind   string  `json:"kind,omitempty"`
}

// ArtifactKeyOpts lists the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style,omitempty"`
	Grid   bool    `json:"grid,omitempty"`
	Legend bool    `json:"legend,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) FrameKey(configHash string, opts FrameKeyOpts) string {
	return hashKey("frame", configHash, opts)
}

func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameHash, opts)
}
