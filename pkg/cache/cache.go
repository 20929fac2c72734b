// Package cache provides the caching layer for layout and render results.
//
// The layout engine itself is a pure function and never caches; memoization
// is the caller's concern. This package implements that concern: results are
// keyed on SHA-256 hashes of the serialized graph plus the layout or render
// options, so identical inputs hit the cache and any input change misses it.
//
// Three backends are provided: FileCache for CLI use, RedisCache for the
// HTTP service, and NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact class. Layouts are cheap to recompute, so short
// TTLs only bound disk/memory growth rather than protecting correctness.
const (
	// TTLLayout is the lifetime of cached layout results.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts (SVG, PNG).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with TTL expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the layout options that participate in the cache key.
// Any field that changes the computed geometry must appear here.
type LayoutKeyOpts struct {
	CanvasWidth     float64
	CanvasHeight    float64
	NodeWidth       float64
	NodeHeight      float64
	Padding         float64
	MinSpacing      float64
	MaxLevelSpacing float64
	Orientation     string
	Routing         string
}

// ArtifactKeyOpts are the render options that participate in the cache key.
type ArtifactKeyOpts struct {
	Format     string
	Style      string
	ShowLabels bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a layout result, from the canonical
	// graph hash and the geometry options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, from the layout
	// hash and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator: prefix:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
