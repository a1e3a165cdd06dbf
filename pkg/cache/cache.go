// Package cache stores rendered artifacts between runs.
//
// # Overview
//
// Rendering a class diagram to SVG runs Graphviz, which is by far the
// slowest step of a run. The pipeline keys each rendered artifact by a hash
// of its input and stores it in a [Cache], so unchanged diagrams are served
// from disk.
//
// # Implementations
//
//   - [FileCache]: one JSON file per entry below a directory, with optional
//     expiry. Used by the CLI.
//   - [NullCache]: stores nothing. Used with --no-cache and in tests.
//
// # Keys
//
// A [Keyer] builds cache keys. [DefaultKeyer] hashes the input together with
// the rendering options; [ScopedKeyer] adds a prefix, which the CLI uses to
// separate entries written by different releases.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an entry. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is how long rendered artifacts stay valid.
const TTLArtifact = 7 * 24 * time.Hour

// ArtifactKeyOpts are the rendering options an artifact depends on.
type ArtifactKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of an artifact rendered from input with
	// the given hash.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "<format>:<sha256>", for example
// "svg:9f86d0...". Options without a format use the "artifact" prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the input hash together with the options.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return artifactKey(inputHash, opts)
}
