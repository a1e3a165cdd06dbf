package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every SVG is rendered again. The CLI uses it
// for --no-cache and when no cache directory can be determined, and the
// runner falls back to it when given a nil cache.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a NullCache.
func NewNullCache() Cache { return NullCache{} }

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete has nothing to remove.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close has nothing to release.
func (NullCache) Close() error { return nil }
