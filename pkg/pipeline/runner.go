package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classdiagram/pkg/animals"
	"github.com/matzehuels/classdiagram/pkg/cache"
	"github.com/matzehuels/classdiagram/pkg/diagram"
	"github.com/matzehuels/classdiagram/pkg/meta"
	"github.com/matzehuels/classdiagram/pkg/observability"
	"github.com/matzehuels/classdiagram/pkg/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	u, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Universe = u
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.UniverseTypes = u.Len()

	r.Logger.Info("loaded universe",
		"assembly", u.Name(),
		"types", u.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	doc, err := r.Build(ctx, u, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Document = doc
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.TypeCount = len(doc.Types)

	r.Logger.Info("built document",
		"namespace", opts.Namespace,
		"types", len(doc.Types),
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load returns the type universe selected by opts: the built-in animal
// library when no patterns are given, the merged universe files otherwise.
func (r *Runner) Load(ctx context.Context, opts Options) (u *meta.Universe, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Universe)
	start := time.Now()
	defer func() {
		n := 0
		if u != nil {
			n = u.Len()
		}
		hooks.OnLoadComplete(ctx, opts.Universe, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.UsesBuiltin() {
		return animals.Universe(), nil
	}
	return meta.LoadGlob(opts.Universe...)
}

// Build describes the namespace selected by opts.
func (r *Runner) Build(ctx context.Context, u *meta.Universe, opts Options) (doc *diagram.Document, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Namespace)
	start := time.Now()
	defer func() {
		n := 0
		if doc != nil {
			n = len(doc.Types)
		}
		hooks.OnBuildComplete(ctx, opts.Namespace, n, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err = diagram.Build(u, opts.BuildOptions())
	if err != nil {
		return nil, err
	}
	if len(doc.Types) == 0 {
		opts.Logger.Warn("namespace has no types", "namespace", opts.Namespace)
	}
	return doc, nil
}

// RenderWithCacheInfo renders the document in every requested format and
// reports whether all cacheable artifacts came from the cache.
//
// Only SVG output is cached. It is keyed by the hash of the DOT text, so a
// document that differs only in its generation timestamp reuses the
// rendering.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *diagram.Document, opts Options) (artifacts map[string][]byte, allHit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	if doc == nil {
		return nil, false, fmt.Errorf("nil document")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	cached, cacheable := 0, 0
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		if format == FormatSVG {
			cacheable++
			data, hit, err := r.renderSVG(ctx, doc, opts)
			if err != nil {
				return nil, false, fmt.Errorf("render %s: %w", format, err)
			}
			if hit {
				cached++
			}
			artifacts[format] = data
			continue
		}
		data, err := RenderFormat(ctx, doc, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, cacheable > 0 && cached == cacheable, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *diagram.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

func (r *Runner) renderSVG(ctx context.Context, doc *diagram.Document, opts Options) ([]byte, bool, error) {
	dot := sink.ToDOT(doc, sink.DOTOptions{Detailed: opts.Detailed})
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(dot)), opts.ArtifactKeyOpts(FormatSVG))
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, FormatSVG)
			opts.Logger.Debug("svg from cache", "key", key)
			return data, true, nil
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "error", err)
		}
		hooks.OnCacheMiss(ctx, FormatSVG)
	}

	data, err := sink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	} else {
		hooks.OnCacheSet(ctx, FormatSVG, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
