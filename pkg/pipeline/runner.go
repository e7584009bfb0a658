package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/callsheet/pkg/cache"
	"github.com/matzehuels/callsheet/pkg/layout"
	"github.com/matzehuels/callsheet/pkg/observability"
	"github.com/matzehuels/callsheet/pkg/sheet"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no results, only the cache, keyer and logger, so one
// Runner may serve several goroutines running different options.
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

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.DocHash, _ = cache.HashJSON(doc)

	r.Logger.Info("loaded document",
		"sections", len(doc.Sections),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	plan, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Plan = plan
	result.Stats.Stats = plan.Stats()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"pages", result.Stats.Pages,
		"overflow", result.Stats.Overflow,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, plan, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the input document. Documents are always read from disk; only
// plans and artifacts are cached.
func (r *Runner) Load(ctx context.Context, opts Options) (*sheet.Document, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLoadStart(ctx, opts.Input)
	doc, err := Load(opts.Input)
	sections := 0
	if doc != nil {
		sections = len(doc.Sections)
	}
	hooks.OnLoadComplete(ctx, opts.Input, sections, time.Since(start), err)
	return doc, err
}

// ComputeLayoutWithCacheInfo builds the plan with caching and returns cache
// hit info. A cache failure is treated as a miss.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc *sheet.Document, opts Options) (layout.Plan, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Plan{}, false, err
	}

	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return layout.Plan{}, false, fmt.Errorf("hash document: %w", err)
	}
	keyOpts := opts.LayoutKeyOpts(doc)
	cacheKey := r.Keyer.LayoutKey(docHash, keyOpts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if plan, ok := r.cachedPlan(ctx, cacheKey); ok {
			return plan, true, nil
		}
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnLayoutStart(ctx, keyOpts.Format, len(doc.Sections))
	plan, err := ComputeLayout(doc, opts)
	hooks.OnLayoutComplete(ctx, keyOpts.Format, len(plan.Pages), len(plan.Overflowing()), time.Since(start), err)
	if err != nil {
		return layout.Plan{}, false, err
	}

	if data, err := layout.MarshalPlan(plan); err == nil {
		r.store(ctx, "layout", cacheKey, data, cache.LayoutTTL)
	}
	return plan, false, nil
}

func (r *Runner) cachedPlan(ctx context.Context, key string) (layout.Plan, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return layout.Plan{}, false
	}
	plan, err := layout.UnmarshalPlan(data)
	if err != nil {
		// Unreadable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, "layout")
		return layout.Plan{}, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return plan, true
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc *sheet.Document, opts Options) (layout.Plan, error) {
	plan, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return plan, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Artifacts are keyed by plan and document, since sinks write box
// content as well as geometry.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, plan layout.Plan, doc *sheet.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	planData, err := layout.MarshalPlan(plan)
	if err != nil {
		return nil, false, fmt.Errorf("serialize plan for cache key: %w", err)
	}
	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash document: %w", err)
	}
	keyHash := cache.Hash(append(planData, docHash...))

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format)))
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
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	rendered, err := Render(plan, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(keyHash, opts.ArtifactKeyOpts(format)), data, cache.ArtifactTTL)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, plan layout.Plan, doc *sheet.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, plan, doc, opts)
	return artifacts, err
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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
