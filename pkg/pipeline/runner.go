package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterfall/pkg/cache"
	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/observability"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

const cacheKeyType = "layout"

// Runner executes layout passes with caching. It holds no per-run state,
// so one Runner can serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses DefaultKeyer and a nil logger uses log.Default().
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

// Build validates c and returns a computed engine for it.
func Build(c *collection.Collection) (*waterfall.Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	l, err := waterfall.New(c.Config())
	if err != nil {
		return nil, err
	}
	l.Compute(c.Input())
	return l, nil
}

// Compute lays out c and returns its snapshot. Results are cached by the
// content hash of the effective document.
func (r *Runner) Compute(ctx context.Context, c *collection.Collection, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	opts.SetDefaults(r.Logger)

	eff := opts.Apply(c)
	if err := eff.Validate(); err != nil {
		return nil, err
	}
	hash, err := cache.HashJSON(eff)
	if err != nil {
		return nil, fmt.Errorf("hash collection: %w", err)
	}
	key := r.Keyer.LayoutKey(hash, layoutKeyOpts(eff))

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, len(eff.Sections), eff.ItemTotal())
	start := time.Now()

	result := &Result{
		CollectionHash: hash,
		Stats:          Stats{Sections: len(eff.Sections), Items: eff.ItemTotal()},
	}

	if !opts.Refresh {
		if snap, ok := r.lookup(ctx, key, opts.Logger); ok {
			result.Snapshot = snap
			result.CacheInfo.LayoutHit = true
			result.Stats.Attributes = len(snap.Attributes)
			result.Stats.LayoutTime = time.Since(start)
			hooks.OnLayoutComplete(ctx, len(snap.Attributes), true, result.Stats.LayoutTime, nil)
			opts.Logger.Debug("layout cache hit", "key", key)
			return result, nil
		}
	}

	if err := ctx.Err(); err != nil {
		hooks.OnLayoutComplete(ctx, 0, false, time.Since(start), err)
		return nil, err
	}

	l, err := Build(eff)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, false, time.Since(start), err)
		return nil, err
	}
	result.Snapshot = collection.NewSnapshot(l)
	result.Stats.Attributes = len(result.Snapshot.Attributes)
	result.Stats.LayoutTime = time.Since(start)

	r.store(ctx, key, result.Snapshot, opts.Logger)

	hooks.OnLayoutComplete(ctx, result.Stats.Attributes, false, result.Stats.LayoutTime, nil)
	opts.Logger.Info("computed layout",
		"sections", result.Stats.Sections,
		"attributes", result.Stats.Attributes,
		"height", result.Snapshot.ContentHeight,
		"duration", result.Stats.LayoutTime)

	return result, nil
}

// Query returns the attributes intersecting rect for the effective
// document, with pinned headers placed for scrollY.
func (r *Runner) Query(ctx context.Context, c *collection.Collection, rect geom.Rect, scrollY float64, opts Options) (*QueryResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := ValidateRect(rect.X, rect.Y, rect.Width, rect.Height); err != nil {
		return nil, err
	}
	opts.SetDefaults(r.Logger)

	l, err := Build(opts.Apply(c))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	attrs := l.AttributesIntersectingAt(rect, scrollY)
	d := time.Since(start)

	observability.Layout().OnQuery(ctx, len(attrs), d)
	opts.Logger.Debug("queried layout", "rect", rect, "scroll", scrollY, "results", len(attrs), "duration", d)

	return &QueryResult{Attributes: attrs, QueryTime: d}, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string, logger *log.Logger) (*collection.Snapshot, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var snap collection.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return &snap, true
}

func (r *Runner) store(ctx context.Context, key string, snap *collection.Snapshot, logger *log.Logger) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.LayoutTTL); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}
