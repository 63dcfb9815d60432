// Package pipeline runs layout passes over collection documents with
// caching, logging and observability.
//
// The CLI and the HTTP API both go through a [Runner], so a layout computed
// by one is a cache hit for the other when they share a backend.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Compute(ctx, coll, pipeline.Options{Columns: 3})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Snapshot.ContentHeight, result.CacheInfo.LayoutHit)
//
// Viewport queries rebuild the engine from the document and return the
// visible attributes with pinned headers already repositioned:
//
//	q, err := runner.Query(ctx, coll, geom.NewRect(0, 400, 375, 812), 400, opts)
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterfall/pkg/cache"
	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// =============================================================================
// Options
// =============================================================================

// Options overrides document settings for one run. Zero values keep what
// the document says.
type Options struct {
	Width     float64 `json:"width,omitempty"`
	Columns   int     `json:"columns,omitempty"`
	Bucket    string  `json:"bucket,omitempty"`
	Clamp     string  `json:"clamp,omitempty"`
	RunLength int     `json:"run_length,omitempty"`

	// Refresh skips the cache lookup. The fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives this run's log lines. Nil uses the runner's logger.
	Logger *log.Logger `json:"-"`
}

// SetDefaults fills runtime defaults. fallback is used when no logger is
// set; a nil fallback discards output.
func (o *Options) SetDefaults(fallback *log.Logger) {
	if o.Logger == nil {
		o.Logger = fallback
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the overrides.
func (o *Options) Validate() error {
	if o.Width < 0 || math.IsNaN(o.Width) || math.IsInf(o.Width, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "width must be a positive number, got %v", o.Width)
	}
	if o.Columns < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be positive, got %d", o.Columns)
	}
	if o.RunLength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "run length must be positive, got %d", o.RunLength)
	}
	if _, err := waterfall.ParseBucketMode(o.Bucket); err != nil {
		return err
	}
	_, err := waterfall.ParseClampMode(o.Clamp)
	return err
}

// Apply returns a copy of c with the overrides applied. c is not modified.
func (o *Options) Apply(c *collection.Collection) *collection.Collection {
	out := *c
	if o.Width > 0 {
		out.Width = o.Width
	}
	if o.Columns > 0 {
		n := o.Columns
		out.Layout.Columns = &n
	}
	if o.RunLength > 0 {
		n := o.RunLength
		out.Layout.RunLength = &n
	}
	if o.Bucket != "" {
		out.Layout.Bucket = o.Bucket
	}
	if o.Clamp != "" {
		out.Layout.Clamp = o.Clamp
	}
	return &out
}

// layoutKeyOpts derives the cache key options from the effective
// configuration.
func layoutKeyOpts(c *collection.Collection) cache.LayoutKeyOpts {
	cfg := c.Config()
	bucket, _ := waterfall.ParseBucketMode(string(cfg.Bucket))
	clamp, _ := waterfall.ParseClampMode(string(cfg.Clamp))
	return cache.LayoutKeyOpts{
		Width:     c.Width,
		Columns:   cfg.ColumnCount,
		Bucket:    string(bucket),
		Clamp:     string(clamp),
		RunLength: cfg.RunLength,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result is the output of Runner.Compute.
type Result struct {
	Snapshot *collection.Snapshot

	// CollectionHash is the content hash of the effective document.
	CollectionHash string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds size and timing information for a pass.
type Stats struct {
	Sections   int
	Items      int
	Attributes int
	LayoutTime time.Duration
}

// CacheInfo reports whether the layout came from the cache.
type CacheInfo struct {
	LayoutHit bool
}

// QueryResult is the output of Runner.Query.
type QueryResult struct {
	Attributes []waterfall.Attribute
	QueryTime  time.Duration
}

// ValidateRect checks a query rectangle.
func ValidateRect(x, y, w, h float64) error {
	for _, v := range []float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidRect, "rect values must be finite")
		}
	}
	if w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidRect, "rect size must not be negative, got %vx%v", w, h)
	}
	return nil
}
