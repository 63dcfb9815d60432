package waterfall

import (
	"fmt"
	"math"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
)

// Default values used by [DefaultConfig].
const (
	DefaultColumnCount      = 2
	DefaultColumnSpacing    = 10.0
	DefaultInteritemSpacing = 10.0

	// DefaultRunLength is how many consecutive attributes share one index
	// bucket.
	DefaultRunLength = 20

	// MaxColumnCount bounds ColumnCount. Column state is allocated per pass
	// and scanned once per item.
	MaxColumnCount = 1024
)

// BucketMode selects how an index bucket rectangle is derived from its run
// of attributes.
type BucketMode string

const (
	// BucketSpan unions every frame in the run. The bucket always covers
	// each of its frames.
	BucketSpan BucketMode = "span"

	// BucketEndpoints unions only the first and last frame of the run,
	// the classic collection view waterfall index. It is cheaper but can
	// miss a mid-run frame that extends below or beside both endpoints.
	BucketEndpoints BucketMode = "endpoints"
)

// ClampMode selects how pinned headers follow the scroll offset.
type ClampMode string

const (
	// ClampViewport pins the header to the viewport top, never below the
	// bottom of its section's content.
	ClampViewport ClampMode = "viewport"

	// ClampSection additionally keeps the header from rising above its
	// section's top edge minus its own height.
	ClampSection ClampMode = "section"
)

// ParseBucketMode parses a bucket mode name. The empty string selects the
// default.
func ParseBucketMode(s string) (BucketMode, error) {
	switch BucketMode(s) {
	case "":
		return BucketSpan, nil
	case BucketSpan, BucketEndpoints:
		return BucketMode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown bucket mode %q (want span or endpoints)", s)
}

// ParseClampMode parses a clamp mode name. The empty string selects the
// default.
func ParseClampMode(s string) (ClampMode, error) {
	switch ClampMode(s) {
	case "":
		return ClampViewport, nil
	case ClampViewport, ClampSection:
		return ClampMode(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown clamp mode %q (want viewport or section)", s)
}

// Config holds the layout-wide parameters. Per-section values can be
// overridden through [Overrides]; sticky header settings are layout-wide
// only.
//
// Config is a comparable value: two configs are equal exactly when every
// field is equal, which is what [Layout.UpdateConfiguration] relies on.
type Config struct {
	ColumnCount      int
	ColumnSpacing    float64
	InteritemSpacing float64

	HeaderHeight float64
	HeaderInset  geom.Insets
	FooterHeight float64
	FooterInset  geom.Insets
	SectionInset geom.Insets

	StickyHeaderHeight float64
	StickyHeaderInset  geom.Insets

	// RunLength is the number of attributes per index bucket.
	// Zero selects DefaultRunLength.
	RunLength int
	Bucket    BucketMode
	Clamp     ClampMode
}

// DefaultConfig returns a two-column configuration with 10pt spacing and no
// headers or footers.
func DefaultConfig() Config {
	return Config{
		ColumnCount:      DefaultColumnCount,
		ColumnSpacing:    DefaultColumnSpacing,
		InteritemSpacing: DefaultInteritemSpacing,
		RunLength:        DefaultRunLength,
		Bucket:           BucketSpan,
		Clamp:            ClampViewport,
	}
}

// Validate reports configuration errors: a column count outside
// [1, MaxColumnCount], unknown modes and non-finite lengths.
func (c Config) Validate() error {
	if c.ColumnCount < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "column count must be greater than 0, got %d", c.ColumnCount)
	}
	if c.ColumnCount > MaxColumnCount {
		return errors.New(errors.ErrCodeInvalidConfig, "column count must be at most %d, got %d", MaxColumnCount, c.ColumnCount)
	}
	if c.RunLength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "run length must not be negative, got %d", c.RunLength)
	}
	if _, err := ParseBucketMode(string(c.Bucket)); err != nil {
		return err
	}
	if _, err := ParseClampMode(string(c.Clamp)); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"column spacing":       c.ColumnSpacing,
		"interitem spacing":    c.InteritemSpacing,
		"header height":        c.HeaderHeight,
		"footer height":        c.FooterHeight,
		"sticky header height": c.StickyHeaderHeight,
	} {
		if !finite(v) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite", name)
		}
	}
	for name, in := range map[string]geom.Insets{
		"header inset":        c.HeaderInset,
		"footer inset":        c.FooterInset,
		"section inset":       c.SectionInset,
		"sticky header inset": c.StickyHeaderInset,
	} {
		if !finite(in.Top) || !finite(in.Left) || !finite(in.Bottom) || !finite(in.Right) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite", name)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// runLength returns the effective bucket run length.
func (c Config) runLength() int {
	if c.RunLength == 0 {
		return DefaultRunLength
	}
	return c.RunLength
}

// normalized fills zero-valued mode fields with their defaults.
func (c Config) normalized() Config {
	c.Bucket, _ = ParseBucketMode(string(c.Bucket))
	c.Clamp, _ = ParseClampMode(string(c.Clamp))
	if c.RunLength == 0 {
		c.RunLength = DefaultRunLength
	}
	return c
}

// sticky reports whether sticky headers are enabled.
func (c Config) sticky() bool { return c.StickyHeaderHeight > 0 }

// mustValidate panics on an invalid configuration. It guards Compute on a
// zero-value Layout, which bypasses New.
func (c Config) mustValidate() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("waterfall: %v", err))
	}
}
