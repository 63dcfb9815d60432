// Package waterfall computes masonry ("waterfall") layouts and answers
// viewport range queries over them.
//
// # Overview
//
// Items of varying height are arranged into a fixed number of equal-width
// columns. Each item goes into the currently shortest column, so the
// columns grow at roughly the same rate. Items are grouped into sections;
// every section may carry a header, a footer and, when configured at the
// layout level, a sticky header that tracks the viewport while its section
// is on screen.
//
// A [Layout] owns one full pass of derived state:
//
//   - item attributes per section, for direct index lookup
//   - a flat, top-to-bottom sequence of headers, items and footers
//   - header, footer and sticky header maps keyed by section
//   - a union-rectangle index over the flat sequence
//
// All of it is rebuilt from scratch by [Layout.Compute]. Nothing is patched
// incrementally.
//
// # Placement
//
// Per section the engine resolves the effective [Section] parameters
// (a per-section [Overrides] value wins over the [Config] default), computes
//
//	itemWidth = floor((width - inset.Left - inset.Right - (columns-1)*columnSpacing) / columns)
//
// places the sticky header, the header, every item and the footer, and
// finally moves all columns to the section's bottom. Sections never
// interleave: each one starts on a common baseline below the tallest column
// of the previous section.
//
// Item heights preserve the source aspect ratio. A source size without area
// yields a zero-height item rather than an error.
//
// # Queries
//
// [Layout.AttributesIntersecting] scans only the index buckets that touch
// the query rectangle, then makes sure every section with a visible element
// also returns its pinned header (the sticky header when one is configured,
// otherwise the regular header). Pinned headers are moved to the top of the
// viewport but never past the bottom of their own section. Returned
// attributes are copies; queries never modify the layout.
//
// # Concurrency
//
// A Layout is not safe for concurrent mutation. Queries are read-only and
// may run concurrently with each other, but never while Compute or
// UpdateConfiguration is running. Hosts that share a Layout across
// goroutines must provide that exclusion themselves.
//
// # Example
//
//	l, err := waterfall.New(waterfall.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	l.Compute(waterfall.Input{
//	    ContainerWidth: 375,
//	    ItemCounts:     []int{len(photos)},
//	    Sizes: waterfall.SizeFunc(func(section, item int) geom.Size {
//	        return photos[item].Size
//	    }),
//	})
//	visible := l.AttributesIntersecting(geom.NewRect(0, scrollY, 375, 667))
package waterfall
