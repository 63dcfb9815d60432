package waterfall

import (
	"slices"

	"github.com/matzehuels/waterfall/pkg/geom"
)

// Layout computes and holds one waterfall layout. The zero value is not
// usable; create layouts with [New].
type Layout struct {
	cfg   Config
	dirty bool

	// State of the last pass. pass is the configuration it ran with, so
	// queries stay consistent even after UpdateConfiguration.
	computed    bool
	pass        Config
	width       float64
	store       store
	buckets     []geom.Rect
	cols        columns
	contentSize geom.Size
}

// New creates a layout with the given configuration. The layout needs a
// call to Compute before it answers queries.
func New(cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Layout{cfg: cfg.normalized(), dirty: true}, nil
}

// Config returns the current configuration.
func (l *Layout) Config() Config { return l.cfg }

// UpdateConfiguration replaces the configuration. It reports whether the
// configuration changed; a change marks the layout as needing a recompute.
// An invalid configuration is rejected and leaves the layout untouched.
func (l *Layout) UpdateConfiguration(cfg Config) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	cfg = cfg.normalized()
	if cfg == l.cfg {
		return false, nil
	}
	l.cfg = cfg
	l.dirty = true
	return true, nil
}

// NeedsRecompute reports whether the configuration changed since the last
// pass, or no pass ran yet.
func (l *Layout) NeedsRecompute() bool { return l.dirty || !l.computed }

// Compute runs a full placement pass and rebuilds every piece of derived
// state. It panics if the configuration is invalid, which can only happen
// on a Layout not created through New.
func (l *Layout) Compute(in Input) {
	l.cfg.mustValidate()
	cfg := l.cfg.normalized()

	st, cols := place(cfg, in)

	l.pass = cfg
	l.width = in.ContainerWidth
	l.store = st
	l.cols = cols
	l.buckets = buildIndex(st.flat, cfg.runLength(), cfg.Bucket)
	l.contentSize = geom.Size{}
	if len(in.ItemCounts) > 0 {
		l.contentSize = geom.NewSize(in.ContainerWidth, cols[0])
	}
	l.computed = true
	l.dirty = false
}

// ContentSize returns the container width and total content height of the
// last pass. It is zero when there are no sections.
func (l *Layout) ContentSize() geom.Size { return l.contentSize }

// SectionCount returns the number of sections in the last pass.
func (l *Layout) SectionCount() int { return len(l.store.sectionItems) }

// ItemCount returns the number of items laid out in section, or zero if
// the section is out of range.
func (l *Layout) ItemCount(section int) int {
	if section < 0 || section >= len(l.store.sectionItems) {
		return 0
	}
	return len(l.store.sectionItems[section])
}

// AttributeForItem returns the attribute of an item. It reports false when
// section or item is out of range.
func (l *Layout) AttributeForItem(section, item int) (Attribute, bool) {
	if section < 0 || section >= len(l.store.sectionItems) {
		return Attribute{}, false
	}
	items := l.store.sectionItems[section]
	if item < 0 || item >= len(items) {
		return Attribute{}, false
	}
	return items[item], true
}

// AttributeForSupplementary returns the header, footer or sticky header of
// a section. It reports false when the element was not placed because its
// height is not positive, or when kind is KindItem.
func (l *Layout) AttributeForSupplementary(kind Kind, section int) (Attribute, bool) {
	var m map[int]Attribute
	switch kind {
	case KindHeader:
		m = l.store.headers
	case KindFooter:
		m = l.store.footers
	case KindStickyHeader:
		m = l.store.sticky
	default:
		return Attribute{}, false
	}
	a, ok := m[section]
	return a, ok
}

// ShouldRecomputeOnBoundsChange reports whether a container resize to
// newBounds invalidates the layout. Column widths derive from the width
// alone, so height-only changes keep the current layout.
func (l *Layout) ShouldRecomputeOnBoundsChange(newBounds geom.Rect) bool {
	return !l.computed || newBounds.Width != l.width
}

// Attributes returns a copy of the flat attribute sequence in layout
// order. Sticky headers are not part of it.
func (l *Layout) Attributes() []Attribute { return slices.Clone(l.store.flat) }

// StickyHeaders returns a copy of the sticky header attributes ordered by
// section.
func (l *Layout) StickyHeaders() []Attribute {
	out := make([]Attribute, 0, len(l.store.sticky))
	for section := range l.store.sectionItems {
		if a, ok := l.store.sticky[section]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Buckets returns a copy of the index bucket rectangles.
func (l *Layout) Buckets() []geom.Rect { return slices.Clone(l.buckets) }

// ColumnOffsets returns a copy of the final column offsets.
func (l *Layout) ColumnOffsets() []float64 { return slices.Clone(l.cols) }

// RunLength returns the bucket run length used by the last pass.
func (l *Layout) RunLength() int { return l.pass.runLength() }
