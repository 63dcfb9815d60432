package waterfall

import "github.com/matzehuels/waterfall/pkg/geom"

// SizeProvider supplies the source size of every item. The width is
// advisory: the engine scales every item to the column width and keeps the
// aspect ratio.
type SizeProvider interface {
	SizeForItem(section, item int) geom.Size
}

// SizeFunc adapts a function to the SizeProvider interface.
type SizeFunc func(section, item int) geom.Size

// SizeForItem calls f(section, item).
func (f SizeFunc) SizeForItem(section, item int) geom.Size { return f(section, item) }

// Overrides holds optional per-section parameter callbacks. A nil slot, or a
// slot returning false, leaves the layout-wide default in place.
type Overrides struct {
	InteritemSpacing func(section int) (float64, bool)
	SectionInset     func(section int) (geom.Insets, bool)
	HeaderHeight     func(section int) (float64, bool)
	HeaderInset      func(section int) (geom.Insets, bool)
	FooterHeight     func(section int) (float64, bool)
	FooterInset      func(section int) (geom.Insets, bool)
}

// Input is everything the host supplies for one layout pass.
type Input struct {
	// ContainerWidth is the width of the scrolling container.
	ContainerWidth float64

	// ItemCounts holds the number of items per section. Its length is the
	// section count.
	ItemCounts []int

	// Sizes answers the source size of every (section, item) pair in range.
	// A nil provider lays every item out with zero height.
	Sizes SizeProvider

	Overrides Overrides
}

// SectionCount returns the number of sections.
func (in Input) SectionCount() int { return len(in.ItemCounts) }

func (in Input) sizeFor(section, item int) geom.Size {
	if in.Sizes == nil {
		return geom.Size{}
	}
	return in.Sizes.SizeForItem(section, item)
}

// Section holds the effective parameters for one section after overrides
// are applied.
type Section struct {
	InteritemSpacing float64
	Inset            geom.Insets
	HeaderHeight     float64
	HeaderInset      geom.Insets
	FooterHeight     float64
	FooterInset      geom.Insets
}

// ResolveSection returns the effective parameters for section: the
// override when the host supplies one, the layout default otherwise.
func (c Config) ResolveSection(section int, o Overrides) Section {
	return Section{
		InteritemSpacing: resolve(o.InteritemSpacing, section, c.InteritemSpacing),
		Inset:            resolve(o.SectionInset, section, c.SectionInset),
		HeaderHeight:     resolve(o.HeaderHeight, section, c.HeaderHeight),
		HeaderInset:      resolve(o.HeaderInset, section, c.HeaderInset),
		FooterHeight:     resolve(o.FooterHeight, section, c.FooterHeight),
		FooterInset:      resolve(o.FooterInset, section, c.FooterInset),
	}
}

func resolve[T any](fn func(int) (T, bool), section int, def T) T {
	if fn == nil {
		return def
	}
	if v, ok := fn(section); ok {
		return v
	}
	return def
}
