package collection

import (
	"math"
	"strconv"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// Collection is a decoded collection document.
type Collection struct {
	Width    float64   `json:"width" toml:"width" bson:"width"`
	Layout   Layout    `json:"layout" toml:"layout" bson:"layout"`
	Sections []Section `json:"sections" toml:"sections" bson:"sections"`
}

// Layout holds the layout-wide settings of a document. Nil fields keep the
// engine defaults.
type Layout struct {
	Columns            *int         `json:"columns,omitempty" toml:"columns,omitempty" bson:"columns,omitempty"`
	ColumnSpacing      *float64     `json:"column_spacing,omitempty" toml:"column_spacing,omitempty" bson:"column_spacing,omitempty"`
	InteritemSpacing   *float64     `json:"interitem_spacing,omitempty" toml:"interitem_spacing,omitempty" bson:"interitem_spacing,omitempty"`
	HeaderHeight       *float64     `json:"header_height,omitempty" toml:"header_height,omitempty" bson:"header_height,omitempty"`
	HeaderInset        *geom.Insets `json:"header_inset,omitempty" toml:"header_inset,omitempty" bson:"header_inset,omitempty"`
	FooterHeight       *float64     `json:"footer_height,omitempty" toml:"footer_height,omitempty" bson:"footer_height,omitempty"`
	FooterInset        *geom.Insets `json:"footer_inset,omitempty" toml:"footer_inset,omitempty" bson:"footer_inset,omitempty"`
	SectionInset       *geom.Insets `json:"section_inset,omitempty" toml:"section_inset,omitempty" bson:"section_inset,omitempty"`
	StickyHeaderHeight *float64     `json:"sticky_header_height,omitempty" toml:"sticky_header_height,omitempty" bson:"sticky_header_height,omitempty"`
	StickyHeaderInset  *geom.Insets `json:"sticky_header_inset,omitempty" toml:"sticky_header_inset,omitempty" bson:"sticky_header_inset,omitempty"`
	RunLength          *int         `json:"run_length,omitempty" toml:"run_length,omitempty" bson:"run_length,omitempty"`
	Bucket             string       `json:"bucket,omitempty" toml:"bucket,omitempty" bson:"bucket,omitempty"`
	Clamp              string       `json:"clamp,omitempty" toml:"clamp,omitempty" bson:"clamp,omitempty"`
}

// Section is one section of a document. Nil fields use the layout-wide
// value.
type Section struct {
	Name             string       `json:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`
	InteritemSpacing *float64     `json:"interitem_spacing,omitempty" toml:"interitem_spacing,omitempty" bson:"interitem_spacing,omitempty"`
	Inset            *geom.Insets `json:"inset,omitempty" toml:"inset,omitempty" bson:"inset,omitempty"`
	HeaderHeight     *float64     `json:"header_height,omitempty" toml:"header_height,omitempty" bson:"header_height,omitempty"`
	HeaderInset      *geom.Insets `json:"header_inset,omitempty" toml:"header_inset,omitempty" bson:"header_inset,omitempty"`
	FooterHeight     *float64     `json:"footer_height,omitempty" toml:"footer_height,omitempty" bson:"footer_height,omitempty"`
	FooterInset      *geom.Insets `json:"footer_inset,omitempty" toml:"footer_inset,omitempty" bson:"footer_inset,omitempty"`
	Items            [][]float64  `json:"items" toml:"items" bson:"items"`
}

// Validate checks the document for values the engine cannot lay out.
func (c *Collection) Validate() error {
	if !(c.Width > 0) || math.IsInf(c.Width, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "width must be a positive number, got %v", c.Width)
	}
	if err := c.Config().Validate(); err != nil {
		return err
	}
	for s, sec := range c.Sections {
		for i, item := range sec.Items {
			if len(item) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "section %d item %d: want [width, height], got %d values", s, i, len(item))
			}
		}
	}
	return nil
}

// Config returns the engine configuration: defaults overlaid with the
// document's [layout] table.
func (c *Collection) Config() waterfall.Config {
	cfg := waterfall.DefaultConfig()
	l := c.Layout
	set(&cfg.ColumnCount, l.Columns)
	set(&cfg.ColumnSpacing, l.ColumnSpacing)
	set(&cfg.InteritemSpacing, l.InteritemSpacing)
	set(&cfg.HeaderHeight, l.HeaderHeight)
	set(&cfg.HeaderInset, l.HeaderInset)
	set(&cfg.FooterHeight, l.FooterHeight)
	set(&cfg.FooterInset, l.FooterInset)
	set(&cfg.SectionInset, l.SectionInset)
	set(&cfg.StickyHeaderHeight, l.StickyHeaderHeight)
	set(&cfg.StickyHeaderInset, l.StickyHeaderInset)
	set(&cfg.RunLength, l.RunLength)
	if l.Bucket != "" {
		cfg.Bucket = waterfall.BucketMode(l.Bucket)
	}
	if l.Clamp != "" {
		cfg.Clamp = waterfall.ClampMode(l.Clamp)
	}
	return cfg
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// SizeForItem implements waterfall.SizeProvider. Out-of-range and
// malformed items have zero size.
func (c *Collection) SizeForItem(section, item int) geom.Size {
	if section < 0 || section >= len(c.Sections) {
		return geom.Size{}
	}
	items := c.Sections[section].Items
	if item < 0 || item >= len(items) || len(items[item]) != 2 {
		return geom.Size{}
	}
	return geom.NewSize(items[item][0], items[item][1])
}

// ItemCounts returns the number of items per section.
func (c *Collection) ItemCounts() []int {
	counts := make([]int, len(c.Sections))
	for i, s := range c.Sections {
		counts[i] = len(s.Items)
	}
	return counts
}

// ItemTotal returns the number of items across all sections.
func (c *Collection) ItemTotal() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Items)
	}
	return n
}

// Overrides returns the per-section overrides. A slot is populated only
// when at least one section sets the field.
func (c *Collection) Overrides() waterfall.Overrides {
	return waterfall.Overrides{
		InteritemSpacing: override(c.Sections, func(s Section) *float64 { return s.InteritemSpacing }),
		SectionInset:     override(c.Sections, func(s Section) *geom.Insets { return s.Inset }),
		HeaderHeight:     override(c.Sections, func(s Section) *float64 { return s.HeaderHeight }),
		HeaderInset:      override(c.Sections, func(s Section) *geom.Insets { return s.HeaderInset }),
		FooterHeight:     override(c.Sections, func(s Section) *float64 { return s.FooterHeight }),
		FooterInset:      override(c.Sections, func(s Section) *geom.Insets { return s.FooterInset }),
	}
}

func override[T any](sections []Section, field func(Section) *T) func(int) (T, bool) {
	found := false
	for _, s := range sections {
		if field(s) != nil {
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	return func(section int) (T, bool) {
		var zero T
		if section < 0 || section >= len(sections) {
			return zero, false
		}
		v := field(sections[section])
		if v == nil {
			return zero, false
		}
		return *v, true
	}
}

// Input returns the engine input for one pass over the document.
func (c *Collection) Input() waterfall.Input {
	return waterfall.Input{
		ContainerWidth: c.Width,
		ItemCounts:     c.ItemCounts(),
		Sizes:          c,
		Overrides:      c.Overrides(),
	}
}

// SectionName returns the display name of a section, falling back to its
// index.
func (c *Collection) SectionName(section int) string {
	if section >= 0 && section < len(c.Sections) && c.Sections[section].Name != "" {
		return c.Sections[section].Name
	}
	return "section " + strconv.Itoa(section)
}
