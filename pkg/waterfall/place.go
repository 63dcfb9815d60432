package waterfall

import (
	"math"

	"github.com/matzehuels/waterfall/pkg/geom"
)

// store is the attribute set produced by one placement pass.
type store struct {
	sectionItems [][]Attribute
	flat         []Attribute
	headers      map[int]Attribute
	footers      map[int]Attribute
	sticky       map[int]Attribute
}

func newStore(sections int) store {
	return store{
		sectionItems: make([][]Attribute, 0, sections),
		headers:      make(map[int]Attribute),
		footers:      make(map[int]Attribute),
		sticky:       make(map[int]Attribute),
	}
}

// placer runs one full placement pass.
type placer struct {
	cfg  Config
	in   Input
	cols columns
	top  float64
	out  store
}

func place(cfg Config, in Input) (store, columns) {
	p := &placer{
		cfg:  cfg,
		in:   in,
		cols: newColumns(cfg.ColumnCount),
		out:  newStore(in.SectionCount()),
	}
	for section := range in.ItemCounts {
		p.section(section)
	}
	return p.out, p.cols
}

// ItemWidth returns the column width for a section with the given inset.
func (c Config) ItemWidth(containerWidth float64, inset geom.Insets) float64 {
	available := containerWidth - inset.Horizontal()
	gaps := float64(c.ColumnCount-1) * c.ColumnSpacing
	return math.Floor((available - gaps) / float64(c.ColumnCount))
}

func (p *placer) section(section int) {
	s := p.cfg.ResolveSection(section, p.in.Overrides)
	width := p.in.ContainerWidth
	itemWidth := p.cfg.ItemWidth(width, s.Inset)

	if p.cfg.sticky() {
		in := p.cfg.StickyHeaderInset
		a := Attribute{
			Kind:    KindStickyHeader,
			Section: section,
			Frame:   geom.NewRect(in.Left, p.top, width-in.Horizontal(), p.cfg.StickyHeaderHeight),
			ZIndex:  ZIndexStickyHeader,
		}
		p.out.sticky[section] = a
		p.top = a.Frame.MaxY() + in.Bottom
	}

	p.top += s.HeaderInset.Top
	if s.HeaderHeight > 0 {
		a := p.supplementary(KindHeader, section, s.HeaderInset, s.HeaderHeight)
		p.out.headers[section] = a
		p.top = a.Frame.MaxY() + s.HeaderInset.Bottom
	}

	p.top += s.Inset.Top
	p.cols.reset(p.top)

	count := p.in.ItemCounts[section]
	items := make([]Attribute, 0, max(count, 0))
	for item := 0; item < count; item++ {
		col := p.cols.shortest()
		x := s.Inset.Left + float64(col)*(itemWidth+p.cfg.ColumnSpacing)
		a := Attribute{
			Kind:    KindItem,
			Section: section,
			Item:    item,
			Frame:   geom.NewRect(x, p.cols[col], itemWidth, scaledHeight(p.in.sizeFor(section, item), itemWidth)),
			ZIndex:  ZIndexItem,
		}
		items = append(items, a)
		p.out.flat = append(p.out.flat, a)
		p.cols[col] = a.Frame.MaxY() + s.InteritemSpacing
	}
	p.out.sectionItems = append(p.out.sectionItems, items)

	p.top = p.cols[p.cols.longest()] - s.InteritemSpacing + s.Inset.Bottom

	p.top += s.FooterInset.Top
	if s.FooterHeight > 0 {
		a := p.supplementary(KindFooter, section, s.FooterInset, s.FooterHeight)
		p.out.footers[section] = a
		p.top = a.Frame.MaxY() + s.FooterInset.Bottom
	}

	p.cols.reset(p.top)
}

// supplementary places a full-width header or footer at the cursor and
// appends it to the flat sequence.
func (p *placer) supplementary(kind Kind, section int, in geom.Insets, height float64) Attribute {
	a := Attribute{
		Kind:    kind,
		Section: section,
		Frame:   geom.NewRect(in.Left, p.top, p.in.ContainerWidth-in.Horizontal(), height),
		ZIndex:  ZIndexSupplementary,
	}
	p.out.flat = append(p.out.flat, a)
	return a
}

// scaledHeight keeps the source aspect ratio at the given width. Sources
// without area collapse to zero height.
func scaledHeight(src geom.Size, width float64) float64 {
	if !src.HasArea() {
		return 0
	}
	return src.Height * width / src.Width
}
