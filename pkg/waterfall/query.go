package waterfall

import (
	"math"

	"github.com/matzehuels/waterfall/pkg/geom"
)

// AttributesIntersecting returns every attribute whose frame intersects
// rect, plus the pinned header of every section with a visible element.
// The top of rect is used as the scroll offset for pinning.
func (l *Layout) AttributesIntersecting(rect geom.Rect) []Attribute {
	return l.AttributesIntersectingAt(rect, rect.Y)
}

// AttributesIntersectingAt is AttributesIntersecting with an explicit
// vertical scroll offset for pinned headers.
//
// The result lists matching attributes in layout order followed by headers
// added for their sections. Pinned headers carry their repositioned frame.
func (l *Layout) AttributesIntersectingAt(rect geom.Rect, scrollY float64) []Attribute {
	first, last, ok := bucketRange(l.buckets, rect)
	if !ok {
		return nil
	}

	flat := l.store.flat
	runLength := l.pass.runLength()
	begin := first * runLength
	end := min((last+1)*runLength, len(flat))

	pinned := l.pinnedKind()
	var (
		out      []Attribute
		sections []int
		visible  = make(map[int]bool)
		present  = make(map[int]bool)
	)
	for _, a := range flat[begin:end] {
		if !a.Frame.Intersects(rect) {
			continue
		}
		out = append(out, a)
		if !visible[a.Section] {
			visible[a.Section] = true
			sections = append(sections, a.Section)
		}
		if a.Kind == pinned {
			present[a.Section] = true
		}
	}

	for _, section := range sections {
		if present[section] {
			continue
		}
		if h, ok := l.AttributeForSupplementary(pinned, section); ok {
			out = append(out, h)
			present[section] = true
		}
	}

	for i := range out {
		if out[i].Kind == pinned {
			out[i].Frame = out[i].Frame.WithY(l.pinnedTop(out[i], scrollY))
		}
	}
	return out
}

// pinnedKind is the header kind that follows the viewport: the sticky
// header when the last pass placed them, the regular header otherwise.
func (l *Layout) pinnedKind() Kind {
	if l.pass.sticky() {
		return KindStickyHeader
	}
	return KindHeader
}

// pinnedTop returns the clamped top edge of a pinned header.
func (l *Layout) pinnedTop(h Attribute, scrollY float64) float64 {
	height := h.Frame.Height
	upper := l.sectionBottom(h) - height
	lower := 0.0
	if l.pass.Clamp == ClampSection {
		lower = l.sectionTop(h) - height
	}
	return math.Min(math.Max(scrollY, lower), upper)
}

// sectionBottom is the bottom edge of the section's last element: the
// footer if there is one, else the last item, else the regular header,
// else the pinned header itself.
func (l *Layout) sectionBottom(h Attribute) float64 {
	section := h.Section
	if f, ok := l.store.footers[section]; ok {
		return f.Frame.MaxY()
	}
	if items := l.store.sectionItems[section]; len(items) > 0 {
		return items[len(items)-1].Frame.MaxY()
	}
	if hd, ok := l.store.headers[section]; ok {
		return hd.Frame.MaxY()
	}
	return h.Frame.MaxY()
}

// sectionTop is the top edge of the section's first content element: the
// regular header if there is one, else the first item, else the bottom of
// the pinned header so that it stays in place.
func (l *Layout) sectionTop(h Attribute) float64 {
	section := h.Section
	if hd, ok := l.store.headers[section]; ok {
		return hd.Frame.Y
	}
	if items := l.store.sectionItems[section]; len(items) > 0 {
		return items[0].Frame.Y
	}
	return h.Frame.MaxY()
}
