package waterfall

import (
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
)

// Kind identifies the element an attribute describes.
type Kind int

const (
	KindItem Kind = iota
	KindHeader
	KindFooter
	KindStickyHeader
)

// Stacking order per element kind.
const (
	ZIndexItem          = 0
	ZIndexSupplementary = 512
	ZIndexStickyHeader  = 1024
)

var kindNames = [...]string{
	KindItem:         "item",
	KindHeader:       "header",
	KindFooter:       "footer",
	KindStickyHeader: "sticky_header",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind parses a wire name produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown element kind %q", s)
}

// Attribute places one element. Item is the item index for KindItem and
// zero for supplementary elements.
type Attribute struct {
	Kind    Kind
	Section int
	Item    int
	Frame   geom.Rect
	ZIndex  int
}

// IsSupplementary reports whether the attribute is a header, footer or
// sticky header.
func (a Attribute) IsSupplementary() bool { return a.Kind != KindItem }
