package geom

import "math"

// Rect is an axis-aligned rectangle. X and Y are the top-left corner.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewRect creates a Rect with the given origin and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MaxX returns the x-coordinate of the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the y-coordinate of the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// IsEmpty reports whether the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// WithY returns a copy of r moved vertically to y.
func (r Rect) WithY(y float64) Rect {
	r.Y = y
	return r
}

// Union returns the smallest rectangle containing both r and other.
// Unlike a pure area union, degenerate rectangles still contribute their
// edges, so the result always contains both inputs.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	right := math.Max(r.MaxX(), other.MaxX())
	bottom := math.Max(r.MaxY(), other.MaxY())
	return Rect{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Intersects reports whether r and other overlap. Touching edges do not
// count as overlap, except for degenerate rectangles (see package docs).
func (r Rect) Intersects(other Rect) bool {
	return spanOverlaps(r.X, r.MaxX(), other.X, other.MaxX()) &&
		spanOverlaps(r.Y, r.MaxY(), other.Y, other.MaxY())
}

// Contains reports whether other lies entirely inside r, edges included.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.MaxX() <= r.MaxX() && other.MaxY() <= r.MaxY()
}

// Inset returns r shrunk by the given insets.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Horizontal(),
		Height: r.Height - in.Vertical(),
	}
}

func spanOverlaps(aMin, aMax, bMin, bMax float64) bool {
	switch {
	case aMin == aMax:
		return bMin <= aMin && aMin < bMax
	case bMin == bMax:
		return aMin <= bMin && bMin < aMax
	}
	return aMin < bMax && bMin < aMax
}
