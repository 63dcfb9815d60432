package geom

// Size is a width/height pair.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// NewSize creates a Size.
func NewSize(width, height float64) Size { return Size{Width: width, Height: height} }

// HasArea reports whether both dimensions are positive.
func (s Size) HasArea() bool { return s.Width > 0 && s.Height > 0 }

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }
