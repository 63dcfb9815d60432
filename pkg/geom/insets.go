package geom

// Insets holds spacing on the four sides of a box.
type Insets struct {
	Top    float64 `json:"top" toml:"top" bson:"top"`
	Left   float64 `json:"left" toml:"left" bson:"left"`
	Bottom float64 `json:"bottom" toml:"bottom" bson:"bottom"`
	Right  float64 `json:"right" toml:"right" bson:"right"`
}

// InsetsAll creates Insets with the same value on all sides.
func InsetsAll(v float64) Insets {
	return Insets{Top: v, Left: v, Bottom: v, Right: v}
}

// Horizontal returns Left + Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// IsZero reports whether every side is zero.
func (in Insets) IsZero() bool {
	return in.Top == 0 && in.Left == 0 && in.Bottom == 0 && in.Right == 0
}
