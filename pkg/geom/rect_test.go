package geom

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.MaxX() != 40 {
		t.Errorf("MaxX() = %v, want 40", r.MaxX())
	}
	if r.MaxY() != 60 {
		t.Errorf("MaxY() = %v, want 60", r.MaxY())
	}
	if got := r.Size(); got != NewSize(30, 40) {
		t.Errorf("Size() = %v, want 30x40", got)
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"positive", NewRect(0, 0, 10, 10), false},
		{"zero height", NewRect(0, 0, 10, 0), true},
		{"zero width", NewRect(0, 0, 0, 10), true},
		{"negative", NewRect(0, 0, -5, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	tests := map[string]struct {
		a, b Rect
		want Rect
	}{
		"disjoint": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(20, 30, 10, 10),
			want: NewRect(0, 0, 30, 40),
		},
		"contained": {
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(10, 10, 5, 5),
			want: NewRect(0, 0, 100, 100),
		},
		"degenerate keeps its edge": {
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(0, 50, 10, 0),
			want: NewRect(0, 0, 10, 50),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Union(tt.a); got != tt.want {
				t.Errorf("Union() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	tests := map[string]struct {
		a, b Rect
		want bool
	}{
		"overlap":             {NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		"touching edge":       {NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		"touching bottom":     {NewRect(0, 0, 10, 10), NewRect(0, 10, 10, 10), false},
		"disjoint":            {NewRect(0, 0, 10, 10), NewRect(50, 50, 10, 10), false},
		"contained":           {NewRect(0, 0, 100, 100), NewRect(10, 10, 1, 1), true},
		"zero height inside":  {NewRect(0, 0, 100, 100), NewRect(0, 50, 100, 0), true},
		"zero height at top":  {NewRect(0, 50, 100, 100), NewRect(0, 50, 100, 0), true},
		"zero height at edge": {NewRect(0, 0, 100, 50), NewRect(0, 50, 100, 0), false},
		"zero height outside": {NewRect(0, 0, 100, 50), NewRect(0, 80, 100, 0), false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 100)

	if !outer.Contains(NewRect(0, 0, 100, 100)) {
		t.Error("rect should contain itself")
	}
	if !outer.Contains(NewRect(10, 100, 20, 0)) {
		t.Error("rect should contain a degenerate rect on its bottom edge")
	}
	if outer.Contains(NewRect(90, 90, 20, 5)) {
		t.Error("rect should not contain an overhanging rect")
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 100, 50).Inset(Insets{Top: 5, Left: 10, Bottom: 15, Right: 20})
	want := NewRect(10, 5, 70, 30)
	if r != want {
		t.Errorf("Inset() = %v, want %v", r, want)
	}
}

func TestRectWithY(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	moved := r.WithY(9)
	if moved != NewRect(1, 9, 3, 4) {
		t.Errorf("WithY() = %v", moved)
	}
	if r.Y != 2 {
		t.Error("WithY must not mutate the receiver")
	}
}

func TestInsets(t *testing.T) {
	in := Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}
	if in.Horizontal() != 6 {
		t.Errorf("Horizontal() = %v, want 6", in.Horizontal())
	}
	if in.Vertical() != 4 {
		t.Errorf("Vertical() = %v, want 4", in.Vertical())
	}
	if in.IsZero() {
		t.Error("IsZero() = true, want false")
	}
	if !(Insets{}).IsZero() {
		t.Error("zero Insets should report IsZero")
	}
	if InsetsAll(3) != (Insets{Top: 3, Left: 3, Bottom: 3, Right: 3}) {
		t.Error("InsetsAll(3) mismatch")
	}
}

func TestSizeHasArea(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{NewSize(100, 50), true},
		{NewSize(0, 50), false},
		{NewSize(100, 0), false},
		{NewSize(-1, 50), false},
	}

	for _, tt := range tests {
		if got := tt.size.HasArea(); got != tt.want {
			t.Errorf("%v.HasArea() = %v, want %v", tt.size, got, tt.want)
		}
	}
}
