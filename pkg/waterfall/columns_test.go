package waterfall

import "testing"

func TestColumnsShortest(t *testing.T) {
	tests := []struct {
		name string
		cols columns
		want int
	}{
		{"single", columns{5}, 0},
		{"all zero", columns{0, 0, 0}, 0},
		{"tie keeps lowest", columns{10, 5, 5}, 1},
		{"last", columns{10, 9, 8}, 2},
		{"first", columns{1, 9, 8}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cols.shortest(); got != tt.want {
				t.Errorf("shortest() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnsLongest(t *testing.T) {
	tests := []struct {
		name string
		cols columns
		want int
	}{
		{"all zero", columns{0, 0, 0}, 0},
		{"tie keeps earliest", columns{5, 10, 10}, 1},
		{"last", columns{1, 2, 3}, 2},
		{"negative only", columns{-5, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cols.longest(); got != tt.want {
				t.Errorf("longest() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnsReset(t *testing.T) {
	c := newColumns(3)
	c[1] = 40
	c.reset(12.5)
	for i, h := range c {
		if h != 12.5 {
			t.Errorf("column %d = %v, want 12.5", i, h)
		}
	}
}
