package waterfall

// columns holds the current bottom offset of every column.
type columns []float64

func newColumns(n int) columns { return make(columns, n) }

// shortest returns the index of the lowest offset; ties go to the lowest
// index.
func (c columns) shortest() int {
	idx := 0
	for i := 1; i < len(c); i++ {
		if c[i] < c[idx] {
			idx = i
		}
	}
	return idx
}

// longest returns the index of the highest offset. The running maximum
// starts at zero and only moves on a strictly greater value, so ties keep
// the earliest column and all-zero columns report index 0.
func (c columns) longest() int {
	idx := 0
	var height float64
	for i, h := range c {
		if h > height {
			height = h
			idx = i
		}
	}
	return idx
}

// reset moves every column to top.
func (c columns) reset(top float64) {
	for i := range c {
		c[i] = top
	}
}
