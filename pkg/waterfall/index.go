package waterfall

import "github.com/matzehuels/waterfall/pkg/geom"

// buildIndex groups the flat attribute sequence into runs of runLength and
// returns one bounding rectangle per run. The runs partition the sequence,
// so the result has ceil(len(flat)/runLength) entries.
func buildIndex(flat []Attribute, runLength int, mode BucketMode) []geom.Rect {
	if len(flat) == 0 {
		return nil
	}
	buckets := make([]geom.Rect, 0, (len(flat)+runLength-1)/runLength)
	for start := 0; start < len(flat); start += runLength {
		last := min(start+runLength, len(flat)) - 1
		bounds := flat[start].Frame.Union(flat[last].Frame)
		if mode == BucketSpan {
			for _, a := range flat[start : last+1] {
				bounds = bounds.Union(a.Frame)
			}
		}
		buckets = append(buckets, bounds)
	}
	return buckets
}

// bucketRange returns the first and last bucket intersecting rect, or
// ok=false when none do.
func bucketRange(buckets []geom.Rect, rect geom.Rect) (first, last int, ok bool) {
	first = -1
	for i, b := range buckets {
		if b.Intersects(rect) {
			first = i
			break
		}
	}
	if first < 0 {
		return 0, 0, false
	}
	last = first
	for i := len(buckets) - 1; i > first; i-- {
		if buckets[i].Intersects(rect) {
			last = i
			break
		}
	}
	return first, last, true
}
