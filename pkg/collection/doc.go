// Package collection reads and writes collection documents and layout
// snapshots.
//
// # Collection Documents
//
// A collection document describes what a host supplies to the layout
// engine: the container width, the layout-wide configuration, and the
// source size of every item, grouped into sections. Documents are TOML or
// JSON:
//
//	width = 375
//
//	[layout]
//	columns = 2
//	column_spacing = 10
//	interitem_spacing = 10
//	header_height = 40
//
//	[[sections]]
//	name = "Featured"
//	header_height = 60
//	items = [[100, 50], [100, 100], [100, 25]]
//
// Every field of [layout] is optional and falls back to
// [waterfall.DefaultConfig]. Section fields are optional as well; a field
// set in a section overrides the layout-wide value for that section only.
// Each item is a [width, height] pair.
//
// A [Collection] is a [waterfall.SizeProvider], so it plugs directly into
// [waterfall.Input]:
//
//	c, err := collection.Read("photos.toml")
//	if err != nil {
//	    return err
//	}
//	l, err := waterfall.New(c.Config())
//	if err != nil {
//	    return err
//	}
//	l.Compute(c.Input())
//
// # Snapshots
//
// A [Snapshot] is the serializable result of a layout pass: the content
// size, every attribute in layout order, the sticky headers and the index
// buckets. Snapshots carry json and bson tags so they can be written to
// files, cached, returned over HTTP and stored in MongoDB unchanged.
package collection
