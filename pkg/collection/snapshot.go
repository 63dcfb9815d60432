package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// Record is the serialized form of one attribute.
type Record struct {
	Kind    string  `json:"kind" bson:"kind"`
	Section int     `json:"section" bson:"section"`
	Item    int     `json:"item" bson:"item"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Z       int     `json:"z" bson:"z"`
}

// NewRecord converts an attribute.
func NewRecord(a waterfall.Attribute) Record {
	return Record{
		Kind:    a.Kind.String(),
		Section: a.Section,
		Item:    a.Item,
		X:       a.Frame.X,
		Y:       a.Frame.Y,
		Width:   a.Frame.Width,
		Height:  a.Frame.Height,
		Z:       a.ZIndex,
	}
}

// Records converts a list of attributes.
func Records(attrs []waterfall.Attribute) []Record {
	out := make([]Record, len(attrs))
	for i, a := range attrs {
		out[i] = NewRecord(a)
	}
	return out
}

// Attribute converts a record back into an attribute.
func (r Record) Attribute() (waterfall.Attribute, error) {
	kind, err := waterfall.ParseKind(r.Kind)
	if err != nil {
		return waterfall.Attribute{}, err
	}
	return waterfall.Attribute{
		Kind:    kind,
		Section: r.Section,
		Item:    r.Item,
		Frame:   geom.NewRect(r.X, r.Y, r.Width, r.Height),
		ZIndex:  r.Z,
	}, nil
}

// Frame returns the record's rectangle.
func (r Record) Frame() geom.Rect { return geom.NewRect(r.X, r.Y, r.Width, r.Height) }

// Snapshot is the serializable result of one layout pass.
type Snapshot struct {
	Width         float64     `json:"width" bson:"width"`
	ContentHeight float64     `json:"content_height" bson:"content_height"`
	Columns       int         `json:"columns" bson:"columns"`
	Sections      int         `json:"sections" bson:"sections"`
	RunLength     int         `json:"run_length" bson:"run_length"`
	Attributes    []Record    `json:"attributes" bson:"attributes"`
	StickyHeaders []Record    `json:"sticky_headers,omitempty" bson:"sticky_headers,omitempty"`
	Buckets       []geom.Rect `json:"buckets" bson:"buckets"`
}

// NewSnapshot captures the state of a computed layout.
func NewSnapshot(l *waterfall.Layout) *Snapshot {
	size := l.ContentSize()
	return &Snapshot{
		Width:         size.Width,
		ContentHeight: size.Height,
		Columns:       len(l.ColumnOffsets()),
		Sections:      l.SectionCount(),
		RunLength:     l.RunLength(),
		Attributes:    Records(l.Attributes()),
		StickyHeaders: Records(l.StickyHeaders()),
		Buckets:       l.Buckets(),
	}
}

// ItemCount returns the number of item records.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, r := range s.Attributes {
		if r.Kind == waterfall.KindItem.String() {
			n++
		}
	}
	return n
}

// WriteSnapshot encodes s as indented JSON.
func WriteSnapshot(s *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot from r.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &s, nil
}

// WriteSnapshotFile writes s to a JSON file at path.
func WriteSnapshotFile(s *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSnapshot(s, f)
}

// ReadSnapshotFile reads a JSON snapshot from path.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}
