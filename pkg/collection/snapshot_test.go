package collection

import (
	"bytes"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

func computed(t *testing.T) *waterfall.Layout {
	t.Helper()
	c, err := Read(filepath.Join("testdata", "gallery.json"))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	l, err := waterfall.New(c.Config())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	l.Compute(c.Input())
	return l
}

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot(computed(t))

	if s.Width != 300 || s.ContentHeight != 267.5 {
		t.Errorf("size = %vx%v, want 300x267.5", s.Width, s.ContentHeight)
	}
	if s.Columns != 2 || s.Sections != 1 || s.RunLength != waterfall.DefaultRunLength {
		t.Errorf("snapshot header = %+v", s)
	}
	if s.ItemCount() != 5 || len(s.Attributes) != 5 {
		t.Errorf("ItemCount() = %d, attributes = %d", s.ItemCount(), len(s.Attributes))
	}
	if len(s.StickyHeaders) != 1 || s.StickyHeaders[0].Kind != "sticky_header" || s.StickyHeaders[0].Z != waterfall.ZIndexStickyHeader {
		t.Errorf("StickyHeaders = %+v", s.StickyHeaders)
	}
	if len(s.Buckets) != 1 {
		t.Errorf("Buckets = %v", s.Buckets)
	}
}

func TestRecordAttribute(t *testing.T) {
	a := waterfall.Attribute{
		Kind:    waterfall.KindFooter,
		Section: 2,
		Frame:   geom.NewRect(0, 10, 300, 20),
		ZIndex:  waterfall.ZIndexSupplementary,
	}
	r := NewRecord(a)
	if r.Kind != "footer" || r.Frame() != a.Frame {
		t.Errorf("NewRecord() = %+v", r)
	}
	back, err := r.Attribute()
	if err != nil || back != a {
		t.Errorf("Attribute() = %+v, %v; want %+v", back, err, a)
	}

	r.Kind = "banner"
	if _, err := r.Attribute(); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestSnapshotFile(t *testing.T) {
	s := NewSnapshot(computed(t))
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteSnapshotFile(s, path); err != nil {
		t.Fatalf("WriteSnapshotFile() error: %v", err)
	}
	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, s) {
		t.Errorf("snapshot changed across file round trip")
	}

	if _, err := ReadSnapshot(bytes.NewBufferString("[")); err == nil {
		t.Error("ReadSnapshot() should reject malformed JSON")
	}
}
