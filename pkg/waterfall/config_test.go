package waterfall

import (
	"math"
	"testing"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"single column", func(c *Config) { c.ColumnCount = 1 }, false},
		{"empty modes", func(c *Config) { c.Bucket, c.Clamp = "", "" }, false},
		{"zero columns", func(c *Config) { c.ColumnCount = 0 }, true},
		{"negative columns", func(c *Config) { c.ColumnCount = -2 }, true},
		{"negative run length", func(c *Config) { c.RunLength = -1 }, true},
		{"unknown bucket", func(c *Config) { c.Bucket = "grid" }, true},
		{"unknown clamp", func(c *Config) { c.Clamp = "none" }, true},
		{"nan spacing", func(c *Config) { c.ColumnSpacing = math.NaN() }, true},
		{"inf header", func(c *Config) { c.HeaderHeight = math.Inf(1) }, true},
		{"max columns", func(c *Config) { c.ColumnCount = MaxColumnCount }, false},
		{"too many columns", func(c *Config) { c.ColumnCount = MaxColumnCount + 1 }, true},
		{"huge columns", func(c *Config) { c.ColumnCount = 1 << 30 }, true},
		{"nan section inset", func(c *Config) { c.SectionInset.Top = math.NaN() }, true},
		{"inf header inset", func(c *Config) { c.HeaderInset.Left = math.Inf(-1) }, true},
		{"inf footer inset", func(c *Config) { c.FooterInset.Bottom = math.Inf(1) }, true},
		{"nan sticky inset", func(c *Config) { c.StickyHeaderInset.Right = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseBucketMode(""); err != nil || m != BucketSpan {
		t.Errorf("ParseBucketMode(\"\") = %q, %v", m, err)
	}
	if m, err := ParseBucketMode("endpoints"); err != nil || m != BucketEndpoints {
		t.Errorf("ParseBucketMode(endpoints) = %q, %v", m, err)
	}
	if _, err := ParseBucketMode("SPAN"); err == nil {
		t.Error("ParseBucketMode should be case-sensitive")
	}
	if m, err := ParseClampMode("section"); err != nil || m != ClampSection {
		t.Errorf("ParseClampMode(section) = %q, %v", m, err)
	}
	if _, err := ParseClampMode("sticky"); err == nil {
		t.Error("ParseClampMode(sticky) should fail")
	}
}

func TestItemWidth(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		spacing float64
		width   float64
		inset   geom.Insets
		want    float64
	}{
		{"two columns", 2, 10, 300, geom.Insets{}, 145},
		{"floors", 3, 10, 322, geom.Insets{}, 100},
		{"insets", 2, 10, 300, geom.Insets{Left: 10, Right: 10}, 135},
		{"single column", 1, 10, 300, geom.Insets{}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ColumnCount = tt.columns
			cfg.ColumnSpacing = tt.spacing
			if got := cfg.ItemWidth(tt.width, tt.inset); got != tt.want {
				t.Errorf("ItemWidth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HeaderHeight = 40
	cfg.FooterHeight = 20
	cfg.SectionInset = geom.InsetsAll(5)

	o := Overrides{
		HeaderHeight: func(section int) (float64, bool) {
			if section == 1 {
				return 0, true
			}
			return 0, false
		},
		SectionInset: func(section int) (geom.Insets, bool) {
			return geom.InsetsAll(float64(section)), section > 0
		},
		InteritemSpacing: func(int) (float64, bool) { return 4, true },
	}

	s0 := cfg.ResolveSection(0, o)
	if s0.HeaderHeight != 40 {
		t.Errorf("section 0 header = %v, want default 40", s0.HeaderHeight)
	}
	if s0.Inset != geom.InsetsAll(5) {
		t.Errorf("section 0 inset = %v, want default", s0.Inset)
	}
	if s0.InteritemSpacing != 4 {
		t.Errorf("section 0 spacing = %v, want override 4", s0.InteritemSpacing)
	}
	if s0.FooterHeight != 20 {
		t.Errorf("section 0 footer = %v, want default 20", s0.FooterHeight)
	}

	s1 := cfg.ResolveSection(1, o)
	if s1.HeaderHeight != 0 {
		t.Errorf("section 1 header = %v, want override 0", s1.HeaderHeight)
	}
	if s1.Inset != geom.InsetsAll(1) {
		t.Errorf("section 1 inset = %v, want override", s1.Inset)
	}

	if got := cfg.ResolveSection(3, Overrides{}); got.HeaderHeight != 40 || got.InteritemSpacing != DefaultInteritemSpacing {
		t.Errorf("empty overrides should resolve to defaults, got %+v", got)
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{KindItem, KindHeader, KindFooter, KindStickyHeader} {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) error: %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), parsed, k)
		}
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42).String() = %q", Kind(42).String())
	}
	if _, err := ParseKind("cell"); err == nil {
		t.Error("ParseKind(cell) should fail")
	}
}
