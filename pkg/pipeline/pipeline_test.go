package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waterfall/pkg/cache"
	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/observability"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

func gallery() *collection.Collection {
	header := 40.0
	return &collection.Collection{
		Width:  300,
		Layout: collection.Layout{HeaderHeight: &header},
		Sections: []collection.Section{
			{Name: "a", Items: [][]float64{{100, 100}, {100, 100}, {100, 100}, {100, 100}}},
		},
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero value", Options{}, ""},
		{"all set", Options{Width: 320, Columns: 3, Bucket: "endpoints", Clamp: "section", RunLength: 8}, ""},
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidInput},
		{"negative columns", Options{Columns: -2}, errors.ErrCodeInvalidConfig},
		{"negative run length", Options{RunLength: -1}, errors.ErrCodeInvalidConfig},
		{"bad bucket", Options{Bucket: "grid"}, errors.ErrCodeInvalidConfig},
		{"bad clamp", Options{Clamp: "top"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (%v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	c := gallery()
	opts := Options{Width: 430, Columns: 4, Bucket: "endpoints"}
	eff := opts.Apply(c)

	if c.Width != 300 || c.Layout.Columns != nil || c.Layout.Bucket != "" {
		t.Error("Apply must not modify its argument")
	}
	cfg := eff.Config()
	if eff.Width != 430 || cfg.ColumnCount != 4 || cfg.Bucket != waterfall.BucketEndpoints {
		t.Errorf("effective = width %v, %+v", eff.Width, cfg)
	}
	if cfg.HeaderHeight != 40 {
		t.Errorf("document settings should survive, header = %v", cfg.HeaderHeight)
	}
}

func TestValidateRect(t *testing.T) {
	if err := ValidateRect(0, -20, 300, 0); err != nil {
		t.Errorf("ValidateRect() error: %v", err)
	}
	if err := ValidateRect(0, 0, -1, 10); !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Errorf("negative width: err = %v", err)
	}
}

func TestRunnerComputeCaches(t *testing.T) {
	ctx := context.Background()
	mem, _ := cache.NewMemoryCache(16)
	r := NewRunner(mem, nil, nil)
	defer r.Close()

	first, err := r.Compute(ctx, gallery(), Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit {
		t.Error("first run should miss")
	}
	if first.Snapshot.ContentHeight != 340 || first.Stats.Attributes != 5 {
		t.Errorf("snapshot = height %v, %d attributes", first.Snapshot.ContentHeight, first.Stats.Attributes)
	}

	second, err := r.Compute(ctx, gallery(), Options{})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit")
	}
	if second.CollectionHash != first.CollectionHash || second.Snapshot.ContentHeight != 340 {
		t.Errorf("cached result differs: %+v", second)
	}

	refreshed, _ := r.Compute(ctx, gallery(), Options{Refresh: true})
	if refreshed.CacheInfo.LayoutHit {
		t.Error("refresh should bypass the cache")
	}

	wider, _ := r.Compute(ctx, gallery(), Options{Columns: 3})
	if wider.CacheInfo.LayoutHit {
		t.Error("changed options should miss")
	}
}

func TestRunnerComputeErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	if _, err := r.Compute(ctx, gallery(), Options{Columns: -1}); err == nil {
		t.Error("invalid options should fail")
	}

	bad := gallery()
	bad.Width = 0
	if _, err := r.Compute(ctx, bad, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero width: err = %v", err)
	}

	if _, err := r.Compute(ctx, gallery(), Options{Columns: 100000}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("too many columns: err = %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Compute(cancelled, gallery(), Options{}); err != context.Canceled {
		t.Errorf("cancelled context: err = %v", err)
	}
}

func TestRunnerQuery(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	q, err := r.Query(context.Background(), gallery(), geom.NewRect(0, 200, 300, 100), 200, Options{})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	if len(q.Attributes) != 3 {
		t.Fatalf("results = %d, want 3", len(q.Attributes))
	}
	h := q.Attributes[2]
	if h.Kind != waterfall.KindHeader || h.Frame.Y != 200 {
		t.Errorf("pinned header = %+v", h)
	}

	if _, err := r.Query(context.Background(), gallery(), geom.NewRect(0, 0, -5, 10), 0, Options{}); !errors.Is(err, errors.ErrCodeInvalidRect) {
		t.Errorf("bad rect: err = %v", err)
	}
}

type countingHooks struct {
	observability.NoopLayoutHooks
	observability.NoopCacheHooks

	mu                      sync.Mutex
	starts, completes, hits int
	misses, sets, queries   int
}

func (h *countingHooks) OnLayoutStart(context.Context, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *countingHooks) OnLayoutComplete(context.Context, int, bool, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
}

func (h *countingHooks) OnQuery(context.Context, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queries++
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestRunnerHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	mem, _ := cache.NewMemoryCache(4)
	r := NewRunner(mem, nil, nil)
	ctx := context.Background()

	_, _ = r.Compute(ctx, gallery(), Options{})
	_, _ = r.Compute(ctx, gallery(), Options{})
	_, _ = r.Query(ctx, gallery(), geom.NewRect(0, 0, 300, 300), 0, Options{})

	if hooks.starts != 2 || hooks.completes != 2 {
		t.Errorf("layout hooks: starts %d, completes %d", hooks.starts, hooks.completes)
	}
	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("cache hooks: misses %d, hits %d, sets %d", hooks.misses, hooks.hits, hooks.sets)
	}
	if hooks.queries != 1 {
		t.Errorf("query hooks: %d", hooks.queries)
	}
}

func TestRunnerOptionsLogger(t *testing.T) {
	var runnerOut, runOut bytes.Buffer
	r := NewRunner(nil, nil, log.NewWithOptions(&runnerOut, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	opts := Options{Logger: log.NewWithOptions(&runOut, log.Options{Level: log.DebugLevel})}
	if _, err := r.Compute(ctx, gallery(), opts); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if _, err := r.Query(ctx, gallery(), geom.NewRect(0, 0, 300, 200), 0, opts); err != nil {
		t.Fatalf("Query() error: %v", err)
	}
	for _, msg := range []string{"computed layout", "queried layout"} {
		if !strings.Contains(runOut.String(), msg) {
			t.Errorf("run logger missing %q:\n%s", msg, runOut.String())
		}
	}
	if runnerOut.Len() != 0 {
		t.Errorf("runner logger should be unused when the run sets one, got:\n%s", runnerOut.String())
	}

	if _, err := r.Compute(ctx, gallery(), Options{}); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !strings.Contains(runnerOut.String(), "computed layout") {
		t.Errorf("runner logger should be the fallback, got:\n%s", runnerOut.String())
	}
}
