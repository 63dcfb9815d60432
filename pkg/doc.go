// Package pkg provides the core libraries for the waterfall layout engine.
//
// # Overview
//
// Waterfall places items of varying heights into N equal-width columns,
// always filling the shortest column, and answers "what is visible in this
// rectangle" queries over the result. The pkg directory is organized into
// these areas:
//
//  1. [waterfall] - The layout engine (placement, bucket index, queries)
//  2. [geom] - Rectangles, sizes and insets
//  3. [collection] - Collection documents (TOML/JSON) and layout snapshots
//  4. [pipeline] - Orchestration (document → layout → snapshot) with caching
//  5. [cache], [store] - Result caching and persistent layout storage
//
// # Architecture
//
// The typical data flow:
//
//	Collection document (TOML / JSON / API request)
//	         ↓
//	    [collection] package (decode, validate, size provider)
//	         ↓
//	    [waterfall] package (place items, build index)
//	         ↓
//	    [collection.Snapshot] (JSON / BSON)
//	         ↓
//	    [cache] / [store]
//
// # Quick Start
//
// Lay out a collection and query a viewport:
//
//	import (
//	    "github.com/matzehuels/waterfall/pkg/collection"
//	    "github.com/matzehuels/waterfall/pkg/geom"
//	    "github.com/matzehuels/waterfall/pkg/pipeline"
//	)
//
//	coll, _ := collection.Read("gallery.toml")
//	l, _ := pipeline.Build(coll)
//
//	fmt.Println(l.ContentSize())
//	for _, a := range l.AttributesIntersecting(geom.NewRect(0, 400, 375, 812)) {
//	    fmt.Println(a.Kind, a.Section, a.Item, a.Frame)
//	}
//
// # Main Packages
//
// ## Layout
//
// [waterfall] - The engine. A [waterfall.Layout] is configured once with a
// [waterfall.Config] and recomputed from a [waterfall.Input] (container
// width, item counts and a size provider). Headers, footers and sticky
// headers are supplementary elements with their own z-index. Viewport
// queries use a coarse index of union rectangles over runs of attributes.
//
// [geom] - Value types shared by every package.
//
// ## Documents
//
// [collection] - The on-disk format: container width, layout settings and
// per-section item sizes. Also holds [collection.Snapshot], the
// serializable result of one pass.
//
// ## Infrastructure
//
// [pipeline] - Layout runner used by the CLI and the HTTP API. Ensures
// consistent cache keys and logging across entry points.
//
// [cache] - Cache backends: file (CLI), memory (LRU) and Redis (shared).
//
// [store] - Stored layouts for the API: memory, file and MongoDB backends.
//
// [observability] - Hooks for layout passes, cache access and HTTP requests.
//
// [errors] - Coded errors with HTTP status mapping.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/waterfall/...      # Engine only
//	go test -run Example ./pkg/...   # Examples only
//
// [waterfall]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/waterfall
// [geom]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/geom
// [collection]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/collection
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/errors
package pkg
