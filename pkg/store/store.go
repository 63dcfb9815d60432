// Package store persists computed layouts so they can be fetched and
// queried by ID.
//
// Backends:
//   - [MemoryStore]: bounded LRU for development and single instances
//   - [FileStore]: one JSON file per layout in a directory
//   - [MongoStore]: MongoDB collection "layouts" for shared deployments
//
// IDs are random UUIDs assigned on Save.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/errors"
)

// Record is one stored layout. The source document is kept next to the
// snapshot so queries can rebuild the engine.
type Record struct {
	ID         string                 `json:"id" bson:"_id"`
	Snapshot   *collection.Snapshot   `json:"snapshot" bson:"snapshot"`
	Collection *collection.Collection `json:"collection" bson:"collection"`
	CreatedAt  time.Time              `json:"created_at" bson:"created_at"`
}

// NewRecord creates an unsaved record.
func NewRecord(c *collection.Collection, s *collection.Snapshot) *Record {
	return &Record{Collection: c, Snapshot: s}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Save stores rec, assigning its ID and creation time, and returns
	// the ID.
	Save(ctx context.Context, rec *Record) (string, error)

	// Get returns the record with the given ID. A missing record is an
	// error with code LAYOUT_NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// Delete removes a record. A missing record is an error with code
	// LAYOUT_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	Close() error
}

// prepare assigns identity fields before a save.
func prepare(rec *Record) error {
	if rec == nil || rec.Snapshot == nil || rec.Collection == nil {
		return errors.New(errors.ErrCodeInvalidInput, "record needs a snapshot and a collection")
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}
