package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// DefaultMemoryRecords bounds a MemoryStore created with a non-positive
// size.
const DefaultMemoryRecords = 1024

// MemoryStore keeps the most recently used records in memory. Older
// records are evicted once the store is full.
type MemoryStore struct {
	records *lru.Cache[string, Record]
}

// NewMemoryStore creates a store holding at most size records.
func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = DefaultMemoryRecords
	}
	records, err := lru.New[string, Record](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{records: records}, nil
}

func (s *MemoryStore) Save(ctx context.Context, rec *Record) (string, error) {
	if err := prepare(rec); err != nil {
		return "", err
	}
	s.records.Add(rec.ID, *rec)
	return rec.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errors.ValidateLayoutID(id); err != nil {
		return nil, err
	}
	rec, ok := s.records.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	return &rec, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateLayoutID(id); err != nil {
		return err
	}
	if !s.records.Remove(id) {
		return notFound(id)
	}
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int { return s.records.Len() }

func (s *MemoryStore) Close() error {
	s.records.Purge()
	return nil
}

var _ Store = (*MemoryStore)(nil)
