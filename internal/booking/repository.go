package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is append-only storage for the appointments collection.
type Repository interface {
	Append(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]*Record, error)
}

// InMemoryRepository keeps booking records in memory for tests and local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []*Record
}

// NewInMemoryRepository creates a new in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Append adds a record, assigning ID and timestamp when missing.
func (r *InMemoryRepository) Append(ctx context.Context, rec *Record) error {
	fillRecord(rec)

	r.mu.Lock()
	cp := *rec
	r.records = append(r.records, &cp)
	r.mu.Unlock()
	return nil
}

// List returns all stored records.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Record, 0, len(r.records))
	for _, rec := range r.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func fillRecord(rec *Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
}
