package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore, used
// in tests and as a fallback when no database is configured. Records are
// keyed by (kind, id) and copied on both write and read.
type RecordStore struct {
	mu      sync.RWMutex
	records map[domain.Kind]map[string]*domain.Record
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[domain.Kind]map[string]*domain.Record),
	}
}

// Save stores or replaces a record keyed by (kind, id).
func (s *RecordStore) Save(_ context.Context, rec *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byID, ok := s.records[rec.Kind]
	if !ok {
		byID = make(map[string]*domain.Record)
		s.records[rec.Kind] = byID
	}
	byID[rec.ID] = rec.Clone()
	return nil
}

// Get retrieves a record by identity.
func (s *RecordStore) Get(_ context.Context, ref domain.Reference) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[ref.Kind][ref.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

// Exists reports whether the identity is already materialised.
func (s *RecordStore) Exists(_ context.Context, ref domain.Reference) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[ref.Kind][ref.ID]
	return ok, nil
}

// Delete removes a record by identity. Absent identities are not an error.
func (s *RecordStore) Delete(_ context.Context, ref domain.Reference) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records[ref.Kind], ref.ID)
	return nil
}

// ListByKind returns all records of one kind.
func (s *RecordStore) ListByKind(_ context.Context, kind domain.Kind) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Record, 0, len(s.records[kind]))
	for _, rec := range s.records[kind] {
		out = append(out, *rec.Clone())
	}
	return out, nil
}

// ListClientProjects returns project records with at least one scope label.
func (s *RecordStore) ListClientProjects(_ context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Record
	for _, rec := range s.records[domain.KindProject] {
		if len(rec.ScopeLabels) > 0 {
			out = append(out, *rec.Clone())
		}
	}
	return out, nil
}
