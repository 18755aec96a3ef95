package services

import "github.com/custodia-labs/workmirror/internal/core/domain"

// Workspace is the per-walk materialisation cache: kind -> id -> record.
// Each expansion call tree owns exactly one Workspace and nothing else
// reads it, so no locking is needed. It is discarded when the walk ends;
// the record store is the system of record.
type Workspace struct {
	records map[domain.Kind]map[string]*domain.Record
	touched map[domain.Kind]struct{}
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		records: make(map[domain.Kind]map[string]*domain.Record),
		touched: make(map[domain.Kind]struct{}),
	}
}

// Put records a materialised entity and marks its kind touched.
func (w *Workspace) Put(rec *domain.Record) {
	byID, ok := w.records[rec.Kind]
	if !ok {
		byID = make(map[string]*domain.Record)
		w.records[rec.Kind] = byID
	}
	byID[rec.ID] = rec
	w.touched[rec.Kind] = struct{}{}
}

// Get returns the cached record for ref, nil when this walk has not
// materialised it.
func (w *Workspace) Get(ref domain.Reference) *domain.Record {
	return w.records[ref.Kind][ref.ID]
}

// Has reports whether this walk already materialised ref.
func (w *Workspace) Has(ref domain.Reference) bool {
	return w.Get(ref) != nil
}

// TouchedKinds returns the kinds written during this walk, unordered.
func (w *Workspace) TouchedKinds() []domain.Kind {
	kinds := make([]domain.Kind, 0, len(w.touched))
	for k := range w.touched {
		kinds = append(kinds, k)
	}
	return kinds
}

// Counts returns the per-kind materialisation tally for this walk.
func (w *Workspace) Counts() domain.Summary {
	summary := make(domain.Summary, len(w.records))
	for kind, byID := range w.records {
		summary[kind] = len(byID)
	}
	return summary
}
