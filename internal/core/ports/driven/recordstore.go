package driven

import (
	"context"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// RecordStore persists mirrored records. It is the system of record: the
// crawl workspace is a per-walk cache, this store is what survives a pass.
// Writes must be independently atomic per record; no cross-record
// transaction is required. Backed by SQLite.
type RecordStore interface {
	// Save stores or replaces a record keyed by (kind, id).
	// A second save with the same identity replaces the first.
	Save(ctx context.Context, rec *domain.Record) error

	// Get retrieves a record by identity. Returns domain.ErrNotFound
	// when absent.
	Get(ctx context.Context, ref domain.Reference) (*domain.Record, error)

	// Exists is the dedup check: true when the identity is already
	// materialised. Must be safe for concurrent callers.
	Exists(ctx context.Context, ref domain.Reference) (bool, error)

	// Delete removes a record by identity. Absent identities are not an
	// error.
	Delete(ctx context.Context, ref domain.Reference) error

	// ListByKind returns all records of one kind.
	ListByKind(ctx context.Context, kind domain.Kind) ([]domain.Record, error)

	// ListClientProjects returns project records with a resolved client
	// scope, i.e. at least one scope label. This is the detail phase's
	// work list.
	ListClientProjects(ctx context.Context) ([]domain.Record, error)
}
