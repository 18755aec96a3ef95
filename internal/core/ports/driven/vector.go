package driven

import (
	"context"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// VectorIndex stores semantic embeddings of rendered records. Upserts are
// idempotent: writing the same id twice replaces the vector and payload.
// One embedding exists per record with renderable text; its lifecycle is
// tied to the source record.
type VectorIndex interface {
	// Upsert inserts or replaces the vector for a record id, together
	// with the reduced metadata projection used for filtering.
	Upsert(ctx context.Context, id string, vector []float32, meta domain.EmbeddingMetadata) error

	// Delete removes the vector for a record id.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
