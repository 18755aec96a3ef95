package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
	"github.com/custodia-labs/workmirror/internal/logger"
)

// dateFields are raw attribute names whose string values are normalised to
// native timestamps before persisting.
var dateFields = []string{"created_at", "completed_at", "due_on", "due_date", "modified_at"}

// Upserter performs the dual write: vector index first, document store
// second, each leg independently. One record's failure never aborts a
// crawl; the outcome is reported and the walk moves on.
type Upserter struct {
	store    driven.RecordStore
	vector   driven.VectorIndex
	embedder driven.EmbeddingService
	renderer driven.RendererRegistry
}

// NewUpserter creates an Upserter. vector and embedder are optional; when
// either is nil the vector leg is skipped and only documents are written.
func NewUpserter(
	store driven.RecordStore,
	vector driven.VectorIndex,
	embedder driven.EmbeddingService,
	renderer driven.RendererRegistry,
) *Upserter {
	return &Upserter{
		store:    store,
		vector:   vector,
		embedder: embedder,
		renderer: renderer,
	}
}

// Stored returns the previously persisted record for ref, or nil when the
// identity has not been materialised yet.
func (u *Upserter) Stored(ctx context.Context, ref domain.Reference) (*domain.Record, error) {
	rec, err := u.store.Get(ctx, ref)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return rec, err
}

// AlreadyMaterialized is the cross-walk dedup check against the document
// store. Safe for concurrent callers; best-effort freshness is enough
// because Upsert is idempotent.
func (u *Upserter) AlreadyMaterialized(ctx context.Context, ref domain.Reference) (bool, error) {
	return u.store.Exists(ctx, ref)
}

// Upsert writes rec to both stores and reports which legs succeeded.
// Kinds with no renderable text skip the vector leg without penalty.
func (u *Upserter) Upsert(ctx context.Context, rec *domain.Record) domain.UpsertOutcome {
	vectorOK := true
	if text := u.renderer.Render(rec); text != "" && u.vector != nil && u.embedder != nil {
		vectorOK = u.upsertVector(ctx, rec, text)
	}

	persisted := rec.Clone()
	normaliseDates(persisted.Fields)
	persisted.UpdatedAt = time.Now().UTC()

	docOK := true
	if err := u.store.Save(ctx, persisted); err != nil {
		logger.Error("upsert %s %s: document write failed: %v", rec.Kind, rec.ID, err)
		docOK = false
	}

	outcome := outcomeFor(docOK, vectorOK)
	if outcome != domain.UpsertBothSucceeded {
		logger.Error("upsert %s %s: outcome %s", rec.Kind, rec.ID, outcome)
	}
	return outcome
}

// Delete removes rec's identity from both stores. Used by the webhook
// layer's deletion path, never by a crawl.
func (u *Upserter) Delete(ctx context.Context, ref domain.Reference) error {
	if u.vector != nil {
		if err := u.vector.Delete(ctx, ref.ID); err != nil {
			logger.Error("delete %s %s: vector delete failed: %v", ref.Kind, ref.ID, err)
		}
	}
	return u.store.Delete(ctx, ref)
}

func (u *Upserter) upsertVector(ctx context.Context, rec *domain.Record, text string) bool {
	vector, err := u.embedder.Embed(ctx, text)
	if err != nil {
		logger.Error("upsert %s %s: embedding failed: %v", rec.Kind, rec.ID, err)
		return false
	}
	if err := u.vector.Upsert(ctx, rec.ID, vector, rec.EmbeddingMetadata()); err != nil {
		logger.Error("upsert %s %s: vector write failed: %v", rec.Kind, rec.ID, err)
		return false
	}
	return true
}

func outcomeFor(docOK, vectorOK bool) domain.UpsertOutcome {
	switch {
	case docOK && vectorOK:
		return domain.UpsertBothSucceeded
	case docOK:
		return domain.UpsertDocumentStoreOnly
	case vectorOK:
		return domain.UpsertVectorIndexOnly
	default:
		return domain.UpsertBothFailed
	}
}

// normaliseDates converts well-known date attributes from ISO strings to
// native timestamps, in place. Unparseable values are left as-is.
func normaliseDates(fields map[string]any) {
	for _, key := range dateFields {
		raw, ok := fields[key].(string)
		if !ok || raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				fields[key] = t.UTC()
				break
			}
		}
	}
}
