package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workmirror/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/workmirror/internal/core/domain"
)

func taskRecord(id string) *domain.Record {
	return &domain.Record{
		ID:   id,
		Kind: domain.KindTask,
		Fields: map[string]any{
			"name":       "Build it",
			"created_at": "2026-02-01T12:00:00.000Z",
			"due_on":     "2026-03-15",
		},
		Origin:         domain.Origin,
		ScopeLabels:    []string{"042"},
		Classification: domain.ClassificationClientScoped,
	}
}

func TestUpserter_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("writes both stores and reports success", func(t *testing.T) {
		rig := newCrawlRig()

		outcome := rig.upserter.Upsert(ctx, taskRecord("T1"))

		assert.Equal(t, domain.UpsertBothSucceeded, outcome)

		stored, err := rig.store.Get(ctx, domain.Reference{ID: "T1", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.False(t, stored.UpdatedAt.IsZero())

		meta := rig.vector.metas["T1"]
		assert.Equal(t, domain.KindTask, meta.Kind)
		assert.Equal(t, []string{"042"}, meta.ScopeLabels)
		assert.Equal(t, domain.Origin, meta.Origin)
	})

	t.Run("is idempotent", func(t *testing.T) {
		rig := newCrawlRig()

		require.Equal(t, domain.UpsertBothSucceeded, rig.upserter.Upsert(ctx, taskRecord("T1")))
		require.Equal(t, domain.UpsertBothSucceeded, rig.upserter.Upsert(ctx, taskRecord("T1")))

		all, err := rig.store.ListByKind(ctx, domain.KindTask)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		assert.Equal(t, 1, rig.vector.size())
	})

	t.Run("normalises date fields to native timestamps", func(t *testing.T) {
		rig := newCrawlRig()

		rig.upserter.Upsert(ctx, taskRecord("T1"))

		stored, err := rig.store.Get(ctx, domain.Reference{ID: "T1", Kind: domain.KindTask})
		require.NoError(t, err)

		created, ok := stored.Fields["created_at"].(time.Time)
		require.True(t, ok, "created_at should be a native timestamp")
		assert.Equal(t, 2026, created.Year())

		due, ok := stored.Fields["due_on"].(time.Time)
		require.True(t, ok, "due_on should be a native timestamp")
		assert.Equal(t, time.March, due.Month())

		assert.Equal(t, "Build it", stored.Fields["name"], "non-date fields untouched")
	})

	t.Run("skips the vector leg for unrenderable kinds", func(t *testing.T) {
		rig := newCrawlRig()
		ws := &domain.Record{ID: "W1", Kind: domain.KindWorkspace, Fields: map[string]any{"name": "Acme"}}

		outcome := rig.upserter.Upsert(ctx, ws)

		assert.Equal(t, domain.UpsertBothSucceeded, outcome)
		assert.Zero(t, rig.embedder.calls)
		assert.Zero(t, rig.vector.size())
	})

	t.Run("reports document-store-only when the vector write fails", func(t *testing.T) {
		rig := newCrawlRig()
		rig.vector.failing = true

		outcome := rig.upserter.Upsert(ctx, taskRecord("T1"))

		assert.Equal(t, domain.UpsertDocumentStoreOnly, outcome)
		exists, err := rig.store.Exists(ctx, domain.Reference{ID: "T1", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("reports document-store-only when embedding fails", func(t *testing.T) {
		rig := newCrawlRig()
		rig.embedder.failing = true

		outcome := rig.upserter.Upsert(ctx, taskRecord("T1"))

		assert.Equal(t, domain.UpsertDocumentStoreOnly, outcome)
		assert.Zero(t, rig.vector.size())
	})

	t.Run("writes documents only when no embedder is configured", func(t *testing.T) {
		store := memory.NewRecordStore()
		upserter := NewUpserter(store, nil, nil, crawlMockRenderer{})

		outcome := upserter.Upsert(ctx, taskRecord("T1"))

		assert.Equal(t, domain.UpsertBothSucceeded, outcome)
		exists, err := store.Exists(ctx, domain.Reference{ID: "T1", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("does not mutate the caller's record", func(t *testing.T) {
		rig := newCrawlRig()
		rec := taskRecord("T1")

		rig.upserter.Upsert(ctx, rec)

		_, isString := rec.Fields["created_at"].(string)
		assert.True(t, isString, "date normalisation must act on a copy")
		assert.True(t, rec.UpdatedAt.IsZero())
	})
}

func TestUpserter_Delete(t *testing.T) {
	ctx := context.Background()
	rig := newCrawlRig()
	ref := domain.Reference{ID: "T1", Kind: domain.KindTask}

	rig.upserter.Upsert(ctx, taskRecord("T1"))
	require.NoError(t, rig.upserter.Delete(ctx, ref))

	exists, err := rig.store.Exists(ctx, ref)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Zero(t, rig.vector.size())
}
