package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

func TestRecordStore(t *testing.T) {
	ctx := context.Background()

	t.Run("save then get round-trips a record", func(t *testing.T) {
		store := NewRecordStore()
		rec := &domain.Record{
			ID:          "1",
			Kind:        domain.KindTask,
			Fields:      map[string]any{"name": "T"},
			ScopeLabels: []string{"042"},
		}

		require.NoError(t, store.Save(ctx, rec))

		got, err := store.Get(ctx, rec.Ref())
		require.NoError(t, err)
		assert.Equal(t, "T", got.Fields["name"])
		assert.Equal(t, []string{"042"}, got.ScopeLabels)
	})

	t.Run("get returns ErrNotFound for missing identities", func(t *testing.T) {
		store := NewRecordStore()

		_, err := store.Get(ctx, domain.Reference{ID: "x", Kind: domain.KindTask})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("identity is the kind-id pair", func(t *testing.T) {
		store := NewRecordStore()
		require.NoError(t, store.Save(ctx, &domain.Record{ID: "1", Kind: domain.KindTask, Fields: map[string]any{}}))

		exists, err := store.Exists(ctx, domain.Reference{ID: "1", Kind: domain.KindProject})
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = store.Exists(ctx, domain.Reference{ID: "1", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("second save replaces the first", func(t *testing.T) {
		store := NewRecordStore()
		require.NoError(t, store.Save(ctx, &domain.Record{ID: "1", Kind: domain.KindTask, Fields: map[string]any{"name": "old"}}))
		require.NoError(t, store.Save(ctx, &domain.Record{ID: "1", Kind: domain.KindTask, Fields: map[string]any{"name": "new"}}))

		got, err := store.Get(ctx, domain.Reference{ID: "1", Kind: domain.KindTask})
		require.NoError(t, err)
		assert.Equal(t, "new", got.Fields["name"])

		all, err := store.ListByKind(ctx, domain.KindTask)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := NewRecordStore()
		ref := domain.Reference{ID: "1", Kind: domain.KindTask}
		require.NoError(t, store.Save(ctx, &domain.Record{ID: "1", Kind: domain.KindTask, Fields: map[string]any{}}))

		require.NoError(t, store.Delete(ctx, ref))
		require.NoError(t, store.Delete(ctx, ref))

		exists, err := store.Exists(ctx, ref)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list client projects filters by scope labels", func(t *testing.T) {
		store := NewRecordStore()
		require.NoError(t, store.Save(ctx, &domain.Record{
			ID: "p1", Kind: domain.KindProject, Fields: map[string]any{"name": "042 Widgets"},
			ScopeLabels: []string{"042"},
		}))
		require.NoError(t, store.Save(ctx, &domain.Record{
			ID: "p2", Kind: domain.KindProject, Fields: map[string]any{"name": "Internal"},
			ScopeLabels: []string{},
		}))
		require.NoError(t, store.Save(ctx, &domain.Record{
			ID: "t1", Kind: domain.KindTask, Fields: map[string]any{},
			ScopeLabels: []string{"042"},
		}))

		projects, err := store.ListClientProjects(ctx)
		require.NoError(t, err)
		require.Len(t, projects, 1)
		assert.Equal(t, "p1", projects[0].ID)
	})

	t.Run("stored records are isolated from caller mutation", func(t *testing.T) {
		store := NewRecordStore()
		rec := &domain.Record{ID: "1", Kind: domain.KindTask, Fields: map[string]any{"name": "T"}}
		require.NoError(t, store.Save(ctx, rec))

		rec.Fields["name"] = "mutated"

		got, err := store.Get(ctx, rec.Ref())
		require.NoError(t, err)
		assert.Equal(t, "T", got.Fields["name"])
	})
}
