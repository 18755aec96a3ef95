package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

func TestAnnotator_Annotate(t *testing.T) {
	anno := NewAnnotator()

	t.Run("project derives its scope from a three-digit prefix", func(t *testing.T) {
		rec := &domain.Record{ID: "p1", Kind: domain.KindProject, Fields: map[string]any{"name": "007 Acme"}}

		out := anno.Annotate(rec, nil)

		assert.Equal(t, []string{"007"}, out.ScopeLabels)
		assert.Equal(t, domain.ClassificationClientScoped, out.Classification)
		assert.Equal(t, domain.Origin, out.Origin)
	})

	t.Run("project without a prefix inherits the parent scope", func(t *testing.T) {
		rec := &domain.Record{ID: "p1", Kind: domain.KindProject, Fields: map[string]any{"name": "Acme"}}

		assert.Empty(t, anno.Annotate(rec, nil).ScopeLabels)
		assert.Equal(t, []string{"042"}, anno.Annotate(rec, []string{"042"}).ScopeLabels)
	})

	t.Run("prefix must be exactly at the start", func(t *testing.T) {
		tests := []struct {
			name string
			want []string
		}{
			{"007 Acme", []string{"007"}},
			{"0071 Acme", []string{"007"}},
			{"07 Acme", []string{}},
			{"Acme 007", []string{}},
			{" 007 Acme", []string{}},
			{"", []string{}},
		}
		for _, tt := range tests {
			rec := &domain.Record{ID: "p", Kind: domain.KindProject, Fields: map[string]any{"name": tt.name}}
			assert.Equal(t, tt.want, anno.Annotate(rec, nil).ScopeLabels, "name %q", tt.name)
		}
	})

	t.Run("client-related kinds propagate parent labels verbatim", func(t *testing.T) {
		for _, kind := range []domain.Kind{domain.KindTask, domain.KindSection, domain.KindStory, domain.KindAttachment} {
			for _, labels := range [][]string{nil, {}, {"042"}, {"042", "051"}} {
				rec := &domain.Record{ID: "1", Kind: kind, Fields: map[string]any{"name": "123 looks like a prefix"}}

				out := anno.Annotate(rec, labels)

				assert.Equal(t, len(labels), len(out.ScopeLabels), "kind %s", kind)
				for i := range labels {
					assert.Equal(t, labels[i], out.ScopeLabels[i])
				}
				assert.Equal(t, domain.ClassificationClientScoped, out.Classification)
			}
		}
	})

	t.Run("general kinds get no labels even under a scoped parent", func(t *testing.T) {
		for _, kind := range []domain.Kind{domain.KindTeam, domain.KindUser, domain.KindTag, domain.KindCustomField} {
			rec := &domain.Record{ID: "1", Kind: kind, Fields: map[string]any{"name": "042 thing"}}

			out := anno.Annotate(rec, []string{"042"})

			assert.Empty(t, out.ScopeLabels, "kind %s", kind)
			assert.Equal(t, domain.ClassificationGeneral, out.Classification, "kind %s", kind)
		}
	})

	t.Run("never mutates its input", func(t *testing.T) {
		rec := &domain.Record{ID: "p1", Kind: domain.KindProject, Fields: map[string]any{"name": "007 Acme"}}

		out := anno.Annotate(rec, nil)
		out.Fields["name"] = "changed"

		assert.Empty(t, rec.Origin)
		assert.Nil(t, rec.ScopeLabels)
		assert.Equal(t, "007 Acme", rec.Fields["name"])
	})
}

func TestClientCode(t *testing.T) {
	assert.Equal(t, []string{"042"}, ClientCode("042 Widgets"))
	assert.Empty(t, ClientCode("Widgets"))
	assert.Empty(t, ClientCode(""))
}
