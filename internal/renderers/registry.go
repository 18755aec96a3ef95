package renderers

import (
	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
)

// renderFunc turns one record's raw fields into embedding input text.
type renderFunc func(fields map[string]any) string

// Registry maps each kind to its render function.
type Registry struct {
	funcs map[domain.Kind]renderFunc
}

var _ driven.RendererRegistry = (*Registry)(nil)

// New returns the registry covering every materialisable kind except
// workspace, which is never embedded.
func New() *Registry {
	return &Registry{
		funcs: map[domain.Kind]renderFunc{
			domain.KindTeam:            renderTeam,
			domain.KindUser:            renderUser,
			domain.KindTeamMembership:  renderTeamMembership,
			domain.KindProject:         renderProject,
			domain.KindCustomField:     renderCustomField,
			domain.KindProjectTemplate: renderProjectTemplate,
			domain.KindTask:            renderTask,
			domain.KindSection:         renderSection,
			domain.KindTag:             renderTag,
			domain.KindStatusUpdate:    renderStatusUpdate,
			domain.KindStory:           renderStory,
			domain.KindAttachment:      renderAttachment,
		},
	}
}

// Render returns the text for rec, or "" for kinds with no renderer.
func (r *Registry) Render(rec *domain.Record) string {
	fn, ok := r.funcs[rec.Kind]
	if !ok {
		return ""
	}
	return fn(rec.Fields)
}
