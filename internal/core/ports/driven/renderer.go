package driven

import "github.com/custodia-labs/workmirror/internal/core/domain"

// RendererRegistry turns records into the human-readable text used as
// embedding input. Rendering is pure configuration data: one function per
// kind, no I/O.
type RendererRegistry interface {
	// Render returns the embedding input text for a record, or "" when
	// the kind produces no embedding.
	Render(rec *domain.Record) string
}
