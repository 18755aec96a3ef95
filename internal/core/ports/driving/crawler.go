package driving

import (
	"context"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// Crawler is the single operation the core exposes. Everything else
// (CLI, HTTP, webhook endpoints) is a thin wrapper around it.
type Crawler interface {
	// RunCrawl executes one complete pass: singleton phase, collection
	// phase, detail phase. It returns per-kind materialisation counts
	// and only errors on cancellation or a non-isolated failure.
	RunCrawl(ctx context.Context) (domain.Summary, error)

	// Refresh re-expands one reference with the dedup check bypassed.
	// This is the incremental entrypoint for the webhook layer: the
	// action vocabulary upstream uses is irrelevant because refresh is
	// idempotent.
	Refresh(ctx context.Context, ref domain.Reference) error

	// Remove deletes a record and its embedding. The webhook layer's
	// delete path.
	Remove(ctx context.Context, ref domain.Reference) error
}
