package driven

import (
	"context"

	"github.com/custodia-labs/workmirror/internal/core/domain"
)

// ResourceAPI is the crawl engine's only window onto the remote system.
// Implementations own retry, backoff, and rate limiting; callers see either
// a complete record or a *domain.FetchError after the retry ceiling.
type ResourceAPI interface {
	// Fetch materialises the full attribute set for one reference,
	// including the enrichment pass for kinds that require it.
	Fetch(ctx context.Context, ref domain.Reference) (*domain.Record, error)

	// ListChildren lists direct children of a parent resource by kind,
	// e.g. the tasks of a project or the subtasks of a task. Returned
	// references carry display names when the remote API provides them.
	ListChildren(ctx context.Context, parent domain.Reference, child domain.Kind) ([]domain.Reference, error)

	// ListNarrative lists the narrative events (stories) attached to a
	// resource. Only meaningful for aggregate kinds.
	ListNarrative(ctx context.Context, parent domain.Reference) ([]domain.Reference, error)
}
