package driven

import "context"

// WebhookService establishes event subscriptions for top-level containers.
// It belongs to the excluded webhook subsystem; the crawl engine only does
// bookkeeping with the returned handle. A *domain.SyncRequiredError result
// carries the upstream "needs full resync" token; any other error is logged
// and never blocks expansion.
type WebhookService interface {
	// Establish looks up or creates the subscription for a project and
	// returns its opaque handle.
	Establish(ctx context.Context, projectID string) (map[string]any, error)
}
