package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates a kind with no remote operation for
	// the requested call (e.g. listing children of a leaf kind).
	ErrUnsupportedKind = errors.New("unsupported kind")

	// ErrRateLimitExhausted indicates the fetch client hit the rate-limit
	// retry ceiling. The entity stays unmaterialised and is retried on
	// the next crawl pass.
	ErrRateLimitExhausted = errors.New("rate limit retries exhausted")

	// ErrUpstream indicates a non-rate-limit remote failure that survived
	// the retry ceiling.
	ErrUpstream = errors.New("upstream request failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Vector writes are skipped without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)

// FetchError reports the final failure of one fetch after the retry
// ceiling. Err wraps either ErrRateLimitExhausted or ErrUpstream, with the
// underlying cause preserved for errors.As.
type FetchError struct {
	Ref      Reference
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s after %d attempts: %v", e.Ref.Kind, e.Ref.ID, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SyncRequiredError is the upstream "needs full resync" signal returned by
// the webhook-subscription service. The token is stored on the project
// record as bookkeeping for the webhook subsystem.
type SyncRequiredError struct {
	Token string
}

func (e *SyncRequiredError) Error() string {
	return fmt.Sprintf("event stream requires full resync (token %s)", e.Token)
}
