package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
)

// WebhookClient talks to the companion subscription service that manages
// event webhooks per project. The crawl engine only records the handle it
// returns; delivery and processing of events live elsewhere.
type WebhookClient struct {
	baseURL string
	http    *http.Client
}

var _ driven.WebhookService = (*WebhookClient)(nil)

// NewWebhookClient builds a client for the subscription service at baseURL.
func NewWebhookClient(baseURL string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WebhookClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Establish looks up or creates the webhook subscription for a project and
// returns its handle. A 412 response means the event stream fell behind;
// it is surfaced as a *domain.SyncRequiredError carrying the resync token.
func (w *WebhookClient) Establish(ctx context.Context, projectID string) (map[string]any, error) {
	reqURL := w.baseURL + "/establish-webhook/" + projectID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusPreconditionFailed {
		var payload struct {
			Sync string `json:"sync"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("decoding resync payload: %w", err)
		}
		return nil, &domain.SyncRequiredError{Token: payload.Sync}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        reqURL,
		}
	}

	var info map[string]any
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("decoding webhook handle: %w", err)
	}
	return info, nil
}
