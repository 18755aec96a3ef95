package asana

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/workmirror/internal/core/domain"
	"github.com/custodia-labs/workmirror/internal/core/ports/driven"
	"github.com/custodia-labs/workmirror/internal/logger"
)

const (
	// DefaultBaseURL is the production Asana REST endpoint.
	DefaultBaseURL = "https://app.asana.com/api/1.0"

	defaultTimeout = 30 * time.Second
	pageSize       = 100
	refOptFields   = "gid,resource_type,name"
)

// RetryConfig bounds the retry loop around a single request. A request is
// attempted at most MaxAttempts times; sleeps happen between attempts only.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// BackoffBase seeds the exponential backoff used after a 429.
	BackoffBase time.Duration
	// BackoffCap is the ceiling for a single rate-limit backoff sleep.
	BackoffCap time.Duration
	// RetryDelay is the fixed pause after any other retryable failure.
	RetryDelay time.Duration
}

// DefaultRetryConfig mirrors upstream guidance for the Asana API.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		BackoffBase: 10 * time.Second,
		BackoffCap:  60 * time.Second,
		RetryDelay:  10 * time.Second,
	}
}

// Config holds everything needed to build a Client.
type Config struct {
	// BaseURL overrides the API endpoint; empty means DefaultBaseURL.
	BaseURL string
	// AccessToken is a personal access token for the workspace.
	AccessToken string
	// Timeout applies per HTTP request. Zero means 30s.
	Timeout time.Duration
	// RequestsPerSecond tunes the proactive limiter. Zero means ProactiveRate.
	RequestsPerSecond float64
	// Retry bounds the retry loop. Zero-valued fields fall back to
	// DefaultRetryConfig.
	Retry RetryConfig
}

// Client talks to the Asana REST API. It is the only type in the codebase
// that issues requests to the remote service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *RateLimiter
	retry   RetryConfig
}

var _ driven.ResourceAPI = (*Client)(nil)

// NewClient builds a Client authenticated with cfg.AccessToken.
func NewClient(cfg Config) *Client {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	retry := cfg.Retry
	def := DefaultRetryConfig()
	if retry.MaxAttempts <= 0 {
		retry.MaxAttempts = def.MaxAttempts
	}
	if retry.BackoffBase <= 0 {
		retry.BackoffBase = def.BackoffBase
	}
	if retry.BackoffCap <= 0 {
		retry.BackoffCap = def.BackoffCap
	}
	if retry.RetryDelay <= 0 {
		retry.RetryDelay = def.RetryDelay
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = timeout

	return &Client{
		baseURL: base,
		http:    httpClient,
		limiter: NewRateLimiter(cfg.RequestsPerSecond),
		retry:   retry,
	}
}

// envelope is the standard Asana response wrapper.
type envelope struct {
	Data     json.RawMessage `json:"data"`
	NextPage *struct {
		Offset string `json:"offset"`
	} `json:"next_page"`
}

// Fetch retrieves the full object for ref. Kinds whose spec asks for
// enrichment get a second request carrying opt_fields, and the two payloads
// are merged with enriched values winning.
func (c *Client) Fetch(ctx context.Context, ref domain.Reference) (*domain.Record, error) {
	path, err := resourcePath(ref.Kind)
	if err != nil {
		return nil, err
	}

	base, attempts, err := c.getObject(ctx, path+"/"+ref.ID, nil)
	if err != nil {
		logger.Warn("asana: fetch %s %s failed after %d attempt(s): %v", ref.Kind, ref.ID, attempts, err)
		return nil, &domain.FetchError{Ref: ref, Attempts: attempts, Err: err}
	}
	totalAttempts := attempts

	spec := ref.Kind.Spec()
	if spec.Enrich && len(spec.EnrichFields) > 0 {
		q := url.Values{}
		q.Set("opt_fields", strings.Join(spec.EnrichFields, ","))
		extended, attempts, err := c.getObject(ctx, path+"/"+ref.ID, q)
		if err != nil {
			logger.Warn("asana: fetch %s %s failed during enrichment after %d attempt(s): %v", ref.Kind, ref.ID, attempts, err)
			return nil, &domain.FetchError{Ref: ref, Attempts: attempts, Err: fmt.Errorf("enrichment: %w", err)}
		}
		totalAttempts += attempts

		for k, v := range extended {
			if v == nil {
				if _, ok := base[k]; ok {
					continue
				}
			}
			base[k] = v
		}
	}

	logger.Debug("asana: fetched %s %s in %d attempt(s)", ref.Kind, ref.ID, totalAttempts)
	return &domain.Record{ID: ref.ID, Kind: ref.Kind, Fields: base}, nil
}

// ListChildren lists childKind objects under parent as bare references.
func (c *Client) ListChildren(ctx context.Context, parent domain.Reference, childKind domain.Kind) ([]domain.Reference, error) {
	path, q, err := childPath(parent, childKind)
	if err != nil {
		return nil, err
	}
	return c.listRefs(ctx, path, q)
}

// ListNarrative lists the story stream of a task, oldest first.
func (c *Client) ListNarrative(ctx context.Context, parent domain.Reference) ([]domain.Reference, error) {
	if parent.Kind != domain.KindTask {
		return nil, fmt.Errorf("%w: no narrative endpoint for %s", domain.ErrUnsupportedKind, parent.Kind)
	}
	return c.listRefs(ctx, "/tasks/"+parent.ID+"/stories", url.Values{})
}

func (c *Client) getObject(ctx context.Context, path string, q url.Values) (map[string]any, int, error) {
	env, attempts, err := c.getJSON(ctx, path, q)
	if err != nil {
		return nil, attempts, err
	}

	var fields map[string]any
	if err := json.Unmarshal(env.Data, &fields); err != nil {
		return nil, attempts, fmt.Errorf("decoding %s: %w", path, err)
	}
	return fields, attempts, nil
}

func (c *Client) listRefs(ctx context.Context, path string, q url.Values) ([]domain.Reference, error) {
	q.Set("limit", fmt.Sprintf("%d", pageSize))
	q.Set("opt_fields", refOptFields)

	var refs []domain.Reference
	for {
		env, _, err := c.getJSON(ctx, path, q)
		if err != nil {
			return nil, err
		}

		var items []map[string]any
		if err := json.Unmarshal(env.Data, &items); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
		for _, item := range items {
			if ref, ok := domain.ReferenceIn(item); ok {
				refs = append(refs, ref)
			}
		}

		if env.NextPage == nil || env.NextPage.Offset == "" {
			break
		}
		q.Set("offset", env.NextPage.Offset)
	}
	return refs, nil
}

// getJSON performs a GET with proactive rate limiting and a bounded retry
// loop. It returns the decoded envelope and the number of attempts made.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values) (*envelope, int, error) {
	reqURL := c.baseURL + path
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, attempt, err
		}

		env, err := c.doGet(ctx, reqURL)
		if err == nil {
			return env, attempt, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, attempt, ctx.Err()
		}

		if IsNotFound(err) {
			return nil, attempt, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}

		if attempt == c.retry.MaxAttempts {
			break
		}

		var delay time.Duration
		if IsRateLimited(err) {
			delay = c.retry.BackoffBase << (attempt - 1)
			if delay > c.retry.BackoffCap {
				delay = c.retry.BackoffCap
			}
			logger.Warn("asana: rate limited on %s, attempt %d/%d, backing off %s",
				path, attempt, c.retry.MaxAttempts, delay)
		} else {
			delay = c.retry.RetryDelay
			logger.Warn("asana: request to %s failed (%v), attempt %d/%d, retrying in %s",
				path, err, attempt, c.retry.MaxAttempts, delay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, attempt, ctx.Err()
		}
	}

	if IsRateLimited(lastErr) {
		return nil, c.retry.MaxAttempts, fmt.Errorf("%w: %s after %d attempts",
			domain.ErrRateLimitExhausted, path, c.retry.MaxAttempts)
	}
	return nil, c.retry.MaxAttempts, fmt.Errorf("%w: %s after %d attempts: %v",
		domain.ErrUpstream, path, c.retry.MaxAttempts, lastErr)
}

func (c *Client) doGet(ctx context.Context, reqURL string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("asana: GET %s", reqURL)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{RetryAfter: RetryAfterHint(resp)}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			URL:        reqURL,
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &env, nil
}
