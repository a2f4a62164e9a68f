package rmp

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/emilyynorton/NotreDameRMP/internal/ratelimit"
)

const (
	// Rate limit: 2 requests per second per school, burst of 4
	defaultRPS   = 2.0
	defaultBurst = 4

	// HTTP client settings
	defaultTimeout = 30 * time.Second

	defaultEndpoint = "https://www.ratemyprofessors.com/graphql"
	defaultOrigin   = "https://www.ratemyprofessors.com"
)

// Client is a rate-limited RateMyProfessors GraphQL client.
type Client struct {
	http      *http.Client
	limiter   *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
	endpoint  string
	origin    string
	authToken string
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a new ratings API client. The auth token is the static basic
// token the public site embeds in its own requests.
func New(logger *slog.Logger, authToken string, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:   ratelimit.New(defaultRPS, defaultBurst),
		logger:    logger,
		endpoint:  defaultEndpoint,
		origin:    defaultOrigin,
		authToken: authToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doQuery executes a GraphQL request with per-school rate limiting.
func (c *Client) doQuery(ctx context.Context, schoolID string, reqBody graphqlRequest) ([]byte, error) {
	if err := c.limiter.Wait(ctx, schoolID); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// The public endpoint rejects requests without the site's own static
	// basic token and origin.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.authToken)
	req.Header.Set("Origin", c.origin)

	c.logger.Debug("ratings request",
		"school_id", schoolID,
		"text", reqBody.Variables.Query.Text,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServerError
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
