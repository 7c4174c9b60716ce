package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Source implements the ActivitySource port. It is safe for concurrent
// use; a go-github client is built per fetch so each request can carry
// its own bearer credential.
type Source struct {
	httpClient  *http.Client
	baseURL     *url.URL
	rateLimiter *RateLimiter
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient overrides the HTTP client used for upstream requests.
// Useful for testing.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.httpClient = c }
}

// WithBaseURL points the source at a different API root. Useful for
// testing and GitHub Enterprise. The URL must end with a slash.
func WithBaseURL(raw string) (Option, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	return func(s *Source) { s.baseURL = u }, nil
}

// NewSource creates a GitHub activity source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		rateLimiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RateLimiter returns the rate limiter for external access.
func (s *Source) RateLimiter() *RateLimiter {
	return s.rateLimiter
}

// client builds a go-github client for one fetch. When token is set the
// client authenticates with a static bearer credential.
func (s *Source) client(ctx context.Context, token string) *gh.Client {
	var hc *http.Client

	if token != "" {
		if s.httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Timeout = DefaultTimeout
	} else if s.httpClient != nil {
		hc = s.httpClient
	} else {
		hc = &http.Client{Timeout: DefaultTimeout}
	}

	c := gh.NewClient(hc)
	if s.baseURL != nil {
		c.BaseURL = s.baseURL
	}
	return c
}

// wrapError converts go-github errors to our error types.
func wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{
			ResetAt:   rateErr.Rate.Reset.Time,
			Remaining: rateErr.Rate.Remaining,
			Limit:     rateErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &UpstreamError{
			StatusCode: ghErr.Response.StatusCode,
			Body:       ghErr.Message,
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
