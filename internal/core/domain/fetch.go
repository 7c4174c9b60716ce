package domain

import "strings"

// Per-page bounds for activity fetches, matching the upstream API.
const (
	// DefaultPerPage is used when the caller does not specify a page size.
	DefaultPerPage = 30

	// MinPerPage is the smallest accepted page size.
	MinPerPage = 1

	// MaxPerPage is the largest accepted page size.
	MaxPerPage = 100
)

// FetchOptions describes one activity fetch.
type FetchOptions struct {
	// Username is the GitHub login whose activity is fetched. Required.
	Username string

	// IncludeReceived also fetches events received by the user
	// (activity on their repos by others).
	IncludeReceived bool

	// PerPage bounds each upstream request. Values outside
	// [MinPerPage, MaxPerPage] are clamped; zero means DefaultPerPage.
	PerPage int

	// Token is an optional bearer credential forwarded upstream.
	Token string
}

// Validate checks the options before any remote call is made.
func (o FetchOptions) Validate() error {
	if strings.TrimSpace(o.Username) == "" {
		return ErrUsernameRequired
	}
	return nil
}

// EffectivePerPage returns the page size after defaulting and clamping.
func (o FetchOptions) EffectivePerPage() int {
	switch {
	case o.PerPage == 0:
		return DefaultPerPage
	case o.PerPage < MinPerPage:
		return MinPerPage
	case o.PerPage > MaxPerPage:
		return MaxPerPage
	}
	return o.PerPage
}

// RateInfo carries upstream rate-limit counters read from response
// headers. Each counter is independently optional: nil when the header
// was missing or non-numeric.
type RateInfo struct {
	// Limit is the total request quota.
	Limit *int `json:"limit,omitempty"`

	// Remaining is the unused portion of the quota.
	Remaining *int `json:"remaining,omitempty"`

	// Reset is the quota reset time as a Unix timestamp.
	Reset *int64 `json:"reset,omitempty"`
}

// Feed is the result of one activity fetch: normalized events sorted
// non-increasing by timestamp, plus rate metadata from the primary
// response.
type Feed struct {
	// Events is the merged, normalized, time-sorted event list.
	Events []NormalizedEvent `json:"events"`

	// Rate is the rate-limit metadata from the primary response.
	Rate RateInfo `json:"rate"`
}
