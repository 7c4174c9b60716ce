package cli

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// mockFeedService returns a canned feed after validating options.
type mockFeedService struct {
	feed     *domain.Feed
	err      error
	lastOpts domain.FetchOptions
}

func (m *mockFeedService) Fetch(_ context.Context, opts domain.FetchOptions) (*domain.Feed, error) {
	m.lastOpts = opts
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.feed, nil
}

func (m *mockFeedService) Unified(
	remote []domain.NormalizedEvent, local []domain.CaptureEvent,
) []domain.UnifiedItem {
	return domain.MergeUnified(remote, local)
}

// mockRecorder is an in-memory capture recorder.
type mockRecorder struct {
	capturing bool
	events    []domain.CaptureEvent
	clears    int
}

func (m *mockRecorder) Start(context.Context) error { m.capturing = true; return nil }
func (m *mockRecorder) Stop() error                 { m.capturing = false; return nil }
func (m *mockRecorder) Capturing() bool             { return m.capturing }

func (m *mockRecorder) Events() []domain.CaptureEvent {
	return m.events
}

func (m *mockRecorder) Record(ev domain.CaptureEvent) {
	m.events = domain.PrependCapped(m.events, ev)
}

func (m *mockRecorder) Export() ([]byte, error) {
	if m.events == nil {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(m.events, "", "  ")
}

func (m *mockRecorder) Import(_ context.Context, data []byte) error {
	var events []domain.CaptureEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return err
	}
	m.events = events
	return nil
}

func (m *mockRecorder) Clear(context.Context) error {
	m.clears++
	m.events = nil
	return nil
}

// setupTestServices wires mock services and returns a cleanup that
// restores whatever was injected before.
func setupTestServices() func() {
	oldFeed := feedService
	oldRecorder := captureRecorder

	remaining, limit := 42, 60
	feedService = &mockFeedService{feed: &domain.Feed{
		Events: []domain.NormalizedEvent{{
			ID:         "100",
			Category:   domain.CategoryPush,
			ActionText: "pushed 1 commit to main in octo/repo",
			Details:    []string{"fix flaky test"},
			CreatedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		}},
		Rate: domain.RateInfo{Remaining: &remaining, Limit: &limit},
	}}
	captureRecorder = &mockRecorder{events: []domain.CaptureEvent{
		{
			ID:        "cap-1",
			Kind:      domain.CaptureClick,
			Label:     "feed item",
			CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			ID:        "cap-2",
			Kind:      domain.CaptureScroll,
			Label:     "unified",
			CreatedAt: time.Date(2026, 3, 1, 12, 29, 0, 0, time.UTC),
		},
	}}

	return func() {
		feedService = oldFeed
		captureRecorder = oldRecorder
	}
}
