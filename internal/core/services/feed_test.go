package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// stubActivitySource implements driven.ActivitySource for testing.
type stubActivitySource struct {
	feed  *domain.Feed
	err   error
	calls int
}

func (s *stubActivitySource) FetchActivity(_ context.Context, _ domain.FetchOptions) (*domain.Feed, error) {
	s.calls++
	return s.feed, s.err
}

func TestFeedAggregator_Fetch(t *testing.T) {
	t.Run("rejects missing username before any remote call", func(t *testing.T) {
		source := &stubActivitySource{}
		svc := NewFeedAggregator(source)

		_, err := svc.Fetch(context.Background(), domain.FetchOptions{})

		assert.ErrorIs(t, err, domain.ErrUsernameRequired)
		assert.Zero(t, source.calls, "no outbound call on validation failure")
	})

	t.Run("delegates to the activity source", func(t *testing.T) {
		want := &domain.Feed{
			Events: []domain.NormalizedEvent{{ID: "1"}},
		}
		source := &stubActivitySource{feed: want}
		svc := NewFeedAggregator(source)

		feed, err := svc.Fetch(context.Background(), domain.FetchOptions{Username: "octocat"})

		require.NoError(t, err)
		assert.Equal(t, want, feed)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("passes source errors through", func(t *testing.T) {
		boom := errors.New("upstream broke")
		svc := NewFeedAggregator(&stubActivitySource{err: boom})

		_, err := svc.Fetch(context.Background(), domain.FetchOptions{Username: "octocat"})

		assert.ErrorIs(t, err, boom)
	})
}

func TestFeedAggregator_Unified(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewFeedAggregator(&stubActivitySource{})

	items := svc.Unified(
		[]domain.NormalizedEvent{{ID: "r", CreatedAt: base}},
		[]domain.CaptureEvent{{ID: "l", CreatedAt: base.Add(time.Minute)}},
	)

	require.Len(t, items, 2)
	assert.Equal(t, domain.SourceLocal, items[0].Source)
	assert.Equal(t, domain.SourceRemote, items[1].Source)
}
