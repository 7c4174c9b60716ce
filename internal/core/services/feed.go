package services

import (
	"context"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driving"
	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

// Ensure FeedAggregator implements the interface.
var _ driving.FeedService = (*FeedAggregator)(nil)

// FeedAggregator implements driving.FeedService. It validates input
// before any remote call and delegates fetching to the activity source.
type FeedAggregator struct {
	source driven.ActivitySource
}

// NewFeedAggregator creates a feed service backed by source.
func NewFeedAggregator(source driven.ActivitySource) *FeedAggregator {
	return &FeedAggregator{source: source}
}

// Fetch validates opts and retrieves the remote activity feed.
func (s *FeedAggregator) Fetch(ctx context.Context, opts domain.FetchOptions) (*domain.Feed, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("feed: fetching activity for %q (received=%v, per_page=%d)",
		opts.Username, opts.IncludeReceived, opts.EffectivePerPage())

	feed, err := s.source.FetchActivity(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger.Info("feed: %d events for %q", len(feed.Events), opts.Username)
	return feed, nil
}

// Unified merges a remote snapshot with the local capture log,
// newest first.
func (s *FeedAggregator) Unified(
	remote []domain.NormalizedEvent, local []domain.CaptureEvent,
) []domain.UnifiedItem {
	return domain.MergeUnified(remote, local)
}
