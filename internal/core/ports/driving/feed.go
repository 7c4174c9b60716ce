package driving

import (
	"context"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// FeedService produces activity feeds and unified views.
type FeedService interface {
	// Fetch validates opts and retrieves the remote activity feed.
	// Invalid options fail before any remote call is made.
	Fetch(ctx context.Context, opts domain.FetchOptions) (*domain.Feed, error)

	// Unified merges a remote feed snapshot with the local capture log
	// into one list ordered newest-first.
	Unified(remote []domain.NormalizedEvent, local []domain.CaptureEvent) []domain.UnifiedItem
}
