package driven

import (
	"context"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// ActivitySource fetches remote activity events and returns them
// merged, normalized and sorted newest-first, with rate metadata from
// the primary response.
//
// Implementations own the two-request fan-out: the primary (performed
// events) request failing is an error, the secondary (received events)
// request failing contributes zero events.
type ActivitySource interface {
	// FetchActivity retrieves the activity feed for opts.Username.
	// Options are assumed validated by the caller.
	FetchActivity(ctx context.Context, opts domain.FetchOptions) (*domain.Feed, error)
}
