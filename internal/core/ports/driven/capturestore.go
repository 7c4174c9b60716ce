package driven

import (
	"context"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// CaptureStore persists the local capture log under a single durable
// key. The stored value is the JSON-serialized list, newest first.
type CaptureStore interface {
	// Load returns the persisted capture log, or an empty list when
	// nothing has been stored yet.
	Load(ctx context.Context) ([]domain.CaptureEvent, error)

	// Save replaces the persisted capture log with events.
	Save(ctx context.Context, events []domain.CaptureEvent) error

	// Clear removes the persisted capture log.
	Clear(ctx context.Context) error
}
