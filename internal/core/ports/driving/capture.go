package driving

import (
	"context"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// CaptureRecorder manages the local capture lifecycle: an off/capturing
// state machine plus the persisted event log.
type CaptureRecorder interface {
	// Start enters the capturing state: registers all input
	// subscriptions and the heartbeat as one unit.
	Start(ctx context.Context) error

	// Stop leaves the capturing state, tearing down every
	// subscription and the heartbeat atomically.
	Stop() error

	// Capturing reports whether capture is active.
	Capturing() bool

	// Events returns a snapshot of the capture log, newest first.
	Events() []domain.CaptureEvent

	// Record appends one interaction to the log and persists it.
	// Usable regardless of capture state (imports, tests).
	Record(ev domain.CaptureEvent)

	// Export serializes the capture log verbatim as JSON.
	Export() ([]byte, error)

	// Import parses data and replaces the capture log wholesale.
	Import(ctx context.Context, data []byte) error

	// Clear empties the capture log and its persisted copy.
	Clear(ctx context.Context) error
}
