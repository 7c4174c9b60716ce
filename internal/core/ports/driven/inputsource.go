package driven

import "github.com/pulsefeed-labs/pulse-cli/internal/core/domain"

// InputEvent is one observed local interaction, before it becomes a
// domain.CaptureEvent.
type InputEvent struct {
	// Kind is the interaction kind.
	Kind domain.CaptureKind

	// Label is a short description of the interaction.
	Label string

	// ScrollDepth is the observed scroll position as a fraction in
	// [0, 1]. Only meaningful for scroll events.
	ScrollDepth float64

	// Meta carries optional kind-specific details.
	Meta map[string]string
}

// CancelFunc removes a subscription. Safe to call more than once.
type CancelFunc func()

// InputSource delivers local interaction events to a subscriber.
// The recorder subscribes to each kind on entering the capturing state
// and cancels every subscription on leaving it.
//
// Handlers are invoked from a single goroutine in arrival order.
type InputSource interface {
	// Subscribe registers fn for events of the given kind and returns
	// a cancel function that removes the subscription.
	Subscribe(kind domain.CaptureKind, fn func(InputEvent)) CancelFunc
}
