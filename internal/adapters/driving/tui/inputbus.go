package tui

import (
	"sync"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
)

// Bus is the in-process input source for the TUI. The app publishes
// interaction events onto it and the capture recorder subscribes per
// kind.
//
// Handlers run synchronously inside Emit. The Bubbletea update loop is
// single-threaded, so events arrive at subscribers in order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[domain.CaptureKind]map[int]func(driven.InputEvent)
}

// Ensure Bus implements the input source port.
var _ driven.InputSource = (*Bus)(nil)

// NewBus creates an empty input bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[domain.CaptureKind]map[int]func(driven.InputEvent))}
}

// Subscribe registers fn for events of the given kind. The returned
// cancel function removes the subscription and is safe to call more
// than once.
func (b *Bus) Subscribe(kind domain.CaptureKind, fn func(driven.InputEvent)) driven.CancelFunc {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[kind] == nil {
		b.subs[kind] = make(map[int]func(driven.InputEvent))
	}
	id := b.nextID
	b.nextID++
	b.subs[kind][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[kind], id)
		})
	}
}

// Emit delivers ev to every subscriber of its kind. Events with no
// subscribers are dropped.
func (b *Bus) Emit(ev driven.InputEvent) {
	b.mu.RLock()
	handlers := make([]func(driven.InputEvent), 0, len(b.subs[ev.Kind]))
	for _, fn := range b.subs[ev.Kind] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// SubscriberCount reports how many handlers are registered for kind.
func (b *Bus) SubscriberCount(kind domain.CaptureKind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[kind])
}
