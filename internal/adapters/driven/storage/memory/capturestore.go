// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and as a fallback when no data
// directory is available.
package memory

import (
	"context"
	"sync"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
)

// Ensure CaptureStore implements the interface.
var _ driven.CaptureStore = (*CaptureStore)(nil)

// CaptureStore is an in-memory implementation of driven.CaptureStore.
type CaptureStore struct {
	mu     sync.RWMutex
	events []domain.CaptureEvent
	stored bool
}

// NewCaptureStore creates a new in-memory capture store.
func NewCaptureStore() *CaptureStore {
	return &CaptureStore{}
}

// Load returns the stored capture log.
func (s *CaptureStore) Load(_ context.Context) ([]domain.CaptureEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.stored {
		return nil, nil
	}
	out := make([]domain.CaptureEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

// Save replaces the stored capture log.
func (s *CaptureStore) Save(_ context.Context, events []domain.CaptureEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]domain.CaptureEvent(nil), events...)
	s.stored = true
	return nil
}

// Clear removes the stored capture log.
func (s *CaptureStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.stored = false
	return nil
}
