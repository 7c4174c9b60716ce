package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
)

func TestBus_SubscribeAndEmit(t *testing.T) {
	t.Run("delivers events to the matching kind only", func(t *testing.T) {
		bus := NewBus()

		var clicks, keys []driven.InputEvent
		bus.Subscribe(domain.CaptureClick, func(ev driven.InputEvent) {
			clicks = append(clicks, ev)
		})
		bus.Subscribe(domain.CaptureKey, func(ev driven.InputEvent) {
			keys = append(keys, ev)
		})

		bus.Emit(driven.InputEvent{Kind: domain.CaptureClick, Label: "open"})
		bus.Emit(driven.InputEvent{Kind: domain.CaptureKey, Label: "j"})
		bus.Emit(driven.InputEvent{Kind: domain.CaptureScroll, ScrollDepth: 0.5})

		assert.Len(t, clicks, 1)
		assert.Equal(t, "open", clicks[0].Label)
		assert.Len(t, keys, 1)
		assert.Equal(t, "j", keys[0].Label)
	})

	t.Run("emit without subscribers is a no-op", func(t *testing.T) {
		bus := NewBus()
		assert.NotPanics(t, func() {
			bus.Emit(driven.InputEvent{Kind: domain.CaptureCopy})
		})
	})

	t.Run("cancel removes the subscription", func(t *testing.T) {
		bus := NewBus()

		calls := 0
		cancel := bus.Subscribe(domain.CaptureClick, func(driven.InputEvent) { calls++ })

		bus.Emit(driven.InputEvent{Kind: domain.CaptureClick})
		cancel()
		bus.Emit(driven.InputEvent{Kind: domain.CaptureClick})

		assert.Equal(t, 1, calls)
		assert.Zero(t, bus.SubscriberCount(domain.CaptureClick))
	})

	t.Run("cancel is safe to call twice", func(t *testing.T) {
		bus := NewBus()
		cancel := bus.Subscribe(domain.CaptureKey, func(driven.InputEvent) {})

		cancel()
		assert.NotPanics(t, func() { cancel() })
	})

	t.Run("multiple subscribers of one kind all fire", func(t *testing.T) {
		bus := NewBus()

		first, second := 0, 0
		bus.Subscribe(domain.CaptureScroll, func(driven.InputEvent) { first++ })
		bus.Subscribe(domain.CaptureScroll, func(driven.InputEvent) { second++ })

		bus.Emit(driven.InputEvent{Kind: domain.CaptureScroll})

		assert.Equal(t, 1, first)
		assert.Equal(t, 1, second)
		assert.Equal(t, 2, bus.SubscriberCount(domain.CaptureScroll))
	})
}
