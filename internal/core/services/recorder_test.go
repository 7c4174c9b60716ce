package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
)

// stubCaptureStore implements driven.CaptureStore for testing.
type stubCaptureStore struct {
	mu      sync.Mutex
	saved   []domain.CaptureEvent
	loaded  []domain.CaptureEvent
	saveErr error
	clears  int
}

func (s *stubCaptureStore) Load(_ context.Context) ([]domain.CaptureEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded, nil
}

func (s *stubCaptureStore) Save(_ context.Context, events []domain.CaptureEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append([]domain.CaptureEvent(nil), events...)
	return nil
}

func (s *stubCaptureStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.saved = nil
	return nil
}

func (s *stubCaptureStore) lastSaved() []domain.CaptureEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

// fakeInputSource implements driven.InputSource with manual emission.
type fakeInputSource struct {
	mu       sync.Mutex
	handlers map[domain.CaptureKind][]func(driven.InputEvent)
	active   int
}

func newFakeInputSource() *fakeInputSource {
	return &fakeInputSource{handlers: make(map[domain.CaptureKind][]func(driven.InputEvent))}
}

func (f *fakeInputSource) Subscribe(kind domain.CaptureKind, fn func(driven.InputEvent)) driven.CancelFunc {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.handlers[kind] = append(f.handlers[kind], fn)
	f.active++

	idx := len(f.handlers[kind]) - 1
	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.handlers[kind][idx] = nil
			f.active--
		})
	}
}

func (f *fakeInputSource) emit(ev driven.InputEvent) {
	f.mu.Lock()
	fns := append(([]func(driven.InputEvent))(nil), f.handlers[ev.Kind]...)
	f.mu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			fn(ev)
		}
	}
}

func (f *fakeInputSource) activeSubscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func newTestRecorder(t *testing.T, store *stubCaptureStore, input driven.InputSource) *Recorder {
	t.Helper()
	r, err := NewRecorder(context.Background(), store, input,
		WithHeartbeatInterval(time.Hour)) // effectively disabled
	require.NoError(t, err)
	return r
}

func TestRecorder_StateMachine(t *testing.T) {
	t.Run("start then stop", func(t *testing.T) {
		input := newFakeInputSource()
		r := newTestRecorder(t, &stubCaptureStore{}, input)

		assert.False(t, r.Capturing())
		require.NoError(t, r.Start(context.Background()))
		assert.True(t, r.Capturing())
		assert.Equal(t, len(subscribedKinds), input.activeSubscriptions())

		require.NoError(t, r.Stop())
		assert.False(t, r.Capturing())
		assert.Zero(t, input.activeSubscriptions(), "teardown must cancel everything")
	})

	t.Run("double start fails", func(t *testing.T) {
		r := newTestRecorder(t, &stubCaptureStore{}, nil)
		require.NoError(t, r.Start(context.Background()))
		defer func() { _ = r.Stop() }()

		assert.ErrorIs(t, r.Start(context.Background()), domain.ErrCaptureActive)
	})

	t.Run("stop when off fails", func(t *testing.T) {
		r := newTestRecorder(t, &stubCaptureStore{}, nil)
		assert.ErrorIs(t, r.Stop(), domain.ErrCaptureInactive)
	})

	t.Run("events are dropped after stop", func(t *testing.T) {
		input := newFakeInputSource()
		r := newTestRecorder(t, &stubCaptureStore{}, input)
		require.NoError(t, r.Start(context.Background()))
		require.NoError(t, r.Stop())

		input.emit(driven.InputEvent{Kind: domain.CaptureClick, Label: "late"})

		assert.Empty(t, r.Events())
	})
}

func TestRecorder_Record(t *testing.T) {
	t.Run("prepends newest and persists every change", func(t *testing.T) {
		store := &stubCaptureStore{}
		r := newTestRecorder(t, store, nil)

		r.Record(domain.CaptureEvent{Kind: domain.CaptureKey, Label: "first"})
		r.Record(domain.CaptureEvent{Kind: domain.CaptureKey, Label: "second"})

		events := r.Events()
		require.Len(t, events, 2)
		assert.Equal(t, "second", events[0].Label)
		assert.NotEmpty(t, events[0].ID)
		assert.False(t, events[0].CreatedAt.IsZero())

		saved := store.lastSaved()
		require.Len(t, saved, 2)
		assert.Equal(t, "second", saved[0].Label)
	})

	t.Run("caps the log at the maximum", func(t *testing.T) {
		store := &stubCaptureStore{}
		r := newTestRecorder(t, store, nil)

		for i := 0; i < domain.MaxCaptureLog+1; i++ {
			r.Record(domain.CaptureEvent{
				Kind:  domain.CaptureKey,
				Label: fmt.Sprintf("ev-%d", i),
			})
		}

		events := r.Events()
		require.Len(t, events, domain.MaxCaptureLog)
		assert.Equal(t, fmt.Sprintf("ev-%d", domain.MaxCaptureLog), events[0].Label)
		assert.Equal(t, "ev-1", events[len(events)-1].Label, "oldest entry dropped")
	})

	t.Run("persistence failures are swallowed", func(t *testing.T) {
		store := &stubCaptureStore{saveErr: errors.New("quota exceeded")}
		r := newTestRecorder(t, store, nil)

		r.Record(domain.CaptureEvent{Kind: domain.CaptureKey, Label: "kept"})

		require.Len(t, r.Events(), 1)
	})
}

func TestRecorder_ScrollWatermark(t *testing.T) {
	input := newFakeInputSource()
	r := newTestRecorder(t, &stubCaptureStore{}, input)
	require.NoError(t, r.Start(context.Background()))

	scroll := func(depth float64) {
		input.emit(driven.InputEvent{Kind: domain.CaptureScroll, Label: "scroll", ScrollDepth: depth})
	}

	scroll(0.5)
	scroll(0.4) // below watermark, suppressed
	scroll(0.8)
	require.Len(t, r.Events(), 2)
	assert.Equal(t, "0.80", r.Events()[0].Meta["depth"])

	// Restarting the session resets the watermark.
	require.NoError(t, r.Stop())
	require.NoError(t, r.Start(context.Background()))
	defer func() { _ = r.Stop() }()

	scroll(0.5)
	events := r.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "0.50", events[0].Meta["depth"])
}

func TestRecorder_Heartbeat(t *testing.T) {
	store := &stubCaptureStore{}
	r, err := NewRecorder(context.Background(), store, nil,
		WithHeartbeatInterval(5*time.Millisecond))
	require.NoError(t, err)

	require.NoError(t, r.Start(context.Background()))
	time.Sleep(60 * time.Millisecond)
	require.NoError(t, r.Stop())

	events := r.Events()
	require.NotEmpty(t, events, "expected at least one heartbeat")
	assert.Equal(t, domain.CaptureHeartbeat, events[0].Kind)
}

func TestRecorder_ExportImport(t *testing.T) {
	t.Run("round trip reproduces the list", func(t *testing.T) {
		store := &stubCaptureStore{}
		r := newTestRecorder(t, store, nil)
		r.Record(domain.CaptureEvent{Kind: domain.CaptureClick, Label: "one"})
		r.Record(domain.CaptureEvent{Kind: domain.CaptureKey, Label: "two"})
		before := r.Events()

		data, err := r.Export()
		require.NoError(t, err)

		other := newTestRecorder(t, &stubCaptureStore{}, nil)
		require.NoError(t, other.Import(context.Background(), data))

		assert.Equal(t, before, other.Events())
	})

	t.Run("import replaces wholesale", func(t *testing.T) {
		r := newTestRecorder(t, &stubCaptureStore{}, nil)
		r.Record(domain.CaptureEvent{Kind: domain.CaptureKey, Label: "old"})

		data := []byte(`[{"id":"x","kind":"click","label":"new","createdAt":"2026-03-01T12:00:00Z"}]`)
		require.NoError(t, r.Import(context.Background(), data))

		events := r.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "new", events[0].Label)
	})

	t.Run("malformed import is surfaced", func(t *testing.T) {
		r := newTestRecorder(t, &stubCaptureStore{}, nil)

		err := r.Import(context.Background(), []byte("{not json"))

		assert.ErrorIs(t, err, domain.ErrMalformedImport)
	})
}

func TestRecorder_Clear(t *testing.T) {
	store := &stubCaptureStore{}
	r := newTestRecorder(t, store, nil)
	r.Record(domain.CaptureEvent{Kind: domain.CaptureKey, Label: "x"})

	require.NoError(t, r.Clear(context.Background()))

	assert.Empty(t, r.Events())
	assert.Equal(t, 1, store.clears)
}

func TestNewRecorder_LoadsPersistedLog(t *testing.T) {
	store := &stubCaptureStore{
		loaded: []domain.CaptureEvent{{ID: "persisted", Kind: domain.CaptureKey}},
	}

	r, err := NewRecorder(context.Background(), store, nil)
	require.NoError(t, err)

	events := r.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "persisted", events[0].ID)
}
