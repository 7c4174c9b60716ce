package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driving"
	"github.com/pulsefeed-labs/pulse-cli/internal/logger"
)

// DefaultHeartbeatInterval is how often a capturing session records a
// heartbeat event.
const DefaultHeartbeatInterval = 30 * time.Second

// subscribedKinds are the interaction kinds a capturing session
// listens for. Heartbeats are generated internally, not subscribed.
var subscribedKinds = []domain.CaptureKind{
	domain.CaptureClick,
	domain.CaptureKey,
	domain.CaptureScroll,
	domain.CaptureVisibility,
	domain.CaptureCopy,
	domain.CaptureRoute,
}

// Ensure Recorder implements the interface.
var _ driving.CaptureRecorder = (*Recorder)(nil)

// Recorder implements driving.CaptureRecorder: an off/capturing state
// machine over an explicit subscription list, with the capture log
// persisted on every change.
//
// Persistence is synchronous best-effort: a failing store never fails
// a record.
type Recorder struct {
	store     driven.CaptureStore
	input     driven.InputSource
	heartbeat time.Duration

	mu      sync.Mutex
	events  []domain.CaptureEvent
	session *captureSession
}

// captureSession holds everything a capturing period owns. Tearing it
// down cancels all of it as one unit.
type captureSession struct {
	cancels    []driven.CancelFunc
	stopCh     chan struct{}
	wg         sync.WaitGroup
	scrollHigh float64
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithHeartbeatInterval overrides the heartbeat period. Useful for
// testing.
func WithHeartbeatInterval(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.heartbeat = d }
}

// NewRecorder creates a recorder and loads the persisted capture log.
// input may be nil, in which case only heartbeats are recorded while
// capturing.
func NewRecorder(
	ctx context.Context, store driven.CaptureStore, input driven.InputSource, opts ...RecorderOption,
) (*Recorder, error) {
	r := &Recorder{
		store:     store,
		input:     input,
		heartbeat: DefaultHeartbeatInterval,
	}
	for _, opt := range opts {
		opt(r)
	}

	events, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading capture log: %w", err)
	}
	r.events = events

	return r, nil
}

// Start enters the capturing state. All subscriptions and the
// heartbeat are registered as one unit.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return domain.ErrCaptureActive
	}

	session := &captureSession{
		stopCh: make(chan struct{}),
	}

	if r.input != nil {
		for _, kind := range subscribedKinds {
			cancel := r.input.Subscribe(kind, r.observe)
			session.cancels = append(session.cancels, cancel)
		}
	}

	session.wg.Add(1)
	go r.runHeartbeat(ctx, session)

	r.session = session
	logger.Info("capture: started (%d subscriptions)", len(session.cancels))
	return nil
}

// Stop leaves the capturing state. Every subscription and the
// heartbeat are torn down before it returns; there is no partial
// teardown.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	session := r.session
	r.session = nil
	r.mu.Unlock()

	if session == nil {
		return domain.ErrCaptureInactive
	}

	for _, cancel := range session.cancels {
		cancel()
	}
	close(session.stopCh)
	session.wg.Wait()

	logger.Info("capture: stopped")
	return nil
}

// Capturing reports whether capture is active.
func (r *Recorder) Capturing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// runHeartbeat records a heartbeat event at the configured interval
// until the session ends.
func (r *Recorder) runHeartbeat(ctx context.Context, session *captureSession) {
	defer session.wg.Done()

	ticker := time.NewTicker(r.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-session.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Record(domain.CaptureEvent{
				Kind:  domain.CaptureHeartbeat,
				Label: "session heartbeat",
			})
		}
	}
}

// observe converts one input event into a capture record. Scroll
// events only pass when the maximum observed depth increases; the
// watermark belongs to the session and resets with it.
func (r *Recorder) observe(in driven.InputEvent) {
	if in.Kind == domain.CaptureScroll {
		r.mu.Lock()
		session := r.session
		if session == nil || in.ScrollDepth <= session.scrollHigh {
			r.mu.Unlock()
			return
		}
		session.scrollHigh = in.ScrollDepth
		r.mu.Unlock()

		meta := in.Meta
		if meta == nil {
			meta = map[string]string{}
		}
		meta["depth"] = fmt.Sprintf("%.2f", in.ScrollDepth)
		in.Meta = meta
	}

	r.Record(domain.CaptureEvent{
		Kind:  in.Kind,
		Label: in.Label,
		Meta:  in.Meta,
	})
}

// Record appends one event to the log (newest first, capped) and
// persists the whole list. Missing ID and timestamp are filled in.
func (r *Recorder) Record(ev domain.CaptureEvent) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	r.events = domain.PrependCapped(r.events, ev)
	r.persistLocked()
	r.mu.Unlock()
}

// persistLocked writes the current log to the store. Failures are
// logged and ignored. Caller must hold r.mu.
func (r *Recorder) persistLocked() {
	if err := r.store.Save(context.Background(), r.events); err != nil {
		logger.Warn("capture: persist failed: %v", err)
	}
}

// Events returns a snapshot of the capture log, newest first.
func (r *Recorder) Events() []domain.CaptureEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.CaptureEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Export serializes the capture log verbatim as indented JSON.
func (r *Recorder) Export() ([]byte, error) {
	r.mu.Lock()
	events := r.events
	if events == nil {
		events = []domain.CaptureEvent{}
	}
	r.mu.Unlock()

	return json.MarshalIndent(events, "", "  ")
}

// Import parses data and replaces the capture log wholesale. The cap
// still applies to oversized imports.
func (r *Recorder) Import(ctx context.Context, data []byte) error {
	var events []domain.CaptureEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedImport, err)
	}
	if len(events) > domain.MaxCaptureLog {
		events = events[:domain.MaxCaptureLog]
	}

	r.mu.Lock()
	r.events = events
	r.persistLocked()
	r.mu.Unlock()

	logger.Info("capture: imported %d events", len(events))
	return nil
}

// Clear empties the capture log and its persisted copy.
func (r *Recorder) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()

	if err := r.store.Clear(ctx); err != nil {
		logger.Warn("capture: clear persisted copy failed: %v", err)
	}
	return nil
}
