package domain

import "time"

// MaxCaptureLog is the upper bound on the local capture list.
// When a new event would exceed it, the oldest entries are dropped.
const MaxCaptureLog = 2000

// CaptureKind identifies the kind of locally captured interaction.
type CaptureKind string

// The fixed set of capture kinds.
const (
	CaptureClick      CaptureKind = "click"
	CaptureKey        CaptureKind = "key"
	CaptureScroll     CaptureKind = "scroll"
	CaptureVisibility CaptureKind = "visibility"
	CaptureCopy       CaptureKind = "copy"
	CaptureHeartbeat  CaptureKind = "heartbeat"
	CaptureRoute      CaptureKind = "route"
)

// CaptureEvent is a record of one local interaction. It never leaves
// the machine it was recorded on.
type CaptureEvent struct {
	// ID is a client-generated unique token.
	ID string `json:"id"`

	// Kind is the interaction kind.
	Kind CaptureKind `json:"kind"`

	// Label is a short human-readable description.
	Label string `json:"label"`

	// CreatedAt is when the interaction was observed.
	CreatedAt time.Time `json:"createdAt"`

	// Meta carries optional kind-specific details.
	Meta map[string]string `json:"meta,omitempty"`
}

// PrependCapped prepends ev to log (most-recent-first) and enforces
// MaxCaptureLog by dropping the oldest entries.
func PrependCapped(log []CaptureEvent, ev CaptureEvent) []CaptureEvent {
	log = append([]CaptureEvent{ev}, log...)
	if len(log) > MaxCaptureLog {
		log = log[:MaxCaptureLog]
	}
	return log
}
