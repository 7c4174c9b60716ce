// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// Tab identifies which feed tab is currently active.
type Tab int

const (
	// TabUnified shows remote and local events interleaved.
	TabUnified Tab = iota
	// TabRemote shows only the upstream activity feed.
	TabRemote
	// TabLocal shows only the captured interaction log.
	TabLocal
)

// String returns the display name of the tab.
func (t Tab) String() string {
	switch t {
	case TabUnified:
		return "unified"
	case TabRemote:
		return "github"
	case TabLocal:
		return "local"
	default:
		return "unknown"
	}
}

// FeedLoaded carries a fetched remote feed back to the model.
// Seq identifies which fetch produced it; the model discards results
// whose Seq is not the latest one issued.
type FeedLoaded struct {
	Seq    uint64
	Events []domain.NormalizedEvent
	Rate   domain.RateInfo
	Err    error
}

// CaptureToggled signals a capture start or stop completed.
type CaptureToggled struct {
	Capturing bool
	Err       error
}

// CaptureExported signals the capture log was written to a file.
type CaptureExported struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
