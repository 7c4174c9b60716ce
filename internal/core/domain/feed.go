package domain

import (
	"sort"
	"time"
)

// ItemSource tags the origin of a UnifiedItem.
type ItemSource string

// Unified item origins.
const (
	SourceRemote ItemSource = "github"
	SourceLocal  ItemSource = "local"
)

// UnifiedItem is either a NormalizedEvent or a CaptureEvent, tagged by
// origin. Computed on demand for display; never persisted.
type UnifiedItem struct {
	// Source discriminates which of the two event fields is set.
	Source ItemSource `json:"source"`

	// Remote is set when Source is SourceRemote.
	Remote *NormalizedEvent `json:"remote,omitempty"`

	// Local is set when Source is SourceLocal.
	Local *CaptureEvent `json:"local,omitempty"`
}

// CreatedAt returns the timestamp of the underlying event.
func (it UnifiedItem) CreatedAt() time.Time {
	switch {
	case it.Remote != nil:
		return it.Remote.CreatedAt
	case it.Local != nil:
		return it.Local.CreatedAt
	}
	return time.Time{}
}

// MergeUnified combines a remote feed snapshot with the local capture
// log into one list ordered non-increasing by timestamp. The inputs
// are not modified.
func MergeUnified(remote []NormalizedEvent, local []CaptureEvent) []UnifiedItem {
	items := make([]UnifiedItem, 0, len(remote)+len(local))
	for i := range remote {
		items = append(items, UnifiedItem{Source: SourceRemote, Remote: &remote[i]})
	}
	for i := range local {
		items = append(items, UnifiedItem{Source: SourceLocal, Local: &local[i]})
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt().After(items[b].CreatedAt())
	})
	return items
}

// SortEventsDesc orders events in place, newest first.
func SortEventsDesc(events []NormalizedEvent) {
	sort.SliceStable(events, func(a, b int) bool {
		return events[a].CreatedAt.After(events[b].CreatedAt)
	})
}
