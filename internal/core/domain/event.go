package domain

import "time"

// EventCategory identifies the kind of remote activity event.
// Categories mirror the GitHub event types Pulse knows how to format;
// anything else is CategoryUnknown and falls back to the raw name.
type EventCategory string

// Known event categories.
const (
	CategoryPush         EventCategory = "push"
	CategoryPullRequest  EventCategory = "pull_request"
	CategoryIssue        EventCategory = "issue"
	CategoryIssueComment EventCategory = "issue_comment"
	CategoryStar         EventCategory = "star"
	CategoryFork         EventCategory = "fork"
	CategoryCreate       EventCategory = "create"
	CategoryRelease      EventCategory = "release"
	CategoryPublic       EventCategory = "public"
	CategoryUnknown      EventCategory = "unknown"
)

// Actor is the user who performed a remote event.
type Actor struct {
	// Login is the GitHub username.
	Login string `json:"login"`

	// AvatarURL is the user's avatar image URL.
	AvatarURL string `json:"avatarUrl,omitempty"`

	// ProfileURL is the user's profile page URL.
	ProfileURL string `json:"profileUrl,omitempty"`
}

// Repo is the repository a remote event happened in.
type Repo struct {
	// Name is the "owner/repo" slug.
	Name string `json:"name"`

	// URL is the repository page URL.
	URL string `json:"url,omitempty"`
}

// NormalizedEvent is a remote activity event mapped into the uniform
// display shape. Created once per fetch and never mutated.
type NormalizedEvent struct {
	// ID is the upstream event identifier, unique within a feed.
	ID string `json:"id"`

	// Category is the recognised event category.
	Category EventCategory `json:"category"`

	// ActionText is the human-readable one-line description.
	ActionText string `json:"actionText"`

	// Icon is a display icon tag for the category.
	Icon string `json:"icon"`

	// Details carries optional extra display lines (commit messages,
	// comment excerpts).
	Details []string `json:"details,omitempty"`

	// URL links to the event subject on GitHub.
	URL string `json:"url,omitempty"`

	// Actor is the user who performed the event.
	Actor Actor `json:"actor"`

	// Repo is the repository involved, if any.
	Repo *Repo `json:"repo,omitempty"`

	// CreatedAt is when the event happened upstream.
	CreatedAt time.Time `json:"createdAt"`
}
