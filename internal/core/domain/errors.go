package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUsernameRequired indicates an activity fetch without a username.
	// Surfaced immediately; no remote call is made.
	ErrUsernameRequired = errors.New("username is required")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCaptureActive indicates capture is already running.
	ErrCaptureActive = errors.New("capture already active")

	// ErrCaptureInactive indicates capture is not running.
	ErrCaptureInactive = errors.New("capture not active")

	// ErrMalformedImport indicates an import file that does not parse
	// as a capture log. Surfaced as a blocking user notice.
	ErrMalformedImport = errors.New("malformed capture import")
)
