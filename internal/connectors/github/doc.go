// Package github implements the ActivitySource port against the GitHub
// Events API.
//
// A fetch issues up to two concurrent requests (events performed by the
// user, and optionally events received by them), deduplicates the raw
// events by id, maps each one through a per-category formatter, and
// returns the result sorted newest-first together with rate-limit
// metadata read from the primary response headers.
//
// The primary request failing is an error; the secondary request
// failing is swallowed and contributes zero events.
package github
