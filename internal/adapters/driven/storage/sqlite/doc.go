// Package sqlite provides SQLite-backed persistence for the local
// capture log. The log lives as one JSON blob under a single durable
// key, matching the single-key contract of the capture store port.
package sqlite
