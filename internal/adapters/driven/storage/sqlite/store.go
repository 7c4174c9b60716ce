package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pulsefeed-labs/pulse-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
	"github.com/pulsefeed-labs/pulse-cli/internal/core/ports/driven"
)

// captureKey is the single durable key the capture log is stored under.
const captureKey = "capture_log"

// Ensure Store implements the interface.
var _ driven.CaptureStore = (*Store)(nil)

// Store is a SQLite-backed capture store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pulse/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pulse", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "capture.db")

	// WAL mode for better concurrency between the TUI and CLI
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted capture log, or an empty list when
// nothing has been stored yet.
func (s *Store) Load(ctx context.Context) ([]domain.CaptureEvent, error) {
	var payload string
	row := s.db.QueryRowContext(ctx,
		"SELECT payload FROM capture_log WHERE key = ?", captureKey)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading capture log: %w", err)
	}

	var events []domain.CaptureEvent
	if err := json.Unmarshal([]byte(payload), &events); err != nil {
		return nil, fmt.Errorf("decoding capture log: %w", err)
	}
	return events, nil
}

// Save replaces the persisted capture log with events.
func (s *Store) Save(ctx context.Context, events []domain.CaptureEvent) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encoding capture log: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO capture_log (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`, captureKey, string(payload))
	if err != nil {
		return fmt.Errorf("saving capture log: %w", err)
	}
	return nil
}

// Clear removes the persisted capture log.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM capture_log WHERE key = ?", captureKey)
	if err != nil {
		return fmt.Errorf("clearing capture log: %w", err)
	}
	return nil
}

// migrate applies any pending .up.sql migrations from fsys.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
