// Package file provides TOML-backed application configuration.
// Configuration lives in a single file within the pulse config
// directory and can be watched for changes by long-running commands.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/pulsefeed-labs/pulse-cli/internal/core/domain"
)

// Config is the persisted application configuration.
type Config struct {
	// Username is the default GitHub login to fetch activity for.
	Username string `toml:"username"`

	// Token is the optional bearer credential for upstream calls.
	Token string `toml:"token"`

	// IncludeReceived also fetches events received by the user.
	IncludeReceived bool `toml:"include_received"`

	// PerPage is the default upstream page size.
	PerPage int `toml:"per_page"`

	// ListenAddr is the HTTP API listen address for pulse serve.
	ListenAddr string `toml:"listen_addr"`

	// DataDir overrides where the capture database lives.
	DataDir string `toml:"data_dir"`
}

// DefaultConfig returns the configuration used before anything is set.
func DefaultConfig() Config {
	return Config{
		PerPage:    domain.DefaultPerPage,
		ListenAddr: "127.0.0.1:8787",
	}
}

// Store is a file-based configuration store using TOML.
type Store struct {
	mu       sync.RWMutex
	filePath string
	cfg      Config
}

// NewStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.pulse.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".pulse")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &Store{
		filePath: filepath.Join(configDir, "config.toml"),
		cfg:      DefaultConfig(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}

// Config returns a copy of the current configuration.
func (s *Store) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update mutates the configuration through fn and persists immediately.
func (s *Store) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.cfg)
	return s.save()
}

// Load reads configuration from the TOML file. Missing optional fields
// keep their defaults.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *Store) save() error {
	data, err := toml.Marshal(s.cfg)
	if err != nil {
		return err
	}

	// Restricted permissions: the file may hold a token.
	return os.WriteFile(s.filePath, data, 0600)
}
