package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

const configKey = "remoteStoreConfig"

// Store is the durable local slot for the remote store configuration,
// backed by a single-row SQLite table so edits survive restarts. The
// value is loaded once at open and written back synchronously on every
// change. A malformed stored value is discarded in favor of the built-in
// defaults, never surfaced as an error.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	current Config
}

func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open settings db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init settings table: %w", err)
	}
	s := &Store{db: db, logger: logger, current: Default()}
	s.load()
	return s, nil
}

func (s *Store) load() {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, configKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return
	}
	if err != nil {
		s.logger.Warn("settings.load_failed", "error", err)
		return
	}
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		s.logger.Warn("settings.discarding_malformed", "error", err)
		return
	}
	s.current = cfg
}

// Current returns the configuration in effect.
func (s *Store) Current() Config { return s.current }

// Save validates the new configuration, persists it synchronously and
// swaps the in-memory value only after the write succeeded.
func (s *Store) Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		configKey, string(raw),
	); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}
	s.current = cfg
	s.logger.Info("settings.saved", "configured", cfg.IsConfigured())
	return nil
}

func (s *Store) Close() error { return s.db.Close() }
