package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"
)

// Backend is a small synchronous key-value store for UI preferences.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Store wraps the SQLite database and exposes higher-level helpers.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is a single persisted preference.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

var (
	// ErrNotFound indicates the requested preference does not exist.
	ErrNotFound = errors.New("preference not found")
	// ErrUnknownBackend indicates an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Open bootstraps the SQLite store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps writes ordered and makes ":memory:" usable.
	db.SetMaxOpenConns(1)

	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases DB resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migrations: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// GetContext loads a single preference by key.
func (s *Store) GetContext(ctx context.Context, key string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM preferences WHERE key = ?`, key)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("get preference: %w", err)
	}
	return entry, nil
}

// SetContext inserts or replaces a preference.
func (s *Store) SetContext(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("preference key required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// DeleteContext removes a preference. Missing keys are not an error.
func (s *Store) DeleteContext(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

// List returns every stored preference ordered by key.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, updated_at FROM preferences ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("preference rows: %w", err)
	}
	return entries, nil
}

// Get implements Backend.
func (s *Store) Get(key string) (string, bool, error) {
	entry, err := s.GetContext(context.Background(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set implements Backend.
func (s *Store) Set(key, value string) error {
	return s.SetContext(context.Background(), key, value)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(rs rowScanner) (Entry, error) {
	var e Entry
	var updated string
	if err := rs.Scan(&e.Key, &e.Value, &updated); err != nil {
		return Entry{}, err
	}
	if updated != "" {
		if t, err := time.Parse(time.RFC3339, updated); err == nil {
			e.UpdatedAt = t
		}
	}
	return e, nil
}

// OpenBackend opens the named backend inside dir.
func OpenBackend(ctx context.Context, kind, dir string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "sqlite":
		return Open(ctx, filepath.Join(dir, "toolterm.db"))
	case "toml", "file":
		return OpenFile(filepath.Join(dir, "preferences.toml"))
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, kind)
	}
}
