package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Entry is one recorded suggestion.
type Entry struct {
	ID          string    `db:"id"`
	FileName    string    `db:"file_name"`
	Language    string    `db:"language"`
	Intention   string    `db:"intention"`
	Prompt      string    `db:"prompt"`
	Suggestion  string    `db:"suggestion"`
	Explanation string    `db:"explanation"`
	Confidence  float64   `db:"confidence"`
	Applied     bool      `db:"applied"`
	CreatedAt   time.Time `db:"created_at"`
}

// Store defines the persistence interface for the suggestion history.
type Store interface {
	SaveEntry(ctx context.Context, entry Entry) (string, error)
	ListEntries(ctx context.Context, limit int) ([]Entry, error)
	MarkApplied(ctx context.Context, id string) error
	Close() error
}

// SQLiteStore implements Store using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SaveEntry records one received suggestion and returns its generated ID.
func (s *SQLiteStore) SaveEntry(ctx context.Context, entry Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO suggestions (
			id, file_name, language, intention, prompt,
			suggestion, explanation, confidence, applied, created_at
		) VALUES (
			:id, :file_name, :language, :intention, :prompt,
			:suggestion, :explanation, :confidence, :applied, :created_at
		)`, entry)
	if err != nil {
		return "", fmt.Errorf("saving suggestion: %w", err)
	}

	return entry.ID, nil
}

// ListEntries returns the most recent entries, newest first.
func (s *SQLiteStore) ListEntries(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	var entries []Entry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, file_name, language, intention, prompt,
		       suggestion, explanation, confidence, applied, created_at
		FROM suggestions
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}

	return entries, nil
}

// MarkApplied flags an entry as applied to the buffer.
func (s *SQLiteStore) MarkApplied(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE suggestions SET applied = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking suggestion applied: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("suggestion %s not found", id)
	}

	return nil
}
