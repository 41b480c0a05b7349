package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// timeFormat is the canonical timestamp encoding used in every table.
// RFC 3339 with nanoseconds sorts lexicographically, so range queries on
// fire_at and starts_at work directly on the stored text.
const timeFormat = time.RFC3339Nano

// Open opens (creating if necessary) the SQLite database at the given path
// and applies pending schema migrations. The special path ":memory:" opens
// an in-memory database, which is what the tests use.
//
// WAL journaling and a busy timeout are enabled so the HTTP handlers and
// the background dispatcher can share the connection pool; foreign keys are
// enforced so deleting a meeting cascades to its reminders.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		path,
	)
	if path == ":memory:" {
		// WAL is meaningless in memory; a shared cache keeps every pool
		// connection on the same database.
		dsn = "file::memory:?cache=shared&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under concurrent writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies all pending schema migrations to the database.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// formatTime encodes a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// parseTime decodes a stored timestamp.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
