// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/streakly/streakly/internal/db"
)

// Open returns a migrated SQLite database in a temp directory, closed on test cleanup.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	conn, err := db.Init(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	err = db.RunMigrations(conn.DB, db.DriverSQLite)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return conn
}
