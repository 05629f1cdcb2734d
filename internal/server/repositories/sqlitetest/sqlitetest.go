// Package sqlitetest opens migrated in-memory SQLite databases for tests of
// the repositories, services and transports.
package sqlitetest

import (
	"context"
	"database/sql"
	"io/fs"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/server/migrations"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DSN is an in-memory database with foreign keys enforced. Callers must keep
// the pool at one connection or each connection sees its own database.
const DSN = "file::memory:?_pragma=foreign_keys(1)"

// Open returns a fresh, fully migrated database closed at test cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", DSN)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	dir, err := fs.Sub(migrations.SQLite, "sqlite")
	if err != nil {
		t.Fatalf("migrations fs: %v", err)
	}
	p, err := goose.NewProvider(goose.DialectSQLite3, db, dir)
	if err != nil {
		t.Fatalf("goose provider: %v", err)
	}
	if _, err := p.Up(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

// CreateUser inserts a bare user row so tasks can reference it, and returns
// its id.
func CreateUser(t testing.TB, db *sql.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, name+"@example.com", "x", time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return id
}
