// Package repomanager vends repository implementations for the configured
// database and runs its schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// Supported values of the database driver setting.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}

// New returns the manager for driver.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	case DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// Open opens and pings the database for driver. SQLite connections get
// foreign keys enforced and a busy timeout; an in-memory SQLite database is
// limited to one connection so every query sees the same data.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
