package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/migrations"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories, used for local
// runs and tests.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "sqlite")
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

// sqliteDSN appends the pragmas every connection needs unless the DSN already
// sets pragmas itself.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = ":memory:"
	}
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
