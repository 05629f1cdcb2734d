package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/migrations"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Tasks returns a tasks.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewPostgresRepository(db)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Postgres)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, "postgres")
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
