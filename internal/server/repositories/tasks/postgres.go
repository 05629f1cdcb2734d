package tasks

import (
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
)

type PostgresRepository struct {
	store
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{store{db: db, d: postgresDialect}}
}

var _ Repository = (*PostgresRepository)(nil)
