package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/dberr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, name, email, password_hash)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrDuplicateCredential, err)
		}
		return nil, dberr.Wrap(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return user, nil
}
