package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/dbx"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/dberr"
)

// SQLiteRepository stores created_at as unix milliseconds.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	createdAt := r.now().UTC().Truncate(time.Millisecond)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, createdAt.UnixMilli())
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrDuplicateCredential, err)
		}
		return nil, dberr.Wrap(err)
	}

	user.CreatedAt = createdAt
	return user, nil
}

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var createdAt int64
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	user.CreatedAt = time.UnixMilli(createdAt).UTC()
	return user, nil
}
