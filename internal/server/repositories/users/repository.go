// Package users is the credential store: user identities and password hashes.
package users

import (
	"context"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

// Repository persists users. Create fails with common.ErrDuplicateCredential
// when the name or email is taken; lookups return common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
