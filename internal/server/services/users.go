// Package services contains the server-side business logic shared by the
// gRPC and REST transports: accounts and sessions (UserService), task
// operations with the ownership guard and statistics (TaskService), and task
// export to object storage (ExportService).
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/dmitrijs2005/tasktracker/internal/cryptox"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/metrics"
	"github.com/dmitrijs2005/tasktracker/internal/server/models"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string `validate:"required,max=100"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=6"`
}

// UserService provides the account operations:
// - Register: create a user and start a session
// - Login: verify credentials and issue a session token
// - CurrentUser: load the caller's profile
// - Authenticate: resolve a session token to a user id
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	auth        *auth.Authenticator
	log         logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, a *auth.Authenticator, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		auth:        a,
		log:         log.With("module", "users"),
	}
}

// Register creates a user with a bcrypt-hashed password and returns a fresh
// session token. A taken name or email is ErrDuplicateCredential.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return "", nil, validationError(common.ErrInvalidUser, err)
	}
	if len(in.Password) > cryptox.MaxPasswordBytes {
		return "", nil, fmt.Errorf("%w: password must be at most %d bytes", common.ErrInvalidUser, cryptox.MaxPasswordBytes)
	}

	password := []byte(in.Password)
	defer common.WipeByteArray(password)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return "", nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.auth.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return token, user, nil
}

// Login verifies email and password and returns a session token. Unknown
// email and wrong password both yield ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	candidate := []byte(password)
	defer common.WipeByteArray(candidate)

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// spend the same bcrypt time as a real comparison
			_, _ = cryptox.CheckPassword(dummyHash(), candidate)
			return "", common.ErrUnauthorized
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	ok, err := cryptox.CheckPassword(user.PasswordHash, candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	if !ok {
		return "", common.ErrUnauthorized
	}

	token, err := s.auth.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	return token, nil
}

// CurrentUser returns the caller's account.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return user, nil
}

// Authenticate resolves a session token to the user id it was issued for.
// Errors are ErrMissingCredential, ErrInvalidCredential or ErrExpiredCredential.
func (s *UserService) Authenticate(token string) (string, error) {
	userID, err := s.auth.Authenticate(token)
	if err != nil {
		metrics.AuthFailures.WithLabelValues(authFailureReason(err)).Inc()
		return "", err
	}
	return userID, nil
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func authFailureReason(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingCredential):
		return "missing"
	case errors.Is(err, common.ErrExpiredCredential):
		return "expired"
	default:
		return "invalid"
	}
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue string
)

func dummyHash() string {
	dummyHashOnce.Do(func() {
		dummyHashValue, _ = cryptox.HashPassword([]byte(uuid.NewString()))
	})
	return dummyHashValue
}
