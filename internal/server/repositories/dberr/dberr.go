// Package dberr classifies driver errors from pgx and modernc sqlite into the
// sentinels in internal/common, so services never look at driver types.
package dberr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsUniqueViolation reports whether err is a unique or primary key violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

// IsCheckViolation reports whether err is a CHECK constraint violation.
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_CHECK
	}
	return false
}

// Wrap maps err to a sentinel:
//
//   - sql.ErrNoRows          -> common.ErrNotFound
//   - context cancellation   -> returned unchanged
//   - FK / CHECK violations  -> common.ErrInvalidTask
//   - anything else          -> common.ErrStoreUnavailable
//
// Unique violations are left to the caller, which knows what was duplicated.
func Wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case IsForeignKeyViolation(err), IsCheckViolation(err):
		return fmt.Errorf("%w: %v", common.ErrInvalidTask, err)
	}
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
