// Package common defines shared constants and sentinel errors used across
// client and server layers of tasktracker. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Session errors. All of them mean the caller is unauthenticated.
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("token expired")

	// Login failure. Deliberately the same for unknown email and wrong password.
	ErrUnauthorized = errors.New("unauthorized")

	// Repository-level errors.
	ErrNotFound            = errors.New("not found")
	ErrDuplicateCredential = errors.New("user already exists")
	ErrStoreUnavailable    = errors.New("store unavailable")

	// Service-level errors.
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidQuery = errors.New("invalid query")
	ErrInvalidTask  = errors.New("invalid task")
	ErrInvalidUser  = errors.New("invalid user")
	ErrInternal     = errors.New("internal error")
)

// IsAuthError reports whether err means the session could not be established.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingCredential) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrExpiredCredential)
}

// IsRetryable reports whether the caller may retry the operation that produced err.
// Only store outages qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
