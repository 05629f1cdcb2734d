// Package cryptox hashes and verifies user passwords with bcrypt.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt will hash, counted in
// bytes of its UTF-8 encoding.
const MaxPasswordBytes = 72

// Cost is the bcrypt work factor used for new hashes.
var Cost = bcrypt.DefaultCost

// HashPassword returns the salted bcrypt hash of password.
func HashPassword(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. A malformed hash is an
// error; a plain mismatch is not.
func CheckPassword(hash string, password []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), password)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
