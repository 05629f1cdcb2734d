// Package auth issues and verifies the stateless HS256 session tokens. There
// is no session table: a token is valid exactly when its signature checks out
// and its expiry lies in the future.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// GenerateToken signs a token for userID that expires validity after issuedAt.
func GenerateToken(userID string, secretKey []byte, issuedAt time.Time, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString at instant now and returns its claims.
//
// Errors are one of common.ErrMissingCredential, common.ErrInvalidCredential
// or common.ErrExpiredCredential, wrapped with the parser's reason.
func ParseToken(tokenString string, secretKey []byte, now time.Time) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, common.ErrMissingCredential
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", common.ErrExpiredCredential, err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidCredential, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: no user id", common.ErrInvalidCredential)
	}

	return claims, nil
}
