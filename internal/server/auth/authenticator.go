package auth

import (
	"time"
)

// Authenticator turns bearer tokens into caller ids and issues new tokens.
// It is safe for concurrent use.
type Authenticator struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
}

func NewAuthenticator(secretKey string, validity time.Duration) *Authenticator {
	return &Authenticator{secretKey: []byte(secretKey), validity: validity, now: time.Now}
}

// WithClock returns a copy of a reading time from now.
func (a *Authenticator) WithClock(now func() time.Time) *Authenticator {
	c := *a
	c.now = now
	return &c
}

// Authenticate resolves token to the user id it was issued for. Only the user
// id is exposed; no other claim is trusted downstream.
func (a *Authenticator) Authenticate(token string) (string, error) {
	claims, err := ParseToken(token, a.secretKey, a.now())
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Issue signs a fresh token for userID valid from now.
func (a *Authenticator) Issue(userID string) (string, error) {
	return GenerateToken(userID, a.secretKey, a.now(), a.validity)
}
