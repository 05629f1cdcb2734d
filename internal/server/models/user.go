// Package models defines the server-side records persisted by the
// repositories and passed between services and transports.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
