// Package shared holds request-scoped values both transports put into the
// context after authentication.
package shared

import "context"

type ctxKey string

// UserIDKey is the context key of the authenticated caller's id.
const UserIDKey ctxKey = "userID"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// UserIDFromContext returns the caller id stored by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}
