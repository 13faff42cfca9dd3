// Package utils holds small helpers shared by the client and the server:
// request context keys, body signatures, JWT handling, JSON responses, the
// resty client, change tag generation and timestamp normalisation.
package utils

import "context"

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey holds the authenticated user id (int64) set by the auth
// middleware.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext returns the authenticated user id. ok is false when
// the request did not pass the auth middleware.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
