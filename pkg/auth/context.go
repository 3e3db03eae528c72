package auth

import (
	"context"
	"errors"
)

// ErrNoUserInContext is returned when a handler runs without the
// authentication middleware having established an identity first.
var ErrNoUserInContext = errors.New("no user in context")

// UserContext carries the authenticated caller's identity through the
// request context.
type UserContext struct {
	UserID string
}

type userContextKey struct{}

// SetUserInContext attaches the authenticated user to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext extracts the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey{}).(*UserContext)
	if !ok || user == nil || user.UserID == "" {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
