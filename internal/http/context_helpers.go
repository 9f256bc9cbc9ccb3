package httpx

import (
	"context"

	"github.com/jobfinder/jobfinder-api/internal/domain/model"
)

// userKey is an unexported context key type for the authenticated user.
type userKey struct{}

// SetUserInContext returns a new context carrying the authenticated user.
func SetUserInContext(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
// Returns nil if no user is present.
func GetUserFromContext(ctx context.Context) *model.User {
	if user, ok := ctx.Value(userKey{}).(*model.User); ok {
		return user
	}
	return nil
}
