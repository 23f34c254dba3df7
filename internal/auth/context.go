package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/framelight/studio-api/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// UserContext carries the authenticated staff identity through a request
type UserContext struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	Role        domain.UserRole
}

// IsAdmin reports whether the user holds the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// WithUserContext returns a context carrying the user identity
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts the user identity from a context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}
