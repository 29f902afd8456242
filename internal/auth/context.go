package auth

import (
	"context"

	"fjacquet/mocktest/internal/models"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// WithIdentity returns a context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the caller stored by the middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return id, ok
}

// CurrentUserID returns the id of the authenticated caller.
func CurrentUserID(ctx context.Context) (int64, bool) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return 0, false
	}
	return id.UserID, true
}

// IsAdmin reports whether id may manage tests.
func IsAdmin(id Identity) bool {
	return id.Role == models.RoleAdmin
}
