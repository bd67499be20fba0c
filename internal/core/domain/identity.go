package domain

import (
	"context"
	"errors"
	"time"
)

// Token verification failures. Callers must treat all of them as
// ErrUnauthenticated; the distinction exists for logs and metrics only.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
)

var ErrUnauthenticated = errors.New("unauthenticated")
var ErrForbidden = errors.New("access forbidden")

// Identity is the decoded content of a session token.
type Identity struct {
	UserID    string
	Role      Role
	FullName  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// CanAccessUser reports whether the identity may read or modify the given user:
// admins may access anyone, everyone else only themselves.
func (i *Identity) CanAccessUser(userID string) bool {
	return i.IsAdmin() || (i != nil && i.UserID == userID)
}

type identityKey struct{}

// ContextWithIdentity returns a copy of ctx carrying id.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by ContextWithIdentity.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}
