package ports

import (
	"context"
	"time"

	"github.com/sportsclub/portal/internal/core/domain"
)

// RegisterInput is the sign-up payload. Role is always student.
type RegisterInput struct {
	FullName      string
	Email         string
	Password      string
	Age           int
	Department    string
	Sport         string
	ContactNumber string
	ProfilePic    string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// BootstrapConfig controls creation of the initial admin account.
type BootstrapConfig struct {
	Enabled  bool
	FullName string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// EnsureAdmin creates the bootstrap admin when enabled and no admin exists.
	// It reports whether an account was created.
	EnsureAdmin(ctx context.Context, cfg BootstrapConfig) (bool, error)
}

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(id domain.Identity) (token string, expiresAt time.Time, err error)
}

// TokenVerifier decodes and validates session tokens. It returns one of
// domain.ErrTokenMalformed, domain.ErrTokenBadSignature or domain.ErrTokenExpired.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// LoginLimiter throttles repeated failed logins for one email.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
