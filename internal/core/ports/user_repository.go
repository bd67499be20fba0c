package ports

import (
	"context"

	"github.com/sportsclub/portal/internal/core/domain"
)

// UserRepository is the credential store. Email uniqueness is enforced by the
// store; Create and Update return domain.ErrUserExists on conflict.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail expects an already-lowercased email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	// Update applies the non-nil fields of upd and returns the stored user.
	Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error)
}
