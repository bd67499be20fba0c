package ports

import (
	"context"

	"github.com/sportsclub/portal/internal/core/domain"
)

// UpdateProfileInput is a partial profile update; nil fields are unchanged.
// A non-nil Password is hashed once and replaces the stored hash.
type UpdateProfileInput struct {
	FullName      *string
	Email         *string
	Password      *string
	Age           *int
	Department    *string
	Sport         *string
	ContactNumber *string
	ProfilePic    *string
}

type UserService interface {
	GetProfile(ctx context.Context, actor *domain.Identity, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actor *domain.Identity, id string, input UpdateProfileInput) (*domain.User, error)
	ListStudents(ctx context.Context) ([]*domain.User, error)
	SetStudentStatus(ctx context.Context, id, status string) (*domain.User, error)
}
