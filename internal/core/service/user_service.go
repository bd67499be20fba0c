package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
	"github.com/sportsclub/portal/pkg/password"
)

type UserService struct {
	users  ports.UserRepository
	hasher password.Hasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, hasher password.Hasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, log: log, now: time.Now}
}

// GetProfile returns a user to themselves or to an admin.
func (s *UserService) GetProfile(ctx context.Context, actor *domain.Identity, id string) (*domain.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

// UpdateProfile applies a partial update. The stored hash is only replaced
// when a new password is supplied, so an existing hash is never re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.Identity, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, domain.ErrForbidden
	}

	upd := domain.UserUpdate{
		Age:           in.Age,
		Department:    in.Department,
		Sport:         in.Sport,
		ContactNumber: in.ContactNumber,
		ProfilePic:    in.ProfilePic,
		UpdatedAt:     s.now().UTC(),
	}

	ve := &domain.ValidationError{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			ve.Add("fullname", "fullname must not be empty")
		}
		upd.FullName = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := validateEmail(email); err != nil {
			ve.Add("email", err.Error())
		}
		upd.Email = &email
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			ve.Add("password", err.Error())
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		upd.PasswordHash = &hash
	}

	user, err := s.users.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.UserID).Msg("profile updated")
	return user, nil
}

func (s *UserService) ListStudents(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleStudent)
}

// SetStudentStatus approves or rejects a student account.
func (s *UserService) SetStudentStatus(ctx context.Context, id, status string) (*domain.User, error) {
	st := domain.UserStatus(status)
	if st != domain.UserAccepted && st != domain.UserRejected {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	user, err := s.users.Update(ctx, id, domain.UserUpdate{Status: &st, UpdatedAt: s.now().UTC()})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("status", status).Msg("student status updated")
	return user, nil
}
