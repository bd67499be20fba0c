package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/infrastructure/db/memory"
	"github.com/sportsclub/portal/pkg/password"
)

var fastHasher = password.NewBcrypt(bcrypt.MinCost)

// fixture wires every service over in-memory repositories.
type fixture struct {
	users         *memory.UserRepository
	registrations *memory.RegistrationRepository
	history       *memory.HistoryRepository
	sports        *memory.SportRepository
	events        *memory.EventRepository
	limiter       *memory.LoginLimiter
	tokens        *TokenService

	auth         *AuthService
	userSvc      *UserService
	registration *RegistrationService
	sportSvc     *SportService
	eventSvc     *EventService
}

func newFixture() *fixture {
	f := &fixture{
		users:         memory.NewUserRepository(),
		registrations: memory.NewRegistrationRepository(),
		history:       memory.NewHistoryRepository(),
		sports:        memory.NewSportRepository(),
		events:        memory.NewEventRepository(),
		limiter:       memory.NewLoginLimiter(3),
		tokens:        NewTokenService("test-secret", time.Hour),
	}
	log := zerolog.Nop()
	f.auth = NewAuthService(f.users, fastHasher, f.tokens, f.limiter, log)
	f.userSvc = NewUserService(f.users, fastHasher, log)
	f.registration = NewRegistrationService(f.registrations, f.history, f.users, f.sports, log)
	f.sportSvc = NewSportService(f.sports, log)
	f.eventSvc = NewEventService(f.events, f.sports, log)
	return f
}

// seedUser stores a user directly and returns its identity.
func (f *fixture) seedUser(t *testing.T, name, email string, role domain.Role) *domain.Identity {
	t.Helper()
	hash, err := fastHasher.Hash("password123")
	require.NoError(t, err)

	u, err := f.users.Create(context.Background(), &domain.User{
		FullName:     name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       domain.UserAccepted,
		ProfilePic:   "/uploads/" + name + ".png",
	})
	require.NoError(t, err)
	return &domain.Identity{UserID: u.ID, Role: role, FullName: name, Email: email}
}

func (f *fixture) seedSport(t *testing.T, name string, maxPlayers int) *domain.Sport {
	t.Helper()
	s, err := f.sports.Create(context.Background(), &domain.Sport{Name: name, MaxPlayers: maxPlayers})
	require.NoError(t, err)
	return s
}
