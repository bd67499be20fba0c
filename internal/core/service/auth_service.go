package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sportsclub/portal/internal/api/metrics"
	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
	"github.com/sportsclub/portal/pkg/password"
)

// AuthService implements sign-up, login and the admin bootstrap.
type AuthService struct {
	users   ports.UserRepository
	hasher  password.Hasher
	tokens  ports.TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger
	now     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService wires the auth use cases. limiter may be nil, which disables
// login throttling.
func NewAuthService(
	users ports.UserRepository,
	hasher password.Hasher,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		limiter: limiter,
		log:     log,
		now:     time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)

	ve := &domain.ValidationError{}
	if in.FullName == "" {
		ve.Add("fullname", "fullname is required")
	}
	if err := validateEmail(in.Email); err != nil {
		ve.Add("email", err.Error())
	}
	if err := validatePassword(in.Password); err != nil {
		ve.Add("password", err.Error())
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		FullName:      in.FullName,
		Email:         in.Email,
		PasswordHash:  hash,
		Role:          domain.RoleStudent,
		Status:        domain.UserPending,
		Age:           in.Age,
		Department:    in.Department,
		Sport:         in.Sport,
		ContactNumber: in.ContactNumber,
		ProfilePic:    in.ProfilePic,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().Str("user_id", created.ID).Msg("student registered")
	return created, nil
}

// Login verifies the credential and mints a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter check failed, continuing")
		} else if blocked {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.burnVerify(secret)
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(secret, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(domain.Identity{
		UserID:   user.ID,
		Role:     user.Role,
		FullName: user.FullName,
		Email:    user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// burnVerify spends one hash comparison on a login for an unknown email, matching
// the cost of a wrong password.
func (s *AuthService) burnVerify(secret string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("sportsclub-portal-unknown-user")
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to prepare dummy password hash")
			return
		}
		s.dummyHash = h
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(secret, s.dummyHash)
	}
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// EnsureAdmin is safe to run on every start: it is a no-op while disabled or
// once any admin account exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, cfg ports.BootstrapConfig) (bool, error) {
	if !cfg.Enabled {
		return false, nil
	}

	email := normalizeEmail(cfg.Email)
	if err := validateEmail(email); err != nil {
		return false, domain.NewValidationError("email", err.Error())
	}
	if cfg.Password == "" {
		return false, domain.NewValidationError("password", "bootstrap admin password is required")
	}
	if err := validatePassword(cfg.Password); err != nil {
		return false, domain.NewValidationError("password", err.Error())
	}

	n, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}
	if n > 0 {
		s.log.Debug().Msg("admin already exists, skipping bootstrap")
		return false, nil
	}

	hash, err := s.hasher.Hash(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	name := strings.TrimSpace(cfg.FullName)
	if name == "" {
		name = "Default Admin"
	}

	now := s.now().UTC()
	admin, err := s.users.Create(ctx, &domain.User{
		FullName:     name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.UserAccepted,
		Department:   "Administration",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(domain.RoleAdmin)).Inc()
	s.log.Warn().Str("email", admin.Email).Msg("bootstrap admin created, rotate its password")
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword turns the hasher's input rules into a user-facing message.
func validatePassword(secret string) error {
	switch err := password.Check(secret); {
	case errors.Is(err, password.ErrEmptyPassword):
		return errors.New("password is required")
	case errors.Is(err, password.ErrPasswordTooLong):
		return fmt.Errorf("password must be at most %d bytes", password.MaxBytes)
	case errors.Is(err, password.ErrAlreadyHashed):
		return errors.New("password must not be a password hash")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email must be a valid email")
	}
	return nil
}
