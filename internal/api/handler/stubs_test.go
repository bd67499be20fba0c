package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) EnsureAdmin(context.Context, ports.BootstrapConfig) (bool, error) {
	return false, nil
}

type stubRegistrationService struct {
	submitFn    func(ctx context.Context, actor *domain.Identity, in ports.SubmitRegistrationInput) (*domain.Registration, error)
	getFn       func(ctx context.Context, actor *domain.Identity, id string) (*domain.Registration, error)
	listFn      func(ctx context.Context, actor *domain.Identity, in ports.ListRegistrationsInput) (*ports.ListRegistrationsResult, error)
	setStatusFn func(ctx context.Context, actor *domain.Identity, id, status string) (*domain.Registration, error)
	teamsFn     func(ctx context.Context) ([]domain.Team, error)
}

func (s *stubRegistrationService) Submit(ctx context.Context, actor *domain.Identity, in ports.SubmitRegistrationInput) (*domain.Registration, error) {
	return s.submitFn(ctx, actor, in)
}

func (s *stubRegistrationService) Get(ctx context.Context, actor *domain.Identity, id string) (*domain.Registration, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubRegistrationService) List(ctx context.Context, actor *domain.Identity, in ports.ListRegistrationsInput) (*ports.ListRegistrationsResult, error) {
	return s.listFn(ctx, actor, in)
}

func (s *stubRegistrationService) SetStatus(ctx context.Context, actor *domain.Identity, id, status string) (*domain.Registration, error) {
	return s.setStatusFn(ctx, actor, id, status)
}

func (s *stubRegistrationService) Teams(ctx context.Context) ([]domain.Team, error) {
	return s.teamsFn(ctx)
}

type stubUserService struct {
	getFn    func(ctx context.Context, actor *domain.Identity, id string) (*domain.User, error)
	updateFn func(ctx context.Context, actor *domain.Identity, id string, in ports.UpdateProfileInput) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	statusFn func(ctx context.Context, id, status string) (*domain.User, error)
}

func (s *stubUserService) GetProfile(ctx context.Context, actor *domain.Identity, id string) (*domain.User, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, actor *domain.Identity, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubUserService) ListStudents(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) SetStudentStatus(ctx context.Context, id, status string) (*domain.User, error) {
	return s.statusFn(ctx, id, status)
}

type stubSportService struct {
	sports []*domain.Sport
	err    error
}

func (s *stubSportService) List(context.Context) ([]*domain.Sport, error) { return s.sports, s.err }

func (s *stubSportService) Create(_ context.Context, name string, maxPlayers int) (*domain.Sport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Sport{ID: "s1", Name: name, MaxPlayers: maxPlayers}, nil
}

func (s *stubSportService) Delete(context.Context, string) error { return s.err }

type stubEventService struct {
	created ports.CreateEventInput
	err     error
}

func (s *stubEventService) List(context.Context) ([]*domain.Event, error) { return nil, s.err }

func (s *stubEventService) Create(_ context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Event{ID: "e1", Title: in.Title, SportID: in.SportID}, nil
}

func (s *stubEventService) Delete(context.Context, string) error { return s.err }

// newContext builds an echo context with the validator installed and, when
// id is non-nil, an authenticated request.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if id != nil {
		req = req.WithContext(domain.ContextWithIdentity(req.Context(), id))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

var (
	studentID = &domain.Identity{UserID: "u-alice", Role: domain.RoleStudent}
	adminID   = &domain.Identity{UserID: "u-admin", Role: domain.RoleAdmin}
)

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusOK
}
