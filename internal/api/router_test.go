package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
	"github.com/sportsclub/portal/internal/core/service"
	"github.com/sportsclub/portal/internal/infrastructure/db/memory"
	"github.com/sportsclub/portal/internal/infrastructure/http/handlers"
	"github.com/sportsclub/portal/pkg/password"
)

type testServer struct {
	e             *echo.Echo
	registrations *memory.RegistrationRepository
}

func newTestServer(t *testing.T, readiness map[string]handlers.Check) *testServer {
	t.Helper()

	log := zerolog.Nop()
	hasher := password.NewBcrypt(bcrypt.MinCost)
	tokens := service.NewTokenService("router-test-secret", time.Hour)

	users := memory.NewUserRepository()
	registrations := memory.NewRegistrationRepository()
	sports := memory.NewSportRepository()
	events := memory.NewEventRepository()

	auth := service.NewAuthService(users, hasher, tokens, memory.NewLoginLimiter(5), log)
	created, err := auth.EnsureAdmin(context.Background(), ports.BootstrapConfig{
		Enabled:  true,
		FullName: "Club Admin",
		Email:    "admin@club.test",
		Password: "admin-pass",
	})
	require.NoError(t, err)
	require.True(t, created)

	e := NewRouter(Dependencies{
		Auth:          auth,
		Users:         service.NewUserService(users, hasher, log),
		Registrations: service.NewRegistrationService(registrations, memory.NewHistoryRepository(), users, sports, log),
		Sports:        service.NewSportService(sports, log),
		Events:        service.NewEventService(events, sports, log),
		Tokens:        tokens,
		Readiness:     readiness,
		Registry:      prometheus.NewRegistry(),
		Logger:        log,
	})

	return &testServer{e: e, registrations: registrations}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, secret string) (token, userID string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": secret})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func (s *testServer) registerStudent(t *testing.T, name, email string) (token, userID string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"fullname": name,
		"email":    email,
		"password": "student-pass",
		"age":      20,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return s.login(t, email, "student-pass")
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func submission(sportID string) map[string]any {
	return map[string]any{
		"sport_id":  sportID,
		"full_name": "Test Student",
		"year":      "1st Year",
		"branch":    "Computer Science",
		"age":       19,
		"address":   "Hall 2",
	}
}

func TestRouter_RegistrationWorkflow(t *testing.T) {
	s := newTestServer(t, nil)
	adminToken, _ := s.login(t, "admin@club.test", "admin-pass")

	rec := s.do(t, http.MethodPost, "/sports", adminToken, map[string]any{"name": "Chess", "max_players": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sport domain.Sport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sport))

	aliceToken, _ := s.registerStudent(t, "Alice", "alice@club.test")
	bobToken, bobID := s.registerStudent(t, "Bob", "bob@club.test")

	rec = s.do(t, http.MethodPost, "/registrations", aliceToken, submission(sport.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var aliceReg domain.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aliceReg))
	assert.Equal(t, domain.RegistrationPending, aliceReg.Status)
	assert.Equal(t, "alice@club.test", aliceReg.Email)

	// a student cannot change a status, even on their own registration
	rec = s.do(t, http.MethodPut, "/registrations/"+aliceReg.ID+"/status", aliceToken, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access forbidden", decodeError(t, rec).Error)

	rec = s.do(t, http.MethodPut, "/registrations/"+aliceReg.ID+"/status", adminToken, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/registrations/"+aliceReg.ID+"/status", adminToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// bob's second submission for the same sport is rejected
	rec = s.do(t, http.MethodPost, "/registrations", bobToken, submission(sport.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(t, http.MethodPost, "/registrations", bobToken, submission(sport.ID))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "you have already registered for this sport", decodeError(t, rec).Error)

	assert.Equal(t, 1, s.registrations.Count(bobID, sport.ID))

	// alice only sees her own registration, the admin sees both
	rec = s.do(t, http.MethodGet, "/registrations", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items []domain.Registration `json:"items"`
		Total int64                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Total)

	rec = s.do(t, http.MethodGet, "/registrations", adminToken, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.EqualValues(t, 2, page.Total)

	// bob cannot read alice's registration
	rec = s.do(t, http.MethodGet, "/registrations/"+aliceReg.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/registrations/teams", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var teams []domain.Team
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	require.Len(t, teams, 1)
	require.Len(t, teams[0].Players, 1)
	assert.Equal(t, "Test Student", teams[0].Players[0].Name)
}

func TestRouter_AdminCannotSubmitRegistration(t *testing.T) {
	s := newTestServer(t, nil)
	adminToken, _ := s.login(t, "admin@club.test", "admin-pass")

	rec := s.do(t, http.MethodPost, "/registrations", adminToken, submission("anything"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_Authentication(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/registrations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", decodeError(t, rec).Error)

	rec = s.do(t, http.MethodGet, "/users/students", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "admin@club.test", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", decodeError(t, rec).Error)

	rec = s.do(t, http.MethodPost, "/sports", "", map[string]any{"name": "Chess", "max_players": 2})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_UserRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	adminToken, _ := s.login(t, "admin@club.test", "admin-pass")
	aliceToken, aliceID := s.registerStudent(t, "Alice", "alice@club.test")
	_, bobID := s.registerStudent(t, "Bob", "bob@club.test")

	rec := s.do(t, http.MethodGet, "/users/profile/"+aliceID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/users/profile/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/users/students", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/users/students", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var students []domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	assert.Len(t, students, 2)

	rec = s.do(t, http.MethodPut, "/users/students/"+aliceID+"/status", adminToken, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPut, "/users/profile/"+aliceID, aliceToken, map[string]string{"email": "bob@club.test"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"fullname": "Alice 2", "email": "ALICE@club.test", "password": "student-pass"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "user already exists", decodeError(t, rec).Error)
}

func TestRouter_PublicCatalog(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/sports", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/events", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestRouter_Validation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"fullname": "X", "email": "broken"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeError(t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "password")
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t, map[string]handlers.Check{
		"mongo": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.do(t, http.MethodGet, "/sports", "", nil)
	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}

func TestRouter_StudentLoginRoleAndAdminGate(t *testing.T) {
	s := newTestServer(t, nil)
	adminToken, _ := s.login(t, "admin@club.test", "admin-pass")

	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"fullname": "Alice", "email": "alice@example.com", "password": "pw123"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "alice@example.com", "password": "pw123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "student", login.User.Role)

	rec = s.do(t, http.MethodPost, "/sports", adminToken, map[string]any{"name": "Football", "max_players": 11})
	require.Equal(t, http.StatusCreated, rec.Code)
	var sport domain.Sport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sport))

	rec = s.do(t, http.MethodPost, "/registrations", login.Token, submission(sport.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reg domain.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))

	rec = s.do(t, http.MethodPut, "/registrations/"+reg.ID+"/status", login.Token, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/registrations/"+reg.ID+"/status", adminToken, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, domain.RegistrationAccepted, reg.Status)

	rec = s.do(t, http.MethodPut, "/registrations/"+reg.ID+"/status", "", map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_UnhashablePasswordIsValidationError(t *testing.T) {
	s := newTestServer(t, nil)

	for _, secret := range []string{
		strings.Repeat("é", 40),
		"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	} {
		rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]any{"fullname": "Eve", "email": "eve@club.test", "password": secret})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		assert.Contains(t, decodeError(t, rec).Fields, "password")
	}
}
