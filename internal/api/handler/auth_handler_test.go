package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.FullName != "Alice" || in.Email != "alice@example.com" || in.Age != 20 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", FullName: in.FullName, Email: in.Email, PasswordHash: "secret-hash", Role: domain.RoleStudent, Status: domain.UserPending}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/auth/register", `{"fullname":"Alice","email":"alice@example.com","password":"secret-pass","age":20}`, nil)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "student" || user["status"] != "pending" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}

	c, _ := newContext(http.MethodPost, "/auth/register", `{"fullname":"Bob","email":"bob@example.com","password":"secret-pass"}`, nil)
	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	c, _ := newContext(http.MethodPost, "/auth/register", "not-json", nil)
	if code := statusOf(NewAuthHandler(stub).Register(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Register_ValidationFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	c, _ := newContext(http.MethodPost, "/auth/register", `{"fullname":"","email":"nope","age":12}`, nil)
	err := NewAuthHandler(stub).Register(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"fullname", "email", "password", "age"} {
		if _, ok := ve.Fields[field]; !ok {
			t.Fatalf("expected field %q in %+v", field, ve.Fields)
		}
	}
	if ve.Fields["password"] != "password is required" {
		t.Fatalf("unexpected message: %q", ve.Fields["password"])
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	exp := time.Date(2026, 10, 22, 12, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{
				Token:     "token123",
				ExpiresAt: exp,
				User:      &domain.User{ID: "u1", FullName: "Alice", Email: email, Role: domain.RoleStudent, Status: domain.UserAccepted, Department: "Civil"},
			}, nil
		},
	}

	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"secret"}`, nil)
	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token     string         `json:"token"`
		ExpiresAt time.Time      `json:"expires_at"`
		User      map[string]any `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || !resp.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.User) != 5 || resp.User["fullname"] != "Alice" || resp.User["status"] != "accepted" {
		t.Fatalf("unexpected user summary: %+v", resp.User)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`, nil)
	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
