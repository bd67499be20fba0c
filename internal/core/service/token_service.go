package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sportsclub/portal/internal/core/domain"
)

// DefaultTokenTTL is the fixed session window.
const DefaultTokenTTL = 7 * 24 * time.Hour

const tokenIssuer = "sportsclub-portal"

// sessionClaims is the signed token payload.
type sessionClaims struct {
	Role     string `json:"role"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. Tokens are
// stateless: nothing is persisted and a token cannot be revoked before exp.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source for issuance and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	s := &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints a token for id. IssuedAt and ExpiresAt on id are ignored.
func (s *TokenService) Issue(id domain.Identity) (string, time.Time, error) {
	now := s.now().UTC().Truncate(time.Second)
	exp := now.Add(s.ttl)

	claims := sessionClaims{
		Role:     string(id.Role),
		FullName: id.FullName,
		Email:    id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify parses and validates token, returning the embedded identity. The
// signature over header.payload is checked before either segment is decoded,
// so any altered byte in the signed portion reports ErrTokenBadSignature.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	if err := s.checkSignature(token); err != nil {
		return nil, err
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}

	id := &domain.Identity{
		UserID:    claims.Subject,
		Role:      domain.Role(claims.Role),
		FullName:  claims.FullName,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	if !id.Role.Valid() {
		return nil, domain.ErrTokenMalformed
	}
	return id, nil
}

// checkSignature verifies the HS256 signature of a three-segment token. Tokens
// of any other shape are left to the parser to reject as malformed.
func (s *TokenService) checkSignature(token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, s.secret); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTokenBadSignature, err)
	}
	return nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", domain.ErrTokenBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
}
