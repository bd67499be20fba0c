package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sportsclub/portal/internal/api/metrics"
	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

// IdentityKey is the echo.Context key holding the verified *domain.Identity.
const IdentityKey = "identity"

// Auth verifies the bearer token and attaches the caller's identity to both the
// echo context and the request context. Every failure surfaces as
// domain.ErrUnauthenticated; the specific reason is only logged.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenVerificationFailuresTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				reason := failureReason(err)
				metrics.TokenVerificationFailuresTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Str("reason", reason).
					Str("path", c.Path()).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("token rejected")
				return domain.ErrUnauthenticated
			}

			c.Set(IdentityKey, id)
			c.SetRequest(c.Request().WithContext(domain.ContextWithIdentity(c.Request().Context(), id)))
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}
