package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportsclub/portal/internal/core/domain"
)

// currentIdentity returns the caller identity placed on the request context
// by the Auth middleware. Its absence means the route was wired without Auth.
func currentIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := domain.IdentityFromContext(c.Request().Context())
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
