package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportsclub/portal/internal/core/ports"
)

// RegistrationHandler handles HTTP requests for sport registrations.
type RegistrationHandler struct {
	service ports.RegistrationService
}

func NewRegistrationHandler(service ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

// Submit handles POST /registrations.
//
// @Summary      Register the caller for a sport
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitRegistrationRequest  true  "Registration form"
// @Success      201   {object}  domain.Registration
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /registrations [post]
func (h *RegistrationHandler) Submit(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req submitRegistrationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.service.Submit(c.Request().Context(), actor, toSubmitInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reg)
}

// List handles GET /registrations. Students only see their own records.
//
// @Summary      List registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        sport_id  query     string  false  "Filter by sport"
// @Param        status    query     string  false  "Filter by status"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  registrationListResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Router       /registrations [get]
func (h *RegistrationHandler) List(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var q listRegistrationsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	res, err := h.service.List(c.Request().Context(), actor, ports.ListRegistrationsInput{
		SportID: q.SportID,
		Status:  q.Status,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRegistrationList(res))
}

// Get handles GET /registrations/:id.
//
// @Summary      Get a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  domain.Registration
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /registrations/{id} [get]
func (h *RegistrationHandler) Get(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	reg, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}

// SetStatus handles PUT /registrations/:id/status.
//
// @Summary      Accept, reject or reset a registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Registration ID"
// @Param        body  body      statusRequest  true  "pending, accepted or rejected"
// @Success      200   {object}  domain.Registration
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /registrations/{id}/status [put]
func (h *RegistrationHandler) SetStatus(c echo.Context) error {
	actor, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.service.SetStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reg)
}

// Teams handles GET /registrations/teams.
//
// @Summary      Accepted players grouped by sport
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Team
// @Failure      401  {object}  errorResponse
// @Router       /registrations/teams [get]
func (h *RegistrationHandler) Teams(c echo.Context) error {
	teams, err := h.service.Teams(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teams)
}
