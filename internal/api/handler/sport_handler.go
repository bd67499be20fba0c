package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sportsclub/portal/internal/core/domain"
	"github.com/sportsclub/portal/internal/core/ports"
)

type SportHandler struct {
	service ports.SportService
}

func NewSportHandler(service ports.SportService) *SportHandler {
	return &SportHandler{service: service}
}

// List handles GET /sports.
//
// @Summary      List sports
// @Tags         sports
// @Produce      json
// @Success      200  {array}  domain.Sport
// @Router       /sports [get]
func (h *SportHandler) List(c echo.Context) error {
	sports, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if sports == nil {
		sports = []*domain.Sport{}
	}
	return c.JSON(http.StatusOK, sports)
}

// Create handles POST /sports.
//
// @Summary      Create a sport
// @Tags         sports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSportRequest  true  "Sport"
// @Success      201   {object}  domain.Sport
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /sports [post]
func (h *SportHandler) Create(c echo.Context) error {
	var req createSportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sport, err := h.service.Create(c.Request().Context(), req.Name, req.MaxPlayers)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sport)
}

// Delete handles DELETE /sports/:id.
//
// @Summary      Delete a sport
// @Tags         sports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sport ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /sports/{id} [delete]
func (h *SportHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "sport deleted"})
}
