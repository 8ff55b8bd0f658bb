package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"practicas/internal/errors"
	"practicas/internal/service"
)

// SeedHandler resets the demo dataset. Only wired in local mode.
type SeedHandler struct {
	seeder service.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(seeder service.SeedService) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// ResetDemo godoc
// @Summary Reset demo data
// @Tags seed
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/demo [post]
func (h *SeedHandler) ResetDemo(c echo.Context) error {
	if err := h.seeder.ResetDemo(c.Request().Context()); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "demo data reset"})
}
