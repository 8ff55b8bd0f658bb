package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"practicas/internal/errors"
	"practicas/internal/repository"
	"practicas/internal/service"
)

// AdminHandler handles the admin surface: metrics and user management.
type AdminHandler struct {
	users   service.UserService
	metrics service.MetricsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(users service.UserService, metrics service.MetricsService) *AdminHandler {
	return &AdminHandler{users: users, metrics: metrics}
}

// Metrics godoc
// @Summary Admin dashboard metrics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Metrics
// @Router /admin/metrics [get]
func (h *AdminHandler) Metrics(c echo.Context) error {
	m, err := h.metrics.AdminMetrics(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, m)
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param search query string false "Search name or email"
// @Success 200 {array} model.User
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	filter := repository.UserFilter{
		Role:   c.QueryParam("role"),
		Search: c.QueryParam("search"),
	}
	users, err := h.users.ListUsers(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body service.UserUpdate true "Fields to update"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var update service.UserUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.users.UpdateUser(c.Request().Context(), id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
