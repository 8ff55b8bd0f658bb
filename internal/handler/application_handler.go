package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/service"
)

// ApplicationHandler handles application workflow endpoints.
type ApplicationHandler struct {
	apps service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(apps service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// ApplyRequest represents a student applying to an offer. The profile
// snapshot is supplied by the caller and stored as-is.
type ApplyRequest struct {
	StudentID       uint                  `json:"student_id" validate:"required"`
	ProfileSnapshot model.ProfileSnapshot `json:"profile_snapshot" validate:"required"`
}

// CompanyReviewRequest represents a company verdict on an application.
type CompanyReviewRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminReviewRequest represents the final admin verdict, optionally assigning
// a supervising teacher and start date.
type AdminReviewRequest struct {
	Status string `json:"status" validate:"required"`
	service.AdminReviewOptions
}

// Apply godoc
// @Summary Apply to an offer
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Param request body ApplyRequest true "Student id and profile snapshot"
// @Success 201 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers/{id}/apply [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	offerID, err := paramID(c)
	if err != nil {
		return err
	}
	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.apps.Apply(c.Request().Context(), offerID, req.StudentID, req.ProfileSnapshot)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, app)
}

// CompanyReview godoc
// @Summary Company review of an application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body CompanyReviewRequest true "Verdict"
// @Success 200 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /applications/{id}/company-review [put]
func (h *ApplicationHandler) CompanyReview(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req CompanyReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.apps.CompanyReview(c.Request().Context(), id, req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, app)
}

// AdminReview godoc
// @Summary Admin review of an application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body AdminReviewRequest true "Verdict and optional teacher assignment"
// @Success 200 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /applications/{id}/admin-review [put]
func (h *ApplicationHandler) AdminReview(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req AdminReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	app, err := h.apps.AdminReview(c.Request().Context(), id, req.Status, req.AdminReviewOptions)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, app)
}

// ListForStudent godoc
// @Summary List a student's applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {array} model.Application
// @Router /students/{id}/applications [get]
func (h *ApplicationHandler) ListForStudent(c echo.Context) error {
	studentID, err := paramID(c)
	if err != nil {
		return err
	}
	apps, err := h.apps.ListForStudent(c.Request().Context(), studentID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, apps)
}

// ListForOffer godoc
// @Summary List applicants for an offer
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 200 {array} model.Application
// @Router /offers/{id}/applicants [get]
func (h *ApplicationHandler) ListForOffer(c echo.Context) error {
	offerID, err := paramID(c)
	if err != nil {
		return err
	}
	apps, err := h.apps.ListForOffer(c.Request().Context(), offerID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, apps)
}

// ListAll godoc
// @Summary List all applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Success 200 {array} model.Application
// @Router /applications [get]
func (h *ApplicationHandler) ListAll(c echo.Context) error {
	apps, err := h.apps.ListAll(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, apps)
}
