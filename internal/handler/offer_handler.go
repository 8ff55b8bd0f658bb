package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"practicas/internal/errors"
	"practicas/internal/model"
	"practicas/internal/repository"
	"practicas/internal/service"
)

// OfferHandler handles offer endpoints.
type OfferHandler struct {
	offers service.OfferService
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(offers service.OfferService) *OfferHandler {
	return &OfferHandler{offers: offers}
}

// CreateOfferRequest represents a new posting.
type CreateOfferRequest struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Deadline     time.Time `json:"deadline"`
	Type         string    `json:"type"`
	Career       string    `json:"career"`
	CompanyID    uint      `json:"company_id" validate:"required"`
	CompanyName  string    `json:"company_name"`
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// ListOffers godoc
// @Summary List offers
// @Tags offers
// @Produce json
// @Param status query string false "Offer status"
// @Param company_id query int false "Owning company id"
// @Param career query string false "Target career"
// @Param type query string false "Offer type"
// @Param search query string false "Free-text search"
// @Success 200 {array} model.Offer
// @Router /offers [get]
func (h *OfferHandler) ListOffers(c echo.Context) error {
	filter := repository.OfferFilter{
		Status: c.QueryParam("status"),
		Career: c.QueryParam("career"),
		Type:   c.QueryParam("type"),
		Search: c.QueryParam("search"),
	}
	if v := c.QueryParam("company_id"); v != "" {
		companyID, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid company_id")
		}
		filter.CompanyID = uint(companyID)
	}

	offers, err := h.offers.ListOffers(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, offers)
}

// GetOffer godoc
// @Summary Get offer by id
// @Tags offers
// @Produce json
// @Param id path int true "Offer ID"
// @Success 200 {object} model.Offer
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers/{id} [get]
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	offer, err := h.offers.GetOffer(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, offer)
}

// CreateOffer godoc
// @Summary Create an offer
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOfferRequest true "Offer payload"
// @Success 201 {object} model.Offer
// @Failure 400 {object} errors.ErrorResponse
// @Router /offers [post]
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	offer := &model.Offer{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Deadline:     req.Deadline,
		Type:         req.Type,
		Career:       req.Career,
		CompanyID:    req.CompanyID,
		CompanyName:  req.CompanyName,
	}
	created, err := h.offers.CreateOffer(c.Request().Context(), offer)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateOffer godoc
// @Summary Update an offer
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Param request body service.OfferUpdate true "Fields to update"
// @Success 200 {object} model.Offer
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers/{id} [put]
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var update service.OfferUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	offer, err := h.offers.UpdateOffer(c.Request().Context(), id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, offer)
}

// DeleteOffer godoc
// @Summary Delete an offer
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 200 {object} map[string]string
// @Router /offers/{id} [delete]
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.offers.DeleteOffer(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "offer deleted"})
}
