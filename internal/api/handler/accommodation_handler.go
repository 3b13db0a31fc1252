package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/api/middleware"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// AccommodationHandler serves the accommodation listing API.
type AccommodationHandler struct {
	service ports.AccommodationService
}

func NewAccommodationHandler(service ports.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{service: service}
}

// List handles GET /accommodations.
//
// @Summary      List accommodations
// @Tags         accommodations
// @Produce      json
// @Param        location  query     string  false  "Location substring"
// @Param        skip      query     int     false  "Offset"          default(0)
// @Param        limit     query     int     false  "Page size (max 100)"  default(100)
// @Success      200       {array}   accommodationResponse
// @Failure      400       {object}  errorResponse
// @Router       /accommodations [get]
func (h *AccommodationHandler) List(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), ports.AccommodationFilter{
		Location: c.QueryParam("location"),
		Page:     page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccommodationResponses(list))
}

// Get handles GET /accommodations/:id.
//
// @Summary      Get an accommodation
// @Tags         accommodations
// @Produce      json
// @Param        id   path      int  true  "Accommodation ID"
// @Success      200  {object}  accommodationResponse
// @Failure      404  {object}  errorResponse
// @Router       /accommodations/{id} [get]
func (h *AccommodationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccommodationResponse(a))
}

// Create handles POST /accommodations. The caller becomes the owner.
//
// @Summary      Create an accommodation
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      accommodationRequest  true  "Listing"
// @Success      201   {object}  accommodationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /accommodations [post]
func (h *AccommodationHandler) Create(c echo.Context) error {
	var req accommodationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.Create(c.Request().Context(), middleware.CurrentUser(c), req.toFields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAccommodationResponse(a))
}

// Update handles PUT /accommodations/:id. Only the owner may update.
//
// @Summary      Update an accommodation
// @Tags         accommodations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Accommodation ID"
// @Param        body  body      accommodationRequest  true  "Listing"
// @Success      200   {object}  accommodationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /accommodations/{id} [put]
func (h *AccommodationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req accommodationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), middleware.CurrentUser(c), id, req.toFields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccommodationResponse(a))
}

// Delete handles DELETE /accommodations/:id and returns the removed listing.
//
// @Summary      Delete an accommodation
// @Tags         accommodations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Accommodation ID"
// @Success      200  {object}  accommodationResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accommodations/{id} [delete]
func (h *AccommodationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.service.Delete(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccommodationResponse(a))
}
