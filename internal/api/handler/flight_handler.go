package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type FlightHandler struct {
	service ports.FlightService
}

func NewFlightHandler(service ports.FlightService) *FlightHandler {
	return &FlightHandler{service: service}
}

// List handles GET /flights.
//
// @Summary      List flights
// @Tags         flights
// @Produce      json
// @Param        skip   query     int  false  "Offset"               default(0)
// @Param        limit  query     int  false  "Page size (max 100)"  default(100)
// @Success      200    {array}   domain.Flight
// @Router       /flights [get]
func (h *FlightHandler) List(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	flights, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flights)
}

// Get handles GET /flights/:id.
//
// @Summary      Get a flight
// @Tags         flights
// @Produce      json
// @Param        id   path      int  true  "Flight ID"
// @Success      200  {object}  domain.Flight
// @Failure      404  {object}  errorResponse
// @Router       /flights/{id} [get]
func (h *FlightHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	f, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// Create handles POST /flights (admin only).
//
// @Summary      Create a flight
// @Tags         flights
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      flightRequest  true  "Flight"
// @Success      201   {object}  domain.Flight
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /flights [post]
func (h *FlightHandler) Create(c echo.Context) error {
	var req flightRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	f, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, f)
}
