package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/api/middleware"
	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

const idempotencyHeader = "Idempotency-Key"

type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// BookAccommodation handles POST /api/bookings/accommodations/:id.
//
// @Summary      Book an accommodation
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int                          true   "Accommodation ID"
// @Param        Idempotency-Key  header    string                       false  "Replays the first booking made with this key"
// @Param        body             body      accommodationBookingRequest  true   "Stay dates"
// @Success      201              {object}  domain.AccommodationBooking
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/bookings/accommodations/{id} [post]
func (h *BookingHandler) BookAccommodation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req accommodationBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	// Formats were checked by the validator.
	start, _ := domain.ParseDate(req.StartDate)
	end, _ := domain.ParseDate(req.EndDate)

	b, err := h.service.BookAccommodation(c.Request().Context(), middleware.CurrentUser(c), ports.AccommodationBookingInput{
		AccommodationID: id,
		StartDate:       start,
		EndDate:         end,
		IdempotencyKey:  c.Request().Header.Get(idempotencyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

// BookFlight handles POST /api/bookings/flights/:id.
//
// @Summary      Book a flight
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int                   true   "Flight ID"
// @Param        Idempotency-Key  header    string                false  "Replays the first booking made with this key"
// @Param        body             body      flightBookingRequest  true   "Travel date"
// @Success      201              {object}  domain.FlightBooking
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/bookings/flights/{id} [post]
func (h *BookingHandler) BookFlight(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req flightBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	day, _ := domain.ParseDate(req.BookingDate)

	b, err := h.service.BookFlight(c.Request().Context(), middleware.CurrentUser(c), ports.FlightBookingInput{
		FlightID:       id,
		BookingDate:    day,
		IdempotencyKey: c.Request().Header.Get(idempotencyHeader),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, b)
}

// MyBookings handles GET /api/bookings/my-bookings.
//
// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  myBookingsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/bookings/my-bookings [get]
func (h *BookingHandler) MyBookings(c echo.Context) error {
	mine, err := h.service.MyBookings(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, myBookingsResponse{
		Accommodations: mine.Accommodations,
		Flights:        mine.Flights,
	})
}
