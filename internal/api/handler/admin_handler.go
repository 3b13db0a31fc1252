package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// AdminHandler serves the admin JSON API. Routes are mounted behind
// BearerAuth and RequireAdmin.
type AdminHandler struct {
	auth     ports.AuthService
	bookings ports.BookingService
}

func NewAdminHandler(auth ports.AuthService, bookings ports.BookingService) *AdminHandler {
	return &AdminHandler{auth: auth, bookings: bookings}
}

// Users handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"               default(0)
// @Param        limit  query     int  false  "Page size (max 100)"  default(100)
// @Success      200    {array}   userResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	users, err := h.auth.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Bookings handles GET /api/admin/bookings.
//
// @Summary      List accommodation bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query     int  false  "Offset"               default(0)
// @Param        limit  query     int  false  "Page size (max 100)"  default(100)
// @Success      200    {array}   domain.AccommodationBooking
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/admin/bookings [get]
func (h *AdminHandler) Bookings(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ListAccommodationBookings(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}
