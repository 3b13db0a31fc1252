package handler

import (
	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type tokenRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// --- Listings ---

type accommodationRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Location    string  `json:"location"    validate:"required"`
	Price       int     `json:"price"       validate:"gte=0"`
	Description *string `json:"description"`
}

type accommodationResponse struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Price       int          `json:"price"`
	Description *string      `json:"description"`
	OwnerID     int64        `json:"owner_id"`
	Owner       userResponse `json:"owner"`
}

type flightRequest struct {
	DepartureAirport string `json:"departure_airport" validate:"required"`
	ArrivalAirport   string `json:"arrival_airport"   validate:"required"`
	DepartureTime    string `json:"departure_time"    validate:"required"`
	ArrivalTime      string `json:"arrival_time"      validate:"required"`
	Price            int    `json:"price"             validate:"gte=0"`
}

// --- Bookings ---

type accommodationBookingRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

type flightBookingRequest struct {
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
}

type myBookingsResponse struct {
	Accommodations []*domain.AccommodationBooking `json:"accommodations"`
	Flights        []*domain.FlightBooking        `json:"flights"`
}

// --- Misc ---

type messageResponse struct {
	Message string `json:"message"`
}
