package ports

import (
	"context"
	"time"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// IssuedToken is a signed session token and its expiry.
type IssuedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService covers registration, login and request authentication.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*IssuedToken, *domain.User, error)
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
	ListUsers(ctx context.Context, page Page) ([]*domain.User, error)
}

// AccommodationService defines the listing use cases. Update and Delete
// enforce ownership by the caller.
type AccommodationService interface {
	Create(ctx context.Context, caller *domain.User, in domain.AccommodationFields) (*domain.Accommodation, error)
	Get(ctx context.Context, id int64) (*domain.Accommodation, error)
	List(ctx context.Context, filter AccommodationFilter) ([]*domain.Accommodation, error)
	Update(ctx context.Context, caller *domain.User, id int64, in domain.AccommodationFields) (*domain.Accommodation, error)
	Delete(ctx context.Context, caller *domain.User, id int64) (*domain.Accommodation, error)
}

// FlightInput carries the fields of a new flight.
type FlightInput struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    string
	ArrivalTime      string
	Price            int
}

// FlightService defines the flight listing use cases.
type FlightService interface {
	Create(ctx context.Context, in FlightInput) (*domain.Flight, error)
	Get(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, page Page) ([]*domain.Flight, error)
}

// AccommodationBookingInput requests a stay at an accommodation.
type AccommodationBookingInput struct {
	AccommodationID int64
	StartDate       domain.Date
	EndDate         domain.Date
	IdempotencyKey  string
}

// FlightBookingInput requests a seat on a flight.
type FlightBookingInput struct {
	FlightID       int64
	BookingDate    domain.Date
	IdempotencyKey string
}

// MyBookings groups a user's bookings by kind.
type MyBookings struct {
	Accommodations []*domain.AccommodationBooking
	Flights        []*domain.FlightBooking
}

// BookingService defines booking use cases.
type BookingService interface {
	BookAccommodation(ctx context.Context, caller *domain.User, in AccommodationBookingInput) (*domain.AccommodationBooking, error)
	BookFlight(ctx context.Context, caller *domain.User, in FlightBookingInput) (*domain.FlightBooking, error)
	MyBookings(ctx context.Context, caller *domain.User) (*MyBookings, error)
	ListAccommodationBookings(ctx context.Context, page Page) ([]*domain.AccommodationBooking, error)
}
