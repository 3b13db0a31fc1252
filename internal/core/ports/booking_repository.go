package ports

import (
	"context"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// BookingRepository persists accommodation and flight bookings.
type BookingRepository interface {
	CreateAccommodationBooking(ctx context.Context, b *domain.AccommodationBooking) (*domain.AccommodationBooking, error)
	CreateFlightBooking(ctx context.Context, b *domain.FlightBooking) (*domain.FlightBooking, error)
	// GetAccommodationBooking and GetFlightBooking return
	// domain.ErrBookingNotFound for unknown ids.
	GetAccommodationBooking(ctx context.Context, id int64) (*domain.AccommodationBooking, error)
	GetFlightBooking(ctx context.Context, id int64) (*domain.FlightBooking, error)
	AccommodationBookingsByUser(ctx context.Context, userID int64) ([]*domain.AccommodationBooking, error)
	FlightBookingsByUser(ctx context.Context, userID int64) ([]*domain.FlightBooking, error)
	ListAccommodationBookings(ctx context.Context, page Page) ([]*domain.AccommodationBooking, error)
}

// IdempotencyStore remembers which booking a client-supplied Idempotency-Key
// produced. Claim returns the booking id already bound to key, or 0 when the
// caller now owns the key and must Bind it after persisting.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string) (int64, error)
	Bind(ctx context.Context, key string, bookingID int64) error
	Release(ctx context.Context, key string) error
}
