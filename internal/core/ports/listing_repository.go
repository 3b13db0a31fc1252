package ports

import (
	"context"

	"github.com/seon98/Trip-Backend/internal/core/domain"
)

// AccommodationFilter narrows accommodation listings. Location matches as a
// substring when non-empty.
type AccommodationFilter struct {
	Location string
	Page     Page
}

// AccommodationRepository defines persistence operations for accommodations.
// Get returns domain.ErrAccommodationNotFound for unknown ids.
type AccommodationRepository interface {
	Create(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error)
	Get(ctx context.Context, id int64) (*domain.Accommodation, error)
	List(ctx context.Context, filter AccommodationFilter) ([]*domain.Accommodation, error)
	Update(ctx context.Context, a *domain.Accommodation) (*domain.Accommodation, error)
	Delete(ctx context.Context, id int64) error
}

// FlightRepository defines persistence operations for flights.
// Get returns domain.ErrFlightNotFound for unknown ids.
type FlightRepository interface {
	Create(ctx context.Context, f *domain.Flight) (*domain.Flight, error)
	Get(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, page Page) ([]*domain.Flight, error)
}
