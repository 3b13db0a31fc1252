package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/api/metrics"
	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type BookingService struct {
	bookings       ports.BookingRepository
	accommodations ports.AccommodationRepository
	flights        ports.FlightRepository
	idem           ports.IdempotencyStore // optional
	sink           ports.EventSink        // optional
	logger         zerolog.Logger
}

func NewBookingService(
	bookings ports.BookingRepository,
	accommodations ports.AccommodationRepository,
	flights ports.FlightRepository,
	idem ports.IdempotencyStore,
	sink ports.EventSink,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:       bookings,
		accommodations: accommodations,
		flights:        flights,
		idem:           idem,
		sink:           sink,
		logger:         logger,
	}
}

// BookAccommodation reserves an accommodation for caller. When an
// idempotency key is supplied and already bound, the original booking is
// returned without side effects.
func (s *BookingService) BookAccommodation(ctx context.Context, caller *domain.User, in ports.AccommodationBookingInput) (*domain.AccommodationBooking, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !in.EndDate.After(in.StartDate.Time) {
		return nil, fmt.Errorf("%w: end_date must be after start_date", domain.ErrInvalidInput)
	}
	if _, err := s.accommodations.Get(ctx, in.AccommodationID); err != nil {
		return nil, err
	}

	key := idemKey(domain.EventAccommodationBooked, caller.ID, in.IdempotencyKey)
	existingID, err := s.claim(ctx, key)
	if err != nil {
		return nil, err
	}
	if existingID > 0 {
		s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("booking_id", existingID).Msg("idempotent replay")
		return s.bookings.GetAccommodationBooking(ctx, existingID)
	}

	created, err := s.bookings.CreateAccommodationBooking(ctx, &domain.AccommodationBooking{
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Status:          domain.BookingStatusPending,
		UserID:          caller.ID,
		AccommodationID: in.AccommodationID,
	})
	if err != nil {
		s.release(ctx, key)
		s.logger.Error().Err(err).Msg("failed to create accommodation booking")
		return nil, err
	}
	s.bind(ctx, key, created.ID)

	metrics.BookingsCreatedTotal.WithLabelValues("accommodation").Inc()
	s.emit(domain.BookingEvent{
		Kind:       domain.EventAccommodationBooked,
		BookingID:  created.ID,
		UserID:     caller.ID,
		UserEmail:  caller.Email,
		ResourceID: in.AccommodationID,
		StartDate:  in.StartDate.String(),
		EndDate:    in.EndDate.String(),
		OccurredAt: time.Now().UTC(),
	})
	return created, nil
}

// BookFlight reserves a flight seat for caller.
func (s *BookingService) BookFlight(ctx context.Context, caller *domain.User, in ports.FlightBookingInput) (*domain.FlightBooking, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if _, err := s.flights.Get(ctx, in.FlightID); err != nil {
		return nil, err
	}

	key := idemKey(domain.EventFlightBooked, caller.ID, in.IdempotencyKey)
	existingID, err := s.claim(ctx, key)
	if err != nil {
		return nil, err
	}
	if existingID > 0 {
		s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("booking_id", existingID).Msg("idempotent replay")
		return s.bookings.GetFlightBooking(ctx, existingID)
	}

	created, err := s.bookings.CreateFlightBooking(ctx, &domain.FlightBooking{
		BookingDate: in.BookingDate,
		Status:      domain.BookingStatusPending,
		UserID:      caller.ID,
		FlightID:    in.FlightID,
	})
	if err != nil {
		s.release(ctx, key)
		s.logger.Error().Err(err).Msg("failed to create flight booking")
		return nil, err
	}
	s.bind(ctx, key, created.ID)

	metrics.BookingsCreatedTotal.WithLabelValues("flight").Inc()
	s.emit(domain.BookingEvent{
		Kind:       domain.EventFlightBooked,
		BookingID:  created.ID,
		UserID:     caller.ID,
		UserEmail:  caller.Email,
		ResourceID: in.FlightID,
		StartDate:  in.BookingDate.String(),
		OccurredAt: time.Now().UTC(),
	})
	return created, nil
}

// MyBookings returns every booking held by caller.
func (s *BookingService) MyBookings(ctx context.Context, caller *domain.User) (*ports.MyBookings, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	acc, err := s.bookings.AccommodationBookingsByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("accommodation bookings: %w", err)
	}
	fl, err := s.bookings.FlightBookingsByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("flight bookings: %w", err)
	}
	return &ports.MyBookings{Accommodations: acc, Flights: fl}, nil
}

// ListAccommodationBookings pages through all accommodation bookings.
func (s *BookingService) ListAccommodationBookings(ctx context.Context, page ports.Page) ([]*domain.AccommodationBooking, error) {
	return s.bookings.ListAccommodationBookings(ctx, normalizePage(page))
}

// idemKey scopes a client key to the booking kind and the caller, so two
// users sending the same header value never collide.
func idemKey(kind string, userID int64, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d:%s", kind, userID, key)
}

func (s *BookingService) claim(ctx context.Context, key string) (int64, error) {
	if key == "" || s.idem == nil {
		return 0, nil
	}
	return s.idem.Claim(ctx, key)
}

func (s *BookingService) bind(ctx context.Context, key string, id int64) {
	if key == "" || s.idem == nil {
		return
	}
	if err := s.idem.Bind(ctx, key, id); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to bind idempotency key")
	}
}

func (s *BookingService) release(ctx context.Context, key string) {
	if key == "" || s.idem == nil {
		return
	}
	if err := s.idem.Release(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

// emit stamps the event with a fresh id and hands it to the sink.
func (s *BookingService) emit(ev domain.BookingEvent) {
	if s.sink == nil {
		return
	}
	ev.ID = uuid.NewString()
	s.sink.Enqueue(ev)
}
