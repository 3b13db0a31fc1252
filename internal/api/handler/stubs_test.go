package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.IssuedToken, *domain.User, error)
	users      []*domain.User
	lastPage   ports.Page
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.IssuedToken, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrTokenRejected
}

func (s *stubAuthService) ListUsers(_ context.Context, page ports.Page) ([]*domain.User, error) {
	s.lastPage = page
	return s.users, nil
}

type stubAccommodationService struct {
	list       []*domain.Accommodation
	lastFilter ports.AccommodationFilter
	lastCaller *domain.User
	lastFields domain.AccommodationFields
	err        error
}

func (s *stubAccommodationService) Create(_ context.Context, caller *domain.User, in domain.AccommodationFields) (*domain.Accommodation, error) {
	s.lastCaller, s.lastFields = caller, in
	if s.err != nil {
		return nil, s.err
	}
	a := &domain.Accommodation{ID: 1, OwnerID: caller.ID, Owner: domain.OwnerSummary{ID: caller.ID, Email: caller.Email}}
	in.ApplyTo(a)
	return a, nil
}

func (s *stubAccommodationService) Get(_ context.Context, id int64) (*domain.Accommodation, error) {
	for _, a := range s.list {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrAccommodationNotFound
}

func (s *stubAccommodationService) List(_ context.Context, filter ports.AccommodationFilter) ([]*domain.Accommodation, error) {
	s.lastFilter = filter
	return s.list, nil
}

func (s *stubAccommodationService) Update(_ context.Context, caller *domain.User, id int64, in domain.AccommodationFields) (*domain.Accommodation, error) {
	s.lastCaller, s.lastFields = caller, in
	return nil, s.err
}

func (s *stubAccommodationService) Delete(_ context.Context, caller *domain.User, _ int64) (*domain.Accommodation, error) {
	s.lastCaller = caller
	return nil, s.err
}

type stubBookingService struct {
	lastAccommodation ports.AccommodationBookingInput
	lastFlight        ports.FlightBookingInput
	mine              *ports.MyBookings
}

func (s *stubBookingService) BookAccommodation(_ context.Context, caller *domain.User, in ports.AccommodationBookingInput) (*domain.AccommodationBooking, error) {
	s.lastAccommodation = in
	return &domain.AccommodationBooking{
		ID:              7,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Status:          domain.BookingStatusPending,
		UserID:          caller.ID,
		AccommodationID: in.AccommodationID,
	}, nil
}

func (s *stubBookingService) BookFlight(_ context.Context, caller *domain.User, in ports.FlightBookingInput) (*domain.FlightBooking, error) {
	s.lastFlight = in
	return &domain.FlightBooking{ID: 8, BookingDate: in.BookingDate, UserID: caller.ID, FlightID: in.FlightID}, nil
}

func (s *stubBookingService) MyBookings(context.Context, *domain.User) (*ports.MyBookings, error) {
	return s.mine, nil
}

func (s *stubBookingService) ListAccommodationBookings(context.Context, ports.Page) ([]*domain.AccommodationBooking, error) {
	return nil, nil
}
