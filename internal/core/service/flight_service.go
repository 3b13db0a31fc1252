package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type FlightService struct {
	repo   ports.FlightRepository
	logger zerolog.Logger
}

func NewFlightService(repo ports.FlightRepository, logger zerolog.Logger) *FlightService {
	return &FlightService{repo: repo, logger: logger}
}

func (s *FlightService) Create(ctx context.Context, in ports.FlightInput) (*domain.Flight, error) {
	if in.DepartureAirport == "" || in.ArrivalAirport == "" || in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.repo.Create(ctx, &domain.Flight{
		DepartureAirport: in.DepartureAirport,
		ArrivalAirport:   in.ArrivalAirport,
		DepartureTime:    in.DepartureTime,
		ArrivalTime:      in.ArrivalTime,
		Price:            in.Price,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create flight")
		return nil, err
	}

	s.logger.Info().Int64("flight_id", created.ID).Str("route", in.DepartureAirport+"-"+in.ArrivalAirport).Msg("flight created")
	return created, nil
}

func (s *FlightService) Get(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.Get(ctx, id)
}

func (s *FlightService) List(ctx context.Context, page ports.Page) ([]*domain.Flight, error) {
	return s.repo.List(ctx, normalizePage(page))
}
