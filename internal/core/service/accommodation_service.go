package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

type AccommodationService struct {
	repo   ports.AccommodationRepository
	logger zerolog.Logger
}

func NewAccommodationService(repo ports.AccommodationRepository, logger zerolog.Logger) *AccommodationService {
	return &AccommodationService{repo: repo, logger: logger}
}

// Create stores a new listing owned by caller.
func (s *AccommodationService) Create(ctx context.Context, caller *domain.User, in domain.AccommodationFields) (*domain.Accommodation, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if err := validateFields(in); err != nil {
		return nil, err
	}

	a := &domain.Accommodation{
		OwnerID: caller.ID,
		Owner:   domain.OwnerSummary{ID: caller.ID, Email: caller.Email},
	}
	in.ApplyTo(a)

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create accommodation")
		return nil, err
	}

	s.logger.Info().Int64("accommodation_id", created.ID).Int64("owner_id", caller.ID).Msg("accommodation created")
	return created, nil
}

func (s *AccommodationService) Get(ctx context.Context, id int64) (*domain.Accommodation, error) {
	return s.repo.Get(ctx, id)
}

func (s *AccommodationService) List(ctx context.Context, filter ports.AccommodationFilter) ([]*domain.Accommodation, error) {
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Page = normalizePage(filter.Page)
	return s.repo.List(ctx, filter)
}

// Update replaces the mutable fields of a listing. The listing must exist
// before ownership is checked, so a missing id is always reported as not found.
func (s *AccommodationService) Update(ctx context.Context, caller *domain.User, id int64, in domain.AccommodationFields) (*domain.Accommodation, error) {
	if err := validateFields(in); err != nil {
		return nil, err
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, current.OwnerID); err != nil {
		s.logger.Warn().Int64("accommodation_id", id).Int64("caller_id", callerID(caller)).Msg("update rejected: not owner")
		return nil, err
	}

	in.ApplyTo(current)
	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accommodation_id", id).Msg("accommodation updated")
	return updated, nil
}

// Delete removes a listing owned by caller and returns it as it was. Deleting
// an id that no longer exists returns domain.ErrAccommodationNotFound.
func (s *AccommodationService) Delete(ctx context.Context, caller *domain.User, id int64) (*domain.Accommodation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(caller, current.OwnerID); err != nil {
		s.logger.Warn().Int64("accommodation_id", id).Int64("caller_id", callerID(caller)).Msg("delete rejected: not owner")
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("accommodation_id", id).Msg("accommodation deleted")
	return current, nil
}

func validateFields(in domain.AccommodationFields) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Location) == "" || in.Price < 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func callerID(u *domain.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
