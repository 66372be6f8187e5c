package location

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/platform/apperr"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, name string) (Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Location{}, apperr.InvalidField("name", "name is required")
	}
	l, err := s.repo.Create(ctx, name)
	if err != nil {
		return Location{}, err
	}
	s.logger.Info().Int64("location_id", l.ID).Str("name", l.Name).Msg("location created")
	return l, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Location, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, includeInactive bool) ([]Location, error) {
	return s.repo.List(ctx, includeInactive)
}

func (s *Service) Rename(ctx context.Context, id int64, name string) (Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Location{}, apperr.InvalidField("name", "name is required")
	}
	return s.repo.Rename(ctx, id, name)
}

// Deactivate hides a location from pickers. Visits recorded against it stay
// intact, so history keeps resolving.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}
