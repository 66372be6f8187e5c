package patient

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/veasna/clinic/internal/platform/apperr"
	"github.com/veasna/clinic/pkg/pagination"
)

const searchLimit = 10

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, in CreateInput, updatedBy int64) (Patient, error) {
	in.EnglishName = strings.TrimSpace(in.EnglishName)
	if in.EnglishName == "" {
		return Patient{}, apperr.InvalidField("english_name", "english_name is required")
	}
	if in.LocationID == 0 {
		return Patient{}, apperr.InvalidField("location_id", "location_id is required")
	}

	p, err := s.repo.Create(ctx, in, updatedBy)
	if err != nil {
		return Patient{}, err
	}
	s.logger.Info().Int64("patient_id", p.ID).Int64("location_id", p.LocationID).
		Msg("patient created")
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	visits, err := s.repo.VisitSummaries(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if visits == nil {
		visits = []VisitSummary{}
	}
	return Detail{Patient: p, Visits: visits}, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput, updatedBy int64) (Patient, error) {
	if in.isEmpty() {
		return Patient{}, apperr.Invalid("no fields to update")
	}
	if in.EnglishName != nil && strings.TrimSpace(*in.EnglishName) == "" {
		return Patient{}, apperr.InvalidField("english_name", "english_name cannot be blank")
	}
	return s.repo.Update(ctx, id, in, updatedBy)
}

// Delete removes the patient and, through the schema's cascades, every visit
// and clinical record that hangs off it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("patient_id", id).Msg("patient deleted")
	return nil
}

func (s *Service) ListByLocation(ctx context.Context, locationID int64, p pagination.Params) (pagination.Page[Patient], error) {
	if locationID == 0 {
		return pagination.Page[Patient]{}, apperr.InvalidField("location_id", "location_id is required")
	}
	items, total, err := s.repo.ListByLocation(ctx, locationID, p.Limit, p.Offset)
	if err != nil {
		return pagination.Page[Patient]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (s *Service) Search(ctx context.Context, q string) ([]Patient, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.InvalidField("q", "search query is required")
	}
	return s.repo.Search(ctx, q, searchLimit)
}
