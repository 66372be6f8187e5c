package pharmacy

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
	return &Service{repo: repo, logger: logger.With().Str("component", "pharmacy").Logger()}
}

func (s *Service) Create(ctx context.Context, in CreateInput, updatedBy int64) (Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Item{}, apperr.InvalidField("name", "name is required")
	}
	var level int64
	if in.StockLevel != nil {
		if *in.StockLevel < 0 {
			return Item{}, apperr.InvalidField("stock_level", "stock_level must be a non-negative number")
		}
		level = *in.StockLevel
	}
	i, err := s.repo.Create(ctx, name, level, updatedBy)
	if err != nil {
		return Item{}, err
	}
	s.logger.Info().Int64("item_id", i.ID).Str("name", i.Name).Msg("pharmacy item created")
	return i, nil
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput, updatedBy int64) (Item, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return Item{}, apperr.InvalidField("name", "name cannot be blank")
		}
		in.Name = &trimmed
	}
	if in.StockLevel != nil && *in.StockLevel < 0 {
		return Item{}, apperr.InvalidField("stock_level", "stock_level must be a non-negative number")
	}
	if in.Name == nil && in.StockLevel == nil {
		return Item{}, apperr.Invalid("nothing to update")
	}
	return s.repo.Update(ctx, id, in, updatedBy)
}

// Adjust shifts stock by delta. Negative deltas dispense; the ledger clamps
// at zero rather than rejecting an over-dispense.
func (s *Service) Adjust(ctx context.Context, id int64, delta *int64, updatedBy int64) (Item, error) {
	if delta == nil {
		return Item{}, apperr.InvalidField("delta", "delta is required and must be a number")
	}
	return s.repo.Adjust(ctx, id, *delta, updatedBy)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("item_id", id).Msg("pharmacy item deleted")
	return nil
}
