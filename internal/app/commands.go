package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"trip_budget/internal/domain"
)

type IngestionService struct {
	source domain.CatalogSource
	repo   domain.CatalogRepository
}

func NewIngestionService(src domain.CatalogSource, r domain.CatalogRepository) *IngestionService {
	return &IngestionService{source: src, repo: r}
}

// missStatus classifies upstream errors that are recorded as misses rather
// than failing the run.
func missStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return 404, true
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		return 403, true
	}
	return 0, false
}

// IngestDestination copies one upstream destination and its activities into
// the catalog store. Known misses are logged and skipped.
func (s *IngestionService) IngestDestination(ctx context.Context, id int64) error {
	// 1) Destination first; activities reference it.
	p, err := s.source.GetDestination(ctx, id)
	if err != nil {
		if status, ok := missStatus(err); ok {
			reason := "not found"
			if status == 403 {
				reason = "inactive"
			}
			_ = s.repo.LogMiss(ctx, id, status, reason)
			return nil
		}
		return err
	}

	rec := mapDestination(p)
	if rec.ID == 0 {
		rec.ID = id
	}
	if rec.Name == "" {
		_ = s.repo.LogMiss(ctx, id, 422, "missing name")
		return nil
	}
	destID, err := s.repo.UpsertDestination(ctx, rec)
	if err != nil {
		return fmt.Errorf("upsert destination %d: %w", id, err)
	}

	// 2) Activities: best-effort on misses, everything else bubbles up.
	raw, err := s.source.GetActivities(ctx, id)
	if err != nil {
		if status, ok := missStatus(err); ok {
			_ = s.repo.LogMiss(ctx, id, status, "activities")
			return nil
		}
		return err
	}
	acts := mapActivities(destID, raw)
	if err := s.repo.ReplaceActivities(ctx, destID, acts); err != nil {
		return fmt.Errorf("replace activities for %d: %w", id, err)
	}
	log.Debug().Int64("id", id).Str("name", rec.Name).Int("activities", len(acts)).Msg("destination ingested")
	return nil
}
