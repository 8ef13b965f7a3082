package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trip_budget/internal/budget"
	"trip_budget/internal/domain"
)

type PredictionResult struct {
	ID           uuid.UUID               `json:"id"`
	Destination  string                  `json:"destination"`
	ModelVersion int64                   `json:"modelVersion"`
	Prediction   domain.BudgetPrediction `json:"prediction"`
}

type QueryService struct {
	models   *budget.Holder
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(h *budget.Holder, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{models: h, cache: c, cacheTTL: ttl}
}

// Keys carry the predictor fingerprint rather than the in-process version,
// so a shared cache never mixes catalogs across restarts or replicas.
// The trip part holds exactly what Predict reads: the start date in the
// caller's zone, the duration and the direction.
func predictionKey(fp string, t domain.Trip) string {
	dir := "f"
	if t.EndDate.Before(t.StartDate) {
		dir = "r"
	}
	return fmt.Sprintf("prediction:%s:%s:%s:%d:%s", fp,
		strings.ToLower(strings.TrimSpace(t.DestinationCity)),
		t.StartDate.Format(time.DateOnly), budget.TripDuration(t.StartDate, t.EndDate), dir)
}

func statsKey(fp string, name string) string {
	return fmt.Sprintf("stats:%s:%s", fp, strings.ToLower(strings.TrimSpace(name)))
}

// cached reports a usable hit. A read or decode failure is a miss.
func (s *QueryService) cached(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed; recomputing")
		return false
	}
	return ok
}

func (s *QueryService) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *QueryService) Predict(ctx context.Context, trip domain.Trip) (PredictionResult, error) {
	p, version := s.models.Current()
	out := PredictionResult{ID: uuid.New(), Destination: trip.DestinationCity, ModelVersion: version}
	if d, ok := p.Catalog().Lookup(trip.DestinationCity); ok {
		out.Destination = d.Name
	}

	key := predictionKey(p.Fingerprint(), trip)
	var hit domain.BudgetPrediction
	if s.cached(ctx, key, &hit) {
		out.Prediction = hit
		return out, nil
	}
	pred, err := p.Predict(trip)
	if err != nil {
		return PredictionResult{}, err
	}
	s.store(ctx, key, pred)
	out.Prediction = pred
	return out, nil
}

// CityStats returns nil, nil for an unknown destination.
func (s *QueryService) CityStats(ctx context.Context, name string) (*domain.CityStats, error) {
	p, _ := s.models.Current()
	key := statsKey(p.Fingerprint(), name)
	var hit domain.CityStats
	if s.cached(ctx, key, &hit) {
		return &hit, nil
	}
	cs := p.CityStatistics(name)
	if cs != nil {
		s.store(ctx, key, *cs)
	}
	return cs, nil
}

func (s *QueryService) Compare(ctx context.Context, names []string) []domain.CityStats {
	p, _ := s.models.Current()
	return p.CompareCities(names)
}

func (s *QueryService) Model() domain.ModelSummary { return s.models.Summary() }
