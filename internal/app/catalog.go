package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"trip_budget/internal/adapters/observability"
	"trip_budget/internal/budget"
	"trip_budget/internal/domain"
)

// CatalogService reads the destination catalog, trains a predictor on it
// and publishes the result.
type CatalogService struct {
	reader domain.CatalogReader
	opts   budget.Options
	models *budget.Holder
}

func NewCatalogService(r domain.CatalogReader, opts budget.Options) *CatalogService {
	return &CatalogService{reader: r, opts: opts}
}

// Initialize performs the first load and training. Nothing can be served
// until it succeeds.
func (s *CatalogService) Initialize(ctx context.Context) (*budget.Holder, error) {
	p, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.models = budget.NewHolder(p)
	observability.ObserveModel(1, p.Catalog().Len())
	return s.models, nil
}

// Reload retrains from a fresh read of the catalog and swaps the model in.
// On failure the live model is left untouched.
func (s *CatalogService) Reload(ctx context.Context) (int64, error) {
	if s.models == nil {
		return 0, fmt.Errorf("%w: catalog not initialized", domain.ErrCatalogLoad)
	}
	p, err := s.build(ctx)
	if err != nil {
		return 0, err
	}
	v := s.models.Swap(p)
	observability.ObserveModel(v, p.Catalog().Len())
	log.Info().Int64("version", v).Int("destinations", p.Catalog().Len()).Msg("model published")
	return v, nil
}

func (s *CatalogService) build(ctx context.Context) (*budget.Predictor, error) {
	recs, err := s.reader.ListDestinations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogLoad, err)
	}
	start := time.Now()
	p := budget.New(recs, s.opts)
	dur := time.Since(start)

	rep := p.Report()
	observability.ObserveTraining(dur)
	log.Info().
		Int("destinations", p.Catalog().Len()).
		Int("iterations", rep.Iterations).
		Float64("final_mse", rep.FinalMSE).
		Dur("duration", dur).
		Msg("model trained")
	if p.Catalog().Len() == 0 {
		log.Warn().Msg("destination catalog is empty; every prediction will fail lookup")
	}
	return p, nil
}
