package budget

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"trip_budget/internal/domain"
)

const (
	accommodationShare = 0.40
	transportShare     = 0.25
	mealsShare         = 0.25
	otherShare         = 0.10

	maxActivitiesPerDay = 2.0
	topActivitiesLimit  = 5
)

type Options struct {
	// AllowReversedDates accepts an end date before the start date and uses
	// the absolute span instead of failing with ErrInvalidDateRange.
	AllowReversedDates bool
}

// Predictor pairs a catalog with the model trained on it. Both are
// read-only, so a Predictor may be shared by concurrent callers.
type Predictor struct {
	catalog   *Catalog
	model     Model
	report    TrainingReport
	opts      Options
	trainedAt time.Time
	digest    string
}

// New loads the records into a catalog and trains a model over it. The
// returned predictor is ready to serve.
func New(records []domain.DestinationRecord, opts Options) *Predictor {
	c := LoadCatalog(records)
	m, rep := Train(c)
	return &Predictor{catalog: c, model: m, report: rep, opts: opts, trainedAt: time.Now().UTC(), digest: fingerprint(c, opts)}
}

// fingerprint identifies the inputs a predictor was built from. Training is
// deterministic, so equal fingerprints mean equal predictions in any process.
func fingerprint(c *Catalog, opts Options) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(opts)
	for _, d := range c.items {
		_ = enc.Encode(d)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (p *Predictor) Catalog() *Catalog      { return p.catalog }
func (p *Predictor) Model() Model           { return p.model }
func (p *Predictor) Report() TrainingReport { return p.report }
func (p *Predictor) TrainedAt() time.Time   { return p.trainedAt }

// Fingerprint is stable across processes for the same catalog and options.
func (p *Predictor) Fingerprint() string { return p.digest }

// TripDuration counts days inclusive of both endpoints.
func TripDuration(start, end time.Time) int {
	days := math.Abs(end.Sub(start).Hours()) / 24
	return int(math.Ceil(days)) + 1
}

// Predict produces the category-wise budget for a trip. It fails with
// domain.ErrDestinationNotFound when the destination is not in the catalog.
func (p *Predictor) Predict(trip domain.Trip) (domain.BudgetPrediction, error) {
	d, ok := p.catalog.Lookup(trip.DestinationCity)
	if !ok {
		return domain.BudgetPrediction{}, fmt.Errorf("%w: %q", domain.ErrDestinationNotFound, trip.DestinationCity)
	}
	if trip.EndDate.Before(trip.StartDate) && !p.opts.AllowReversedDates {
		return domain.BudgetPrediction{}, fmt.Errorf("%w: %s < %s", domain.ErrInvalidDateRange,
			trip.EndDate.Format(time.DateOnly), trip.StartDate.Format(time.DateOnly))
	}

	duration := TripDuration(trip.StartDate, trip.EndDate)
	days := float64(duration)
	seasonal := SeasonalFactor(trip.StartDate.Month())
	density := TouristDensityFactor(TouristDensityCategory(d.Popularity))

	base := math.Max(0, p.model.Estimate(featuresOf(d)))
	adjusted := base * seasonal * density

	perDay := math.Min(maxActivitiesPerDay, float64(len(d.Activities))/7)
	b := domain.Breakdown{
		Accommodation: d.AverageDailyCost * accommodationShare * days * seasonal * density,
		Transport:     d.AverageDailyCost * transportShare * days * density,
		Meals:         d.AverageDailyCost * mealsShare * days * density,
		Other:         d.AverageDailyCost * otherShare * days * density,
		Activities:    d.activityCostForFormula() * perDay * days * density,
	}

	return domain.BudgetPrediction{
		Breakdown:       b,
		TotalPredicted:  b.Total(),
		DailyAverage:    adjusted,
		Confidence:      confidenceFor(d),
		Insights:        insightsFor(d, seasonal, density),
		Recommendations: recommendationsFor(d, duration),
		MarketFactors: domain.MarketFactors{
			SeasonalFactor:       seasonal,
			TouristDensityFactor: density,
			CostIndex:            d.CostIndex,
			Popularity:           d.Popularity,
		},
		TripDuration: duration,
	}, nil
}

// CityStatistics returns nil when the name does not resolve.
func (p *Predictor) CityStatistics(name string) *domain.CityStats {
	d, ok := p.catalog.Lookup(name)
	if !ok {
		return nil
	}
	s := statsOf(d)
	return &s
}

// CompareCities resolves each name independently, silently skipping unknown
// ones, and orders the result by average daily cost, cheapest first.
func (p *Predictor) CompareCities(names []string) []domain.CityStats {
	out := make([]domain.CityStats, 0, len(names))
	for _, n := range names {
		if d, ok := p.catalog.Lookup(n); ok {
			out = append(out, statsOf(d))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageDailyCost < out[j].AverageDailyCost
	})
	return out
}

func statsOf(d Destination) domain.CityStats {
	top := append([]domain.Activity{}, d.Activities...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Rating > top[j].Rating })
	if len(top) > topActivitiesLimit {
		top = top[:topActivitiesLimit]
	}
	return domain.CityStats{
		Name:                d.Name,
		Country:             d.Country,
		Region:              d.Region,
		CostIndex:           d.CostIndex,
		Popularity:          d.Popularity,
		AverageDailyCost:    d.AverageDailyCost,
		Currency:            d.Currency,
		ActivityCount:       len(d.Activities),
		AverageActivityCost: d.AverageActivityCost,
		TopActivities:       top,
	}
}
