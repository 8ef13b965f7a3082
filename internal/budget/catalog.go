package budget

import (
	"strings"

	"trip_budget/internal/domain"
)

const (
	defaultCostIndex        = 100.0
	defaultPopularity       = 50.0
	defaultAverageDailyCost = 100.0

	// used in the activities formula when a destination lists none
	fallbackActivityCost = 30.0
)

// Destination is a catalog entry with every numeric field populated.
type Destination struct {
	Name             string
	Country          string
	Currency         string
	Region           string
	CostIndex        float64
	Popularity       float64
	AverageDailyCost float64
	Activities       []domain.Activity

	// AverageActivityCost is the mean activity cost, 0 when there are none.
	AverageActivityCost float64

	// Complete is true when cost index, popularity and average daily cost
	// were all present before defaults were applied.
	Complete bool
}

// Catalog is the read-only, name-indexed destination set.
type Catalog struct {
	byKey map[string]int
	items []Destination
}

func catalogKey(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// LoadCatalog applies defaults to every record and indexes it by lowercased
// name. A later record with the same name replaces the earlier one in place.
// An empty input yields a valid, empty catalog.
func LoadCatalog(records []domain.DestinationRecord) *Catalog {
	c := &Catalog{byKey: make(map[string]int, len(records)), items: make([]Destination, 0, len(records))}
	for _, r := range records {
		key := catalogKey(r.Name)
		if key == "" {
			continue
		}
		d := fromRecord(r)
		if i, ok := c.byKey[key]; ok {
			c.items[i] = d
			continue
		}
		c.byKey[key] = len(c.items)
		c.items = append(c.items, d)
	}
	return c
}

func fromRecord(r domain.DestinationRecord) Destination {
	d := Destination{
		Name:             r.Name,
		Country:          r.Country,
		Currency:         r.Currency,
		Region:           r.Region,
		CostIndex:        orDefault(r.CostIndex, defaultCostIndex),
		Popularity:       orDefault(r.Popularity, defaultPopularity),
		AverageDailyCost: orDefault(r.AverageDailyCost, defaultAverageDailyCost),
		Activities:       append([]domain.Activity{}, r.Activities...),
		Complete:         present(r.CostIndex) && present(r.Popularity) && present(r.AverageDailyCost),
	}
	if n := len(d.Activities); n > 0 {
		var sum float64
		for _, a := range d.Activities {
			sum += a.Cost
		}
		d.AverageActivityCost = sum / float64(n)
	}
	return d
}

// A zero value counts as missing, matching how the catalog was filled
// historically (0 was never a meaningful cost index or daily cost).
func present(p *float64) bool { return p != nil && *p != 0 }

func orDefault(p *float64, def float64) float64 {
	if !present(p) {
		return def
	}
	return *p
}

// Lookup resolves a destination by case-insensitive name.
func (c *Catalog) Lookup(name string) (Destination, bool) {
	i, ok := c.byKey[catalogKey(name)]
	if !ok {
		return Destination{}, false
	}
	return c.items[i], true
}

func (c *Catalog) Len() int { return len(c.items) }

// Destinations returns the entries in load order.
func (c *Catalog) Destinations() []Destination {
	out := make([]Destination, len(c.items))
	copy(out, c.items)
	return out
}

// activityCostForFormula is the per-activity cost used in the activities
// category, falling back when the destination lists no activities.
func (d Destination) activityCostForFormula() float64 {
	if len(d.Activities) == 0 {
		return fallbackActivityCost
	}
	return d.AverageActivityCost
}
