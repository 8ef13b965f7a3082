package budget

import (
	"time"

	"trip_budget/internal/domain"
)

func f64(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func activities(costs ...float64) []domain.Activity {
	out := make([]domain.Activity, len(costs))
	for i, c := range costs {
		out[i] = domain.Activity{Cost: c, Rating: 4}
	}
	return out
}

func sampleCatalog() []domain.DestinationRecord {
	return []domain.DestinationRecord{
		{
			Name: "Paris", Country: "France", Currency: "EUR", Region: "Europe",
			CostIndex: f64(110), Popularity: f64(85), AverageDailyCost: f64(150),
			Activities: []domain.Activity{{Name: "Louvre", Cost: 40, Rating: 4.5}, {Name: "Seine cruise", Cost: 60, Rating: 4.2}},
		},
		{
			Name: "Bangkok", Country: "Thailand", Currency: "THB", Region: "Asia",
			CostIndex: f64(55), Popularity: f64(80), AverageDailyCost: f64(60),
			Activities: activities(10, 15, 20, 25, 5, 12, 8, 30),
		},
		{
			Name: "Zurich", Country: "Switzerland", Currency: "CHF", Region: "Europe",
			CostIndex: f64(140), Popularity: f64(60), AverageDailyCost: f64(260),
			Activities: activities(50, 70, 90, 40, 30, 60, 45, 55, 80, 65, 35, 75),
		},
		{
			Name: "Reykjavik", Country: "Iceland", Currency: "ISK", Region: "Europe",
			CostIndex: f64(130), Popularity: f64(25), AverageDailyCost: f64(220),
		},
		{
			Name: "Lisbon", Country: "Portugal", Currency: "EUR", Region: "Europe",
			Popularity: f64(95),
			Activities: activities(20, 25, 30),
		},
	}
}
