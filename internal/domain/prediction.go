package domain

import "time"

// Trip is the per-request input of a budget prediction.
type Trip struct {
	DestinationCity string
	StartDate       time.Time
	EndDate         time.Time
}

type Breakdown struct {
	Accommodation float64 `json:"accommodation"`
	Transport     float64 `json:"transport"`
	Activities    float64 `json:"activities"`
	Meals         float64 `json:"meals"`
	Other         float64 `json:"other"`
}

// Total sums the five categories.
func (b Breakdown) Total() float64 {
	return b.Accommodation + b.Transport + b.Activities + b.Meals + b.Other
}

type MarketFactors struct {
	SeasonalFactor       float64 `json:"seasonalFactor"`
	TouristDensityFactor float64 `json:"touristDensityFactor"`
	CostIndex            float64 `json:"costIndex"`
	Popularity           float64 `json:"popularity"`
}

type BudgetPrediction struct {
	Breakdown       Breakdown     `json:"breakdown"`
	TotalPredicted  float64       `json:"totalPredicted"`
	DailyAverage    float64       `json:"dailyAverage"`
	Confidence      float64       `json:"confidence"`
	Insights        []string      `json:"insights"`
	Recommendations []string      `json:"recommendations"`
	MarketFactors   MarketFactors `json:"marketFactors"`
	TripDuration    int           `json:"tripDuration"`
}

// CityStats is the informational summary of one destination.
type CityStats struct {
	Name                string     `json:"name"`
	Country             string     `json:"country"`
	Region              string     `json:"region"`
	CostIndex           float64    `json:"costIndex"`
	Popularity          float64    `json:"popularity"`
	AverageDailyCost    float64    `json:"averageDailyCost"`
	Currency            string     `json:"currency"`
	ActivityCount       int        `json:"activityCount"`
	AverageActivityCost float64    `json:"averageActivityCost"`
	TopActivities       []Activity `json:"topActivities"`
}

// ModelSummary describes the currently published regression model.
type ModelSummary struct {
	Version      int64     `json:"version"`
	Fingerprint  string    `json:"fingerprint"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	FeatureMeans []float64 `json:"featureMeans"`
	FeatureStds  []float64 `json:"featureStds"`
	Destinations int       `json:"destinations"`
	FinalMSE     float64   `json:"finalMse"`
	TrainedAt    time.Time `json:"trainedAt"`
}
