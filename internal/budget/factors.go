package budget

import "time"

// Calendar-driven price multipliers indexed by month (January first).
var seasonalFactors = [12]float64{
	0.8,  // Jan
	0.85, // Feb
	0.95, // Mar
	1.1,  // Apr
	1.2,  // May
	1.3,  // Jun
	1.4,  // Jul
	1.35, // Aug
	1.1,  // Sep
	0.95, // Oct
	0.85, // Nov
	1.2,  // Dec
}

// SeasonalFactor returns the multiplier for a trip starting in month m.
func SeasonalFactor(m time.Month) float64 {
	if m < time.January || m > time.December {
		return 1.0
	}
	return seasonalFactors[m-1]
}

type DensityCategory string

const (
	DensityLow      DensityCategory = "low"
	DensityMedium   DensityCategory = "medium"
	DensityHigh     DensityCategory = "high"
	DensityVeryHigh DensityCategory = "veryHigh"
)

var densityFactors = map[DensityCategory]float64{
	DensityLow:      0.9,
	DensityMedium:   1.0,
	DensityHigh:     1.3,
	DensityVeryHigh: 1.5,
}

// TouristDensityCategory buckets a 0-100 popularity score.
func TouristDensityCategory(popularity float64) DensityCategory {
	switch {
	case popularity <= 30:
		return DensityLow
	case popularity <= 70:
		return DensityMedium
	case popularity <= 90:
		return DensityHigh
	default:
		return DensityVeryHigh
	}
}

func TouristDensityFactor(c DensityCategory) float64 {
	if f, ok := densityFactors[c]; ok {
		return f
	}
	return 1.0
}
