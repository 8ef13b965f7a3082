package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSeasonalFactor(t *testing.T) {
	assert.Equal(t, 1.4, SeasonalFactor(time.July))
	assert.Equal(t, 0.8, SeasonalFactor(time.January))
	assert.Equal(t, 1.2, SeasonalFactor(time.December))
	assert.Equal(t, 1.0, SeasonalFactor(time.Month(0)))
	assert.Equal(t, 1.0, SeasonalFactor(time.Month(13)))
}

func TestTouristDensity(t *testing.T) {
	cases := []struct {
		pop    float64
		cat    DensityCategory
		factor float64
	}{
		{0, DensityLow, 0.9},
		{30, DensityLow, 0.9},
		{30.5, DensityMedium, 1.0},
		{70, DensityMedium, 1.0},
		{85, DensityHigh, 1.3},
		{90, DensityHigh, 1.3},
		{91, DensityVeryHigh, 1.5},
	}
	for _, tc := range cases {
		cat := TouristDensityCategory(tc.pop)
		assert.Equal(t, tc.cat, cat, "popularity %v", tc.pop)
		assert.Equal(t, tc.factor, TouristDensityFactor(cat))
	}
	assert.Equal(t, 1.0, TouristDensityFactor("unknown"))
}
