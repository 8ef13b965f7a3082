package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_budget/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--catalog", "testdata/catalog.json"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPredictCommand(t *testing.T) {
	out, err := run(t, "predict", "Paris", "--start", "2024-07-01", "--end", "2024-07-08")
	require.NoError(t, err)

	var pred domain.BudgetPrediction
	require.NoError(t, json.Unmarshal([]byte(out), &pred))
	assert.Equal(t, 8, pred.TripDuration)
	assert.Equal(t, 1.4, pred.MarketFactors.SeasonalFactor)
}

func TestPredictCommand_UnknownCity(t *testing.T) {
	_, err := run(t, "predict", "Atlantis", "--start", "2024-07-01", "--end", "2024-07-08")
	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", "hanoi")
	require.NoError(t, err)

	var cs domain.CityStats
	require.NoError(t, json.Unmarshal([]byte(out), &cs))
	assert.Equal(t, "Hanoi", cs.Name)
	assert.Equal(t, 100.0, cs.AverageDailyCost)

	_, err = run(t, "stats", "Atlantis")
	assert.ErrorIs(t, err, domain.ErrDestinationNotFound)
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "Paris", "Hanoi", "Atlantis")
	require.NoError(t, err)

	var list []domain.CityStats
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Hanoi", list[0].Name)
	assert.Equal(t, "Paris", list[1].Name)
}
