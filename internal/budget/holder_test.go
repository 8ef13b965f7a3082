package budget

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip_budget/internal/domain"
)

func TestHolder_SwapPublishesNewVersion(t *testing.T) {
	h := NewHolder(New(sampleCatalog(), Options{}))
	p1, v1 := h.Current()
	require.Equal(t, int64(1), v1)
	assert.Equal(t, 5, p1.Catalog().Len())

	v2 := h.Swap(New(sampleCatalog()[:2], Options{}))
	p2, cur := h.Current()
	assert.Equal(t, int64(2), v2)
	assert.Equal(t, v2, cur)
	assert.Equal(t, 2, p2.Catalog().Len())

	// the old predictor keeps working for callers that still hold it
	_, err := p1.Predict(domain.Trip{DestinationCity: "Zurich", StartDate: day("2024-01-01"), EndDate: day("2024-01-02")})
	assert.NoError(t, err)

	s := h.Summary()
	assert.Equal(t, int64(2), s.Version)
	assert.Equal(t, 2, s.Destinations)
	assert.Equal(t, p2.Fingerprint(), s.Fingerprint)
	assert.NotEqual(t, p1.Fingerprint(), s.Fingerprint)
	assert.Len(t, s.Weights, numFeatures)
}

func TestHolder_ConcurrentReadersDuringSwap(t *testing.T) {
	small := New(sampleCatalog()[:1], Options{})
	full := New(sampleCatalog(), Options{})
	h := NewHolder(small)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				p, _ := h.Current()
				m := p.Model()
				// a reader sees one model or the other, never a mix
				if p == small {
					assert.Equal(t, small.Model().Weights, m.Weights)
				} else {
					assert.Equal(t, full.Model().Weights, m.Weights)
				}
				_, err := p.Predict(domain.Trip{DestinationCity: "Paris", StartDate: day("2024-07-10"), EndDate: day("2024-07-17")})
				assert.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			h.Swap(full)
		} else {
			h.Swap(small)
		}
	}
	wg.Wait()
	_, v := h.Current()
	assert.Equal(t, int64(51), v)
}
