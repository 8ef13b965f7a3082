package budget

import (
	"sync"
	"sync/atomic"

	"trip_budget/internal/domain"
)

type published struct {
	p       *Predictor
	version int64
}

// Holder publishes the current predictor. Readers never block and always
// see a complete predictor; Swap replaces it in one step.
type Holder struct {
	mu  sync.Mutex // serializes writers
	cur atomic.Pointer[published]
}

func NewHolder(p *Predictor) *Holder {
	h := &Holder{}
	h.cur.Store(&published{p: p, version: 1})
	return h
}

// Current returns the live predictor and its version.
func (h *Holder) Current() (*Predictor, int64) {
	c := h.cur.Load()
	return c.p, c.version
}

// Swap publishes p and returns its version.
func (h *Holder) Swap(p *Predictor) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	v := h.cur.Load().version + 1
	h.cur.Store(&published{p: p, version: v})
	return v
}

// Summary describes the live model.
func (h *Holder) Summary() domain.ModelSummary {
	p, v := h.Current()
	m := p.Model()
	return domain.ModelSummary{
		Version:      v,
		Fingerprint:  p.Fingerprint(),
		Weights:      m.Weights[:],
		Bias:         m.Bias,
		FeatureMeans: m.FeatureMeans[:],
		FeatureStds:  m.FeatureStds[:],
		Destinations: p.Catalog().Len(),
		FinalMSE:     p.Report().FinalMSE,
		TrainedAt:    p.TrainedAt(),
	}
}
