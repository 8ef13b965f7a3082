package budget

// Fixed so that a given catalog always trains to the same model.
const (
	learningRate = 0.01
	iterations   = 1000
)

// Model is a linear regression of average daily cost over normalized
// destination features. It is never updated after Train returns.
type Model struct {
	Weights      FeatureVector
	Bias         float64
	FeatureMeans FeatureVector
	FeatureStds  FeatureVector
}

// TrainingReport summarizes one training run.
type TrainingReport struct {
	Samples    int
	Iterations int
	FinalMSE   float64
}

// Train fits the model over every destination in the catalog with batch
// gradient descent. An empty catalog produces a zero model.
func Train(c *Catalog) (Model, TrainingReport) {
	ds := c.Destinations()
	raw := make([]FeatureVector, len(ds))
	targets := make([]float64, len(ds))
	for i, d := range ds {
		raw[i] = featuresOf(d)
		targets[i] = d.AverageDailyCost
	}

	norm := fitNormalizer(raw)
	xs := make([]FeatureVector, len(raw))
	for i, v := range raw {
		xs[i] = norm.apply(v)
	}

	m := Model{FeatureMeans: norm.means, FeatureStds: norm.stds}
	rep := TrainingReport{Samples: len(xs)}
	if len(xs) == 0 {
		return m, rep
	}

	n := float64(len(xs))
	for it := 0; it < iterations; it++ {
		var gw FeatureVector
		var gb float64
		for i, x := range xs {
			err := dot(m.Weights, x) + m.Bias - targets[i]
			for j := range gw {
				gw[j] += err * x[j]
			}
			gb += err
		}
		for j := range m.Weights {
			m.Weights[j] -= learningRate * gw[j] / n
		}
		m.Bias -= learningRate * gb / n
	}
	rep.Iterations = iterations

	var sse float64
	for i, x := range xs {
		e := dot(m.Weights, x) + m.Bias - targets[i]
		sse += e * e
	}
	rep.FinalMSE = sse / n
	return m, rep
}

// Estimate normalizes raw features with FeatureMeans and FeatureStds and
// applies the linear model. A non-positive deviation counts as 1. The result
// is not clamped.
func (m Model) Estimate(raw FeatureVector) float64 {
	var x FeatureVector
	for j := range raw {
		std := m.FeatureStds[j]
		if !(std > 0) {
			std = 1
		}
		x[j] = (raw[j] - m.FeatureMeans[j]) / std
	}
	return dot(m.Weights, x) + m.Bias
}

func dot(w, x FeatureVector) float64 {
	var s float64
	for j := range w {
		s += w[j] * x[j]
	}
	return s
}
