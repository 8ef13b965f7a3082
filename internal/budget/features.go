package budget

import "math"

const numFeatures = 4

// FeatureVector is [costIndex, popularity, activityCount, averageActivityCost].
type FeatureVector [numFeatures]float64

func featuresOf(d Destination) FeatureVector {
	return FeatureVector{
		d.CostIndex,
		d.Popularity,
		float64(len(d.Activities)),
		d.AverageActivityCost,
	}
}

type normalizer struct {
	means FeatureVector
	stds  FeatureVector
	flat  [numFeatures]bool // dimension had no spread across the catalog
}

// fitNormalizer computes per-dimension mean and population standard
// deviation with a plain sequential reduction. A zero deviation becomes 1.
func fitNormalizer(vs []FeatureVector) normalizer {
	var n normalizer
	for j := range n.stds {
		n.stds[j] = 1
	}
	if len(vs) == 0 {
		return n
	}
	count := float64(len(vs))
	for j := 0; j < numFeatures; j++ {
		var sum float64
		for _, v := range vs {
			sum += v[j]
		}
		mean := sum / count

		var sq float64
		for _, v := range vs {
			d := v[j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / count)

		n.means[j] = mean
		// rounding in the mean can leave a tiny residue for identical values
		if std > 1e-12*math.Max(1, math.Abs(mean)) {
			n.stds[j] = std
		} else {
			n.flat[j] = true
		}
	}
	return n
}

func (n normalizer) apply(v FeatureVector) FeatureVector {
	var out FeatureVector
	for j := range v {
		d := v[j] - n.means[j]
		if n.flat[j] && math.Abs(d) <= 1e-12*math.Max(1, math.Abs(n.means[j])) {
			d = 0
		}
		out[j] = d / n.stds[j]
	}
	return out
}
