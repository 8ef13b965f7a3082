package budget

import "fmt"

const (
	baseConfidence = 0.8
	maxConfidence  = 0.95
)

func confidenceFor(d Destination) float64 {
	c := baseConfidence
	if d.Complete {
		c += 0.1
	}
	if len(d.Activities) > 5 {
		c += 0.05
	}
	if c > maxConfidence {
		c = maxConfidence
	}
	return c
}

func insightsFor(d Destination, seasonal, density float64) []string {
	out := []string{}
	if seasonal > 1.2 {
		out = append(out, fmt.Sprintf("Peak season pricing: expect prices around %.0f%% above the yearly baseline", (seasonal-1)*100))
	}
	if seasonal < 0.9 {
		out = append(out, fmt.Sprintf("Off-season pricing: prices run around %.0f%% below the yearly baseline", (1-seasonal)*100))
	}
	if density > 1.2 {
		out = append(out, fmt.Sprintf("High tourist demand in %s pushes prices up by about %.0f%%", d.Name, (density-1)*100))
	}
	if d.CostIndex > 120 {
		out = append(out, fmt.Sprintf("High cost of living: %s is well above the average destination cost index", d.Name))
	}
	if d.CostIndex < 80 {
		out = append(out, fmt.Sprintf("Budget-friendly destination: %s sits below the average destination cost index", d.Name))
	}
	return out
}

func recommendationsFor(d Destination, duration int) []string {
	out := []string{}
	if duration > 7 {
		out = append(out,
			"Consider a weekly public transport pass instead of single tickets",
			"Ask for long-stay discounts on accommodation for stays over a week",
		)
	}
	if len(d.Activities) > 10 {
		out = append(out, "A city pass can bundle many of the available attractions at a lower price")
	}
	if d.CostIndex > 100 {
		out = append(out,
			"Book accommodation well in advance to lock in lower rates",
			"Look at apartments or guesthouses as cheaper alternatives to hotels",
		)
	}
	return out
}
