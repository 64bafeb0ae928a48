package dataset

import "math"

// Aggregate computes overall and per-name statistics for a validated record
// set. It is a pure function: identical input always yields identical
// output, and row order affects only the order groups appear in, never
// their values. Empty input yields nil: there is nothing to render.
func Aggregate(records []Record) *Summary {
	if len(records) == 0 {
		return nil
	}

	var overall accumulator
	var order []string
	groups := make(map[string]*accumulator)

	for _, rec := range records {
		overall.add(rec.Value)

		g, ok := groups[rec.Name]
		if !ok {
			g = &accumulator{}
			groups[rec.Name] = g
			order = append(order, rec.Name)
		}
		g.add(rec.Value)
	}

	summary := &Summary{
		Overall: overall.metrics(),
		Groups:  make([]GroupMetrics, 0, len(order)),
	}
	for _, name := range order {
		summary.Groups = append(summary.Groups, GroupMetrics{
			Name:    name,
			Metrics: groups[name].metrics(),
		})
	}

	return summary
}

type accumulator struct {
	n        int
	sum      float64
	min, max float64
}

func (a *accumulator) add(v float64) {
	if a.n == 0 {
		a.min, a.max = v, v
	} else {
		if v < a.min {
			a.min = v
		}
		if v > a.max {
			a.max = v
		}
	}
	a.n++
	a.sum += v
}

func (a *accumulator) metrics() Metrics {
	return Metrics{
		Average: round2(a.sum / float64(a.n)),
		Min:     a.min,
		Max:     a.max,
	}
}

// round2 rounds half away from zero to two decimal places, matching
// standard fixed-point formatting.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
