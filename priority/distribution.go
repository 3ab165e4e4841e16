package priority

import "sort"

// DiscreteDistribution turns a list of integer priorities into a
// probability distribution over the same index positions via a curve
// function applied to rank.
type DiscreteDistribution struct {
	// Apply maps a zero-based rank (0 = highest priority) to a raw score.
	// A typical curve is a geometric decay like func(r int) float64 {
	// return math.Pow(0.5, float64(r)) }.
	Apply func(rank int) float64
}

// PrioritiesToProbabilities groups priorities (descending), assigns every
// group the mean of Apply over its rank range (so ties share one
// probability), then normalizes: if the curve undershoots 1 the leftover
// mass is spread uniformly across every entry: if it overshoots, every
// entry is scaled down proportionally. The result always sums to 1 (for at
// least one nonzero input) and has one entry per input, in input order.
func (d DiscreteDistribution) PrioritiesToProbabilities(priorities []int) []float64 {
	n := len(priorities)
	if n == 0 {
		return nil
	}

	type ranked struct {
		origIndex int
		priority  int
	}
	order := make([]ranked, n)
	for i, p := range priorities {
		order[i] = ranked{origIndex: i, priority: p}
	}
	sort.SliceStable(order, func(a, b int) bool { return order[a].priority > order[b].priority })

	probs := make([]float64, n)
	for rank := 0; rank < n; {
		end := rank + 1
		for end < n && order[end].priority == order[rank].priority {
			end++
		}
		sum := 0.0
		for k := rank; k < end; k++ {
			sum += d.Apply(k)
		}
		mean := sum / float64(end-rank)
		for k := rank; k < end; k++ {
			probs[order[k].origIndex] = mean
		}
		rank = end
	}

	total := 0.0
	for _, p := range probs {
		total += p
	}
	switch {
	case total <= 0:
		u := 1.0 / float64(n)
		for i := range probs {
			probs[i] = u
		}
	case total < 1:
		leftover := (1 - total) / float64(n)
		for i := range probs {
			probs[i] += leftover
		}
	case total > 1:
		for i := range probs {
			probs[i] /= total
		}
	}
	return probs
}
