package priority

import "github.com/katalvlaran/foresight/rewrite"

// Weighted pairs a match with the priority a Prioritizer assigned it.
type Weighted[N comparable] struct {
	Match  rewrite.Match[N]
	Weight float64
}

// Prioritizer assigns a weight to every match in a batch, optionally
// dropping or reordering some of them.
type Prioritizer[N comparable] func(matches []rewrite.Match[N]) []Weighted[N]

// UniformPriorities assigns every match weight 1 and caps the result at
// maxBatch entries (maxBatch <= 0 means unbounded).
func UniformPriorities[N comparable](maxBatch int) Prioritizer[N] {
	return func(matches []rewrite.Match[N]) []Weighted[N] {
		n := len(matches)
		if maxBatch > 0 && maxBatch < n {
			n = maxBatch
		}
		out := make([]Weighted[N], n)
		for i := 0; i < n; i++ {
			out[i] = Weighted[N]{Match: matches[i], Weight: 1}
		}
		return out
	}
}

// ReweightedPriorities runs inner, then reshapes every resulting weight
// through reweight.
func ReweightedPriorities[N comparable](inner Prioritizer[N], reweight func(float64) float64) Prioritizer[N] {
	return func(matches []rewrite.Match[N]) []Weighted[N] {
		ws := inner(matches)
		out := make([]Weighted[N], len(ws))
		for i, w := range ws {
			out[i] = Weighted[N]{Match: w.Match, Weight: reweight(w.Weight)}
		}
		return out
	}
}

// CurveFittedPriorities runs inner and replaces its weights with the
// probabilities dist derives from them: each weight, scaled to an integer,
// serves as the match's priority (highest weight ranks first, equal weights
// share one probability).
func CurveFittedPriorities[N comparable](inner Prioritizer[N], dist DiscreteDistribution) Prioritizer[N] {
	return func(matches []rewrite.Match[N]) []Weighted[N] {
		ws := inner(matches)
		ranks := make([]int, len(ws))
		for i, w := range ws {
			ranks[i] = int(w.Weight * 1e6) // inner's weight as an integer priority
		}
		probs := dist.PrioritiesToProbabilities(ranks)
		out := make([]Weighted[N], len(ws))
		for i, w := range ws {
			out[i] = Weighted[N]{Match: w.Match, Weight: probs[i]}
		}
		return out
	}
}
