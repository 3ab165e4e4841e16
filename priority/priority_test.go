package priority

import (
	"testing"

	"github.com/katalvlaran/foresight/rewrite"
	"github.com/stretchr/testify/require"
)

func TestSampleWithoutReplacementEdgeCases(t *testing.T) {
	elems := []string{"a", "b", "c"}
	weights := []float64{1, 1, 1}
	rng := NewSplitMix64(42)

	none, err := SampleWithoutReplacement(elems, weights, 0, rng)
	require.NoError(t, err)
	require.Empty(t, none)

	all, err := SampleWithoutReplacement(elems, weights, 3, rng)
	require.NoError(t, err)
	require.ElementsMatch(t, elems, all)

	_, err = SampleWithoutReplacement(elems, weights, 10, rng)
	require.ErrorIs(t, err, ErrSampleSizeExceedsPopulation)
}

func TestSampleWithoutReplacementFavorsHeavierWeight(t *testing.T) {
	elems := []string{"light", "heavy"}
	weights := []float64{1, 3}
	rng := NewSplitMix64(99)

	counts := map[string]int{}
	const trials = 2000
	for i := 0; i < trials; i++ {
		picked, err := SampleWithoutReplacement(elems, weights, 1, rng)
		require.NoError(t, err)
		counts[picked[0]]++
	}

	require.Greater(t, counts["heavy"], counts["light"], "the weight-3 element must be favored over the weight-1 element")
}

func TestSampleWithoutReplacementRejectsNonPositiveWeight(t *testing.T) {
	_, err := SampleWithoutReplacement([]string{"a", "b"}, []float64{1, 0}, 1, NewSplitMix64(1))
	require.ErrorIs(t, err, ErrNonPositiveWeight)
}

func TestSampleWithoutReplacementRejectsMismatchedLengths(t *testing.T) {
	_, err := SampleWithoutReplacement([]string{"a", "b"}, []float64{1}, 1, NewSplitMix64(1))
	require.ErrorIs(t, err, ErrWeightsMismatch)
}

func TestSampleWithoutReplacementIsDeterministicForAFixedSeed(t *testing.T) {
	elems := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	weights := make([]float64, len(elems))
	for i := range weights {
		weights[i] = 1
	}
	a, err := SampleWithoutReplacement(elems, weights, 4, NewSplitMix64(7))
	require.NoError(t, err)
	b, err := SampleWithoutReplacement(elems, weights, 4, NewSplitMix64(7))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestPrioritiesToProbabilitiesSumsToOne(t *testing.T) {
	dist := DiscreteDistribution{Apply: func(rank int) float64 { return 1.0 / float64(rank+1) }}
	probs := dist.PrioritiesToProbabilities([]int{5, 5, 1, 0})
	require.Len(t, probs, 4)
	total := 0.0
	for _, p := range probs {
		total += p
	}
	require.InDelta(t, 1.0, total, 1e-9)
	// The two rank-0/1 ties (priority 5) must share one probability.
	require.InDelta(t, probs[0], probs[1], 1e-12)
}

func TestUniformPrioritiesCapsBatch(t *testing.T) {
	prioritizer := UniformPriorities[string](2)
	out := prioritizer(nil)
	require.Empty(t, out)

	capped := prioritizer(make([]rewrite.Match[string], 3))
	require.Len(t, capped, 2)
}
