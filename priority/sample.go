package priority

import (
	"math"
	"sort"
)

// SplitMix64 is a small, fast, deterministic pseudo-random generator used
// in place of a stateful library RNG so a seeded sample is exactly
// reproducible across runs and platforms. It carries no external
// dependency surface: the state is a single uint64, advanced by the
// standard SplitMix64 mixing constants.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 returns a generator seeded with seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Next returns the generator's next raw 64-bit output.
func (s *SplitMix64) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Float64 returns a uniform value in [0, 1).
func (s *SplitMix64) Float64() float64 {
	return float64(s.Next()>>11) / float64(uint64(1)<<53)
}

// SampleWithoutReplacement runs Efraimidis-Spirakis weighted reservoir
// sampling: every element i draws a key u_i^(1/w_i) for u_i ~ U(0,1), and
// the n elements with the largest keys are returned. n <= 0 yields an empty
// slice; n == len(elems) yields every element, in original order, since no
// selection actually happens; n > len(elems) is a precondition violation
// and returns ErrSampleSizeExceedsPopulation rather than silently truncating
// to the population. Go forbids a generic method from introducing a type
// parameter its receiver doesn't have (the same reason enode.MapAtoms is a
// free function), so this is spelled as a top-level function rather than a
// method on a Sample type.
func SampleWithoutReplacement[T any](elems []T, weights []float64, n int, rng *SplitMix64) ([]T, error) {
	if len(elems) != len(weights) {
		return nil, ErrWeightsMismatch
	}
	if n <= 0 {
		return []T{}, nil
	}
	if n > len(elems) {
		return nil, ErrSampleSizeExceedsPopulation
	}
	if n == len(elems) {
		return append([]T(nil), elems...), nil
	}

	type keyed struct {
		idx int
		key float64
	}
	keys := make([]keyed, len(elems))
	for i, w := range weights {
		if w <= 0 {
			return nil, ErrNonPositiveWeight
		}
		u := rng.Float64()
		if u <= 0 {
			u = math.SmallestNonzeroFloat64
		}
		keys[i] = keyed{idx: i, key: math.Pow(u, 1/w)}
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].key > keys[b].key })

	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = elems[keys[i].idx]
	}
	return out, nil
}
