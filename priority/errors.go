package priority

import "errors"

var (
	// ErrWeightsMismatch is returned when SampleWithoutReplacement is
	// given element and weight slices of different lengths.
	ErrWeightsMismatch = errors.New("priority: elements and weights have different lengths")

	// ErrNonPositiveWeight is returned when a weighted sample encounters a
	// weight <= 0; Efraimidis-Spirakis requires strictly positive weights.
	ErrNonPositiveWeight = errors.New("priority: weights must be positive")

	// ErrSampleSizeExceedsPopulation is returned when SampleWithoutReplacement
	// is asked for more elements than the population holds. n == len(elems)
	// is a legitimate "return everything" request and is not an error; only
	// n > len(elems) is a precondition violation.
	ErrSampleSizeExceedsPopulation = errors.New("priority: sample size exceeds population")
)
