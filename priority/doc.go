// Package priority ranks and samples matches between searching and
// applying: a Prioritizer assigns each match a weight, optionally reshaped
// through a DiscreteDistribution curve, and SampleWithoutReplacement picks
// a weighted subset via Efraimidis-Spirakis reservoir sampling driven by a
// deterministic SplitMix64 generator.
package priority
