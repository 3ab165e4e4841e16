// Package strategy wires rules into saturation loops. A Strategy is a pure
// function from (e-graph, accumulator, ParallelMap) to a (possibly
// unchanged) result; combinators repeat a strategy until it stops
// producing change, chain strategies between each other's iterations, and
// lift plain strategies into ones that additionally carry analyses or log
// their own progress. MaximalRuleApplication and its caching variant are
// the two saturation engines everything else composes around.
package strategy
