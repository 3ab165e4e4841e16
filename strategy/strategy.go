package strategy

import "github.com/katalvlaran/foresight/egraph"

// Result is a strategy's output: the (possibly new) e-graph, the
// (possibly new) accumulator, and whether anything actually changed. A
// false Changed is this package's rendering of spec-level "Option[E']
// is None" — the caller should treat Graph/Data as unchanged from its
// input rather than a fresh value worth threading further.
type Result[N comparable, D any] struct {
	Graph   egraph.Mutable[N]
	Data    D
	Changed bool
}

// Strategy is (e-graph, accumulator, ParallelMap) -> result. D is a
// strategy-specific accumulator (a match cache, analysis set, iteration
// log — whatever the strategy needs to carry between calls); it is opaque
// to every combinator that doesn't specifically need to inspect it.
type Strategy[N comparable, D any] func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error)

// repeatConfig is the functional-options payload shared by RepeatUntilStable
// and RepeatUntilStableWithState.
type repeatConfig struct {
	limit int
}

// RepeatOption customizes a repeat combinator.
type RepeatOption func(*repeatConfig)

// WithIterationLimit caps the number of iterations the enclosing
// RepeatUntilStable/RepeatUntilStableWithState performs, regardless of
// whether the wrapped strategy keeps reporting change.
func WithIterationLimit(k int) RepeatOption {
	return func(c *repeatConfig) { c.limit = k }
}

func newRepeatConfig(opts []RepeatOption) repeatConfig {
	cfg := repeatConfig{limit: -1}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// RepeatUntilStable re-runs s, discarding its accumulator between
// iterations (every iteration sees the same d the combinator was called
// with), until s reports no change or the iteration limit is reached.
func RepeatUntilStable[N comparable, D any](s Strategy[N, D], opts ...RepeatOption) Strategy[N, D] {
	cfg := newRepeatConfig(opts)
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		cur := g
		changedEver := false
		for i := 0; cfg.limit < 0 || i < cfg.limit; i++ {
			res, err := s(cur, d, pm)
			if err != nil {
				return Result[N, D]{}, err
			}
			cur = res.Graph
			if !res.Changed {
				break
			}
			changedEver = true
		}
		return Result[N, D]{Graph: cur, Data: d, Changed: changedEver}, nil
	}
}

// RepeatUntilStableWithState is RepeatUntilStable but threads the
// accumulator s itself returns across iterations instead of resetting it —
// required by caches (MaximalRuleApplicationWithCaching) that must not
// forget what they've already applied between outer repeats.
func RepeatUntilStableWithState[N comparable, D any](s Strategy[N, D], opts ...RepeatOption) Strategy[N, D] {
	cfg := newRepeatConfig(opts)
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		cur := g
		curD := d
		changedEver := false
		for i := 0; cfg.limit < 0 || i < cfg.limit; i++ {
			res, err := s(cur, curD, pm)
			if err != nil {
				return Result[N, D]{}, err
			}
			cur = res.Graph
			curD = res.Data
			if !res.Changed {
				break
			}
			changedEver = true
		}
		return Result[N, D]{Graph: cur, Data: curD, Changed: changedEver}, nil
	}
}

// UntilFixpoint is unbounded RepeatUntilStable, spelled out for call sites
// that want the "run until nothing changes" intent to read directly rather
// than via an absent iteration limit.
func UntilFixpoint[N comparable, D any](s Strategy[N, D]) Strategy[N, D] {
	return RepeatUntilStable(s)
}

// BetweenIterations runs other once between every pair of s's iterations —
// after every iteration of s that reported change and is not the loop's
// last (count = iterations_of_s - 1). other never runs after the iteration
// that ends the loop, whether that's because s reported no change or
// because the iteration limit was reached.
func BetweenIterations[N comparable, D any](s, other Strategy[N, D], opts ...RepeatOption) Strategy[N, D] {
	cfg := newRepeatConfig(opts)
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		cur := g
		changedEver := false
		for i := 0; cfg.limit < 0 || i < cfg.limit; i++ {
			res, err := s(cur, d, pm)
			if err != nil {
				return Result[N, D]{}, err
			}
			cur = res.Graph
			if !res.Changed {
				break
			}
			changedEver = true
			willContinue := cfg.limit < 0 || i+1 < cfg.limit
			if willContinue {
				between, err := other(cur, d, pm)
				if err != nil {
					return Result[N, D]{}, err
				}
				cur = between.Graph
			}
		}
		return Result[N, D]{Graph: cur, Data: d, Changed: changedEver}, nil
	}
}

// WithChangeLogger invokes f(before, after) every time s runs, forwarding
// s's result unchanged. Compose with a repeat combinator to log on every
// iteration of a saturation loop.
func WithChangeLogger[N comparable, D any](s Strategy[N, D], f func(before, after egraph.Mutable[N])) Strategy[N, D] {
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		before := g.Freeze().Mutable()
		res, err := s(g, d, pm)
		if err == nil {
			f(before, res.Graph)
		}
		return res, err
	}
}

// AddAnalysis registers a on g in place before running s.
func AddAnalysis[N comparable, D any](a egraph.Analysis[N], s Strategy[N, D]) Strategy[N, D] {
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		g.WithAnalysis(a)
		return s(g, d, pm)
	}
}

// AddAnalyses registers every analysis in as on g in place before running s.
func AddAnalyses[N comparable, D any](as []egraph.Analysis[N], s Strategy[N, D]) Strategy[N, D] {
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		for _, a := range as {
			g.WithAnalysis(a)
		}
		return s(g, d, pm)
	}
}

// CloseMetadata lifts a strategy that carries no accumulator of its own
// into one that accepts and passes through a caller's D untouched — the
// "EGraphWithMetadata" boundary crossing for a strategy that only needs
// analyses registered on the e-graph, not an accumulator.
func CloseMetadata[N comparable, D any](s Strategy[N, struct{}]) Strategy[N, D] {
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		res, err := s(g, struct{}{}, pm)
		if err != nil {
			return Result[N, D]{}, err
		}
		return Result[N, D]{Graph: res.Graph, Data: d, Changed: res.Changed}, nil
	}
}

// DropData is CloseMetadata's inverse: it discards D, running s seeded
// with initial and reporting only Changed to the caller.
func DropData[N comparable, D any](s Strategy[N, D], initial D) Strategy[N, struct{}] {
	return func(g egraph.Mutable[N], _ struct{}, pm ParallelMap) (Result[N, struct{}], error) {
		res, err := s(g, initial, pm)
		if err != nil {
			return Result[N, struct{}]{}, err
		}
		return Result[N, struct{}]{Graph: res.Graph, Data: struct{}{}, Changed: res.Changed}, nil
	}
}

// CloseRecording lifts s into one that logs class-count deltas through log
// on every call, using the same narrow Logger surface egraph.WithLogger
// configures the core with.
func CloseRecording[N comparable, D any](s Strategy[N, D], log egraph.Logger) Strategy[N, D] {
	return func(g egraph.Mutable[N], d D, pm ParallelMap) (Result[N, D], error) {
		before := g.ClassCount()
		res, err := s(g, d, pm)
		if err == nil && log != nil {
			log.Debugw("strategy iteration",
				"classes_before", before,
				"classes_after", res.Graph.ClassCount(),
				"changed", res.Changed,
			)
		}
		return res, err
	}
}
