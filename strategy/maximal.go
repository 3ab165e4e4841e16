package strategy

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/rewrite"
	pkgerrors "github.com/pkg/errors"
)

// defaultMatchCacheSize bounds MatchCache's memory when callers don't pick
// their own via NewMatchCacheSized. Eviction only costs a wasted re-search
// of an already-applied match (Optimize's structural dedup absorbs the
// redundant add/union it produces), never a correctness violation.
const defaultMatchCacheSize = 4096

// MaximalRuleApplication searches every rule (in parallel, via the
// ParallelMap passed at call time), applies every match found, and
// rebuilds once at the end. It carries no accumulator of its own.
func MaximalRuleApplication[N comparable](rules []rewrite.Rule[N]) Strategy[N, struct{}] {
	return func(g egraph.Mutable[N], d struct{}, pm ParallelMap) (Result[N, struct{}], error) {
		like := egraph.AsLike(g)
		queues, err := MapParallel(pm, rules, func(r rewrite.Rule[N]) (*rewrite.CommandQueue[N], error) {
			return r.Run(like)
		})
		if err != nil {
			return Result[N, struct{}]{}, pkgerrors.Wrap(err, "maximal rule application: search/apply")
		}
		q := rewrite.NewQueue[N]()
		for _, sub := range queues {
			q.Absorb(sub)
		}
		q.Optimize()
		changed, _, err := q.Apply(g)
		if err != nil {
			return Result[N, struct{}]{}, pkgerrors.Wrap(err, "maximal rule application: command queue")
		}
		return Result[N, struct{}]{Graph: g, Data: d, Changed: changed}, nil
	}
}

// MatchCache is MaximalRuleApplicationWithCaching's accumulator: a set of
// matches (rule name, root class and bindings) already applied, so repeated
// outer iterations don't re-pay the cost of a match they already acted on.
type MatchCache struct {
	seen *lru.Cache[string, struct{}]
}

// NewMatchCache returns an empty cache bounded at defaultMatchCacheSize.
func NewMatchCache() *MatchCache {
	c, err := NewMatchCacheSized(defaultMatchCacheSize)
	if err != nil {
		// defaultMatchCacheSize is a positive constant; lru.New only
		// errors on size <= 0.
		panic(err)
	}
	return c
}

// NewMatchCacheSized returns an empty cache bounded at size entries.
func NewMatchCacheSized(size int) (*MatchCache, error) {
	c, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "new match cache")
	}
	return &MatchCache{seen: c}, nil
}

// matchKey identifies a match by rule name, root class, variable bindings
// (sorted, since PatternMatch keeps them unordered) and slot bindings.
func matchKey[N comparable](ruleName string, m rewrite.Match[N]) string {
	vars := m.Bindings.Vars()
	parts := make([]string, 0, len(vars))
	for _, v := range vars {
		t, _ := m.Bindings.Var(v)
		parts = append(parts, fmt.Sprintf("%v=%v", v, t))
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s@%s{%s}%v", ruleName, m.Root.String(), strings.Join(parts, ";"), m.Bindings.Slots())
}

// MaximalRuleApplicationWithCaching is MaximalRuleApplication with a
// memoized skip list: a match (same rule, root and bindings) already applied is not
// re-applied on a later call sharing the same *MatchCache. Compose with
// RepeatUntilStableWithState so the cache survives across outer
// iterations — RepeatUntilStable alone would hand back a fresh cache every
// time and defeat the memoization.
func MaximalRuleApplicationWithCaching[N comparable](rules []rewrite.Rule[N]) Strategy[N, *MatchCache] {
	return func(g egraph.Mutable[N], cache *MatchCache, pm ParallelMap) (Result[N, *MatchCache], error) {
		if cache == nil {
			cache = NewMatchCache()
		}
		like := egraph.AsLike(g)
		q := rewrite.NewQueue[N]()
		for _, r := range rules {
			matches, err := r.Search(like)
			if err != nil {
				return Result[N, *MatchCache]{}, pkgerrors.Wrapf(err, "rule %q: search", r.Name)
			}
			for _, m := range matches {
				key := matchKey(r.Name, m)
				if _, ok := cache.seen.Get(key); ok {
					continue
				}
				cache.seen.Add(key, struct{}{})
				sub, err := r.Apply(m, like)
				if err != nil {
					return Result[N, *MatchCache]{}, pkgerrors.Wrapf(err, "rule %q: apply", r.Name)
				}
				q.Absorb(sub)
			}
		}
		q.Optimize()
		changed, _, err := q.Apply(g)
		if err != nil {
			return Result[N, *MatchCache]{}, pkgerrors.Wrap(err, "maximal rule application with caching: command queue")
		}
		return Result[N, *MatchCache]{Graph: g, Data: cache, Changed: changed}, nil
	}
}
