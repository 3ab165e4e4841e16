package rewrite

import (
	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/pattern"
	"github.com/katalvlaran/foresight/slot"
	pkgerrors "github.com/pkg/errors"
)

// Match pairs a successful pattern match with the class it was found
// rooted at.
type Match[N comparable] struct {
	Root     enode.EClassRef
	Bindings enode.PatternMatch[N]
}

// Searcher scans an e-graph for matches. It never mutates g.
type Searcher[N comparable] func(g egraph.EGraphLike[N]) ([]Match[N], error)

// Applier turns one match into a batch of queued commands. It may read g
// (e.g. to consult an analysis value while deciding what to build) but
// queues rather than performs its writes, so the strategy layer controls
// when and how commands from many matches are merged and applied.
type Applier[N comparable] func(m Match[N], g egraph.EGraphLike[N]) (*CommandQueue[N], error)

// Rule pairs a Searcher with an Applier under a name used for logging and
// for caching which matches a rule has already applied.
type Rule[N comparable] struct {
	Name   string
	Search Searcher[N]
	Apply  Applier[N]
}

// Run searches g and applies every match, returning one merged queue.
func (r Rule[N]) Run(g egraph.EGraphLike[N]) (*CommandQueue[N], error) {
	matches, err := r.Search(g)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "rule %q: search", r.Name)
	}
	q := NewQueue[N]()
	for _, m := range matches {
		sub, err := r.Apply(m, g)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "rule %q: apply", r.Name)
		}
		q.Absorb(sub)
	}
	return q, nil
}

// ToSearcher compiles p once and matches it against every live class,
// rooting each attempt at the class's own identity call (ClassSig). This is
// the "MachineSearcherPhase" of a single compiled pattern; aggregate
// several with AggregateSearchers to combine matches found independently
// over sub-patterns.
func ToSearcher[N comparable](p enode.Pattern[N]) Searcher[N] {
	prog := pattern.Compile(p)
	return func(g egraph.EGraphLike[N]) ([]Match[N], error) {
		var out []Match[N]
		for _, ref := range g.ClassRefs() {
			root, err := g.ClassSig(ref)
			if err != nil {
				return nil, pkgerrors.Wrap(err, "class sig")
			}
			ms, err := pattern.Match(prog, g, root)
			if err != nil {
				return nil, pkgerrors.Wrap(err, "pattern match")
			}
			for _, pm := range ms {
				out = append(out, Match[N]{Root: ref, Bindings: pm})
			}
		}
		return out, nil
	}
}

// AggregateSearchers merges the matches produced independently by several
// searchers, keyed by root class: matches found for the same root across
// different searchers are combined with PatternMatch.Merge so a rule can
// pattern-match several disjoint sub-shapes against the one class and
// apply them together.
func AggregateSearchers[N comparable](searchers ...Searcher[N]) Searcher[N] {
	return func(g egraph.EGraphLike[N]) ([]Match[N], error) {
		byRoot := map[enode.EClassRef][]enode.PatternMatch[N]{}
		order := []enode.EClassRef{}
		for _, s := range searchers {
			ms, err := s(g)
			if err != nil {
				return nil, err
			}
			for _, m := range ms {
				if _, ok := byRoot[m.Root]; !ok {
					order = append(order, m.Root)
				}
				byRoot[m.Root] = append(byRoot[m.Root], m.Bindings)
			}
		}
		out := make([]Match[N], 0, len(order))
		for _, ref := range order {
			merged := byRoot[ref][0]
			for _, pm := range byRoot[ref][1:] {
				merged = merged.Merge(pm)
			}
			out = append(out, Match[N]{Root: ref, Bindings: merged})
		}
		return out, nil
	}
}

// ToApplier instantiates p through a match's bindings, adds
// the result to the e-graph and unions it with the match's root.
func ToApplier[N comparable](p enode.Pattern[N]) Applier[N] {
	return func(m Match[N], g egraph.EGraphLike[N]) (*CommandQueue[N], error) {
		root, err := g.ClassSig(m.Root)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "class sig")
		}
		tree, ok := instantiate(p, m.Bindings)
		if !ok {
			return nil, ErrUnboundVar
		}
		q := NewQueue[N]()
		rootSym := q.Known(root)
		sym := q.Add(ToSymbolicTree[N](tree))
		q.UnionSymbols(sym, rootSym)
		return q, nil
	}
}

// Filter narrows s to only the matches satisfying pred.
func Filter[N comparable](s Searcher[N], pred func(Match[N], egraph.EGraphLike[N]) bool) Searcher[N] {
	return func(g egraph.EGraphLike[N]) ([]Match[N], error) {
		ms, err := s(g)
		if err != nil {
			return nil, err
		}
		out := make([]Match[N], 0, len(ms))
		for _, m := range ms {
			if pred(m, g) {
				out = append(out, m)
			}
		}
		return out, nil
	}
}

// FilterApplier wraps a to a no-op (empty queue) for matches pred rejects.
func FilterApplier[N comparable](a Applier[N], pred func(Match[N], egraph.EGraphLike[N]) bool) Applier[N] {
	return func(m Match[N], g egraph.EGraphLike[N]) (*CommandQueue[N], error) {
		if !pred(m, g) {
			return NewQueue[N](), nil
		}
		return a(m, g)
	}
}

// instantiate builds a concrete Tree from pattern p using m's variable
// bindings for leaves and m's slot substitution for any def/use slot the
// match fixed. A def/use slot the match never touched (a fresh binder the
// pattern introduces on the right-hand side only) passes through
// unchanged.
func instantiate[N comparable](p enode.Pattern[N], m enode.PatternMatch[N]) (enode.Tree[N], bool) {
	if p.IsAtom() {
		return m.Var(p.Atom())
	}
	children := make([]enode.Tree[N], len(p.Children()))
	for i, ch := range p.Children() {
		t, ok := instantiate(ch, m)
		if !ok {
			return enode.Tree[N]{}, false
		}
		children[i] = t
	}
	return enode.NodeTree[N, enode.EClassCall](
		p.Op(),
		renameSlots(p.Defs(), m.Slots()),
		renameSlots(p.Uses(), m.Slots()),
		children...,
	), true
}

func renameSlots(slots []slot.Slot, subst slot.SlotMap) []slot.Slot {
	out := make([]slot.Slot, len(slots))
	for i, s := range slots {
		if v, ok := subst.Get(s); ok {
			out[i] = v
		} else {
			out[i] = s
		}
	}
	return out
}
