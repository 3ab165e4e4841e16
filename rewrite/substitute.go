package rewrite

import (
	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
)

// Substitute rewrites the tree bound to `in`, renaming every occurrence of
// slot `from` to `to`, and rebinds the result under `out` (often `in`
// itself). It is the generic post-processing step rule authors reach for
// to thread a captured subterm back into a match after splicing it — the
// capture-avoidance side condition itself belongs to the caller's pred,
// checked with Filter before Substitute runs.
func Substitute[N comparable](m enode.PatternMatch[N], in enode.PatternVar, from, to slot.Slot, out enode.PatternVar) (enode.PatternMatch[N], bool) {
	t, ok := m.Var(in)
	if !ok {
		return m, false
	}
	return m.BindVar(out, renameTree(t, from, to)), true
}

// FreshenBoundSlots renames every slot in bound to a freshly allocated one
// throughout the tree bound to `in`, rebinding under `out`. Appliers use
// this to avoid variable capture when splicing a subterm that still
// mentions a binder the destination context also uses — the slotted
// equivalent of renaming a bound variable before substitution.
func FreshenBoundSlots[N comparable](m enode.PatternMatch[N], in enode.PatternVar, bound slot.SlotSet, out enode.PatternVar) (enode.PatternMatch[N], bool) {
	t, ok := m.Var(in)
	if !ok {
		return m, false
	}
	renaming := slot.BijectionFromSetToFresh(bound)
	return m.BindVar(out, renameTreeThrough(t, renaming)), true
}

func renameTree[N comparable](t enode.Tree[N], from, to slot.Slot) enode.Tree[N] {
	renaming := slot.NewSlotMap().MustInsert(from, to)
	return renameTreeThrough(t, renaming)
}

func renameTreeThrough[N comparable](t enode.Tree[N], renaming slot.SlotMap) enode.Tree[N] {
	apply := func(s slot.Slot) slot.Slot {
		if v, ok := renaming.Get(s); ok {
			return v
		}
		return s
	}
	if t.IsAtom() {
		call := t.Atom()
		newSubst := slot.NewSlotMap()
		for _, k := range call.Subst.Keys() {
			v, _ := call.Subst.Get(k)
			newSubst = newSubst.MustInsert(k, apply(v))
		}
		return enode.AtomTree[N, enode.EClassCall](enode.EClassCall{Ref: call.Ref, Subst: newSubst})
	}
	children := make([]enode.Tree[N], len(t.Children()))
	for i, c := range t.Children() {
		children[i] = renameTreeThrough(c, renaming)
	}
	return enode.NodeTree[N, enode.EClassCall](
		t.Op(),
		mapSlice(t.Defs(), apply),
		mapSlice(t.Uses(), apply),
		children...,
	)
}

func mapSlice(ss []slot.Slot, f func(slot.Slot) slot.Slot) []slot.Slot {
	out := make([]slot.Slot, len(ss))
	for i, s := range ss {
		out[i] = f(s)
	}
	return out
}

// BetaReductionRule builds the rule app(lam(x, lam(y, body)), arg) -> lam(y',
// body[x := arg]), the textbook capture-avoiding beta-reduction step: it
// composes FreshenBoundSlots and Substitute the way Substitute's doc comment
// describes, rather than baking lambda-calculus evaluation into the engine.
// lamOp's binder must be the sole slot a client's var nodes reference through
// Uses, and arg is restricted to a single free slot (a bare variable
// reference) since Substitute only ever renames one slot to another — a
// compound argument needs a client-level splicing applier this package does
// not provide.
func BetaReductionRule[N comparable](name string, appOp, lamOp N) Rule[N] {
	xDef, yDef := slot.Fresh(), slot.Fresh()
	bodyVar, argVar := enode.FreshVar(), enode.FreshVar()
	freshBodyVar, substVar := enode.FreshVar(), enode.FreshVar()

	lhs := enode.NodeTree[N, enode.PatternVar](appOp, nil, nil,
		enode.NodeTree[N, enode.PatternVar](lamOp, []slot.Slot{xDef}, nil,
			enode.NodeTree[N, enode.PatternVar](lamOp, []slot.Slot{yDef}, nil,
				enode.AtomTree[N, enode.PatternVar](bodyVar),
			),
		),
		enode.AtomTree[N, enode.PatternVar](argVar),
	)

	search := Filter(ToSearcher[N](lhs), func(match Match[N], g egraph.EGraphLike[N]) bool {
		argTree, ok := match.Bindings.Var(argVar)
		return ok && argTree.IsAtom() && argTree.Atom().FreeSlots().Len() == 1
	})

	apply := func(match Match[N], g egraph.EGraphLike[N]) (*CommandQueue[N], error) {
		m := match.Bindings
		root, err := g.ClassSig(match.Root)
		if err != nil {
			return nil, err
		}
		concreteX, ok := m.Slots().Get(xDef)
		if !ok {
			return nil, ErrUnboundVar
		}
		origY, ok := m.Slots().Get(yDef)
		if !ok {
			return nil, ErrUnboundVar
		}
		argTree, ok := m.Var(argVar)
		if !ok {
			return nil, ErrUnboundVar
		}
		argSlot := argTree.Atom().FreeSlots().Slice()[0]

		bodyBefore, ok := m.Var(bodyVar)
		if !ok {
			return nil, ErrUnboundVar
		}
		freeBefore := atomFreeSlots(bodyBefore)

		freshened, ok := FreshenBoundSlots(m, bodyVar, slot.NewSlotSet(origY), freshBodyVar)
		if !ok {
			return nil, ErrUnboundVar
		}
		bodyAfter, ok := freshened.Var(freshBodyVar)
		if !ok {
			return nil, ErrUnboundVar
		}

		// If body never mentioned y (the common case once the pattern has
		// already peeled y off as the inner binder), freshening it was a
		// no-op and the new binder only has to be disjoint from the
		// substituted result, for which any fresh slot will do. If body did
		// mention y, the rename above already moved it to whichever slot
		// now appears in bodyAfter that wasn't in bodyBefore, and the new
		// binder must reuse that exact slot to stay bound to it.
		newBinder := slot.Fresh()
		if introduced := atomFreeSlots(bodyAfter).Diff(freeBefore); introduced.Len() == 1 {
			newBinder = introduced.Slice()[0]
		}

		substituted, ok := Substitute(freshened, freshBodyVar, concreteX, argSlot, substVar)
		if !ok {
			return nil, ErrUnboundVar
		}
		resultBody, ok := substituted.Var(substVar)
		if !ok {
			return nil, ErrUnboundVar
		}

		tree := enode.NodeTree[N, enode.EClassCall](lamOp, []slot.Slot{newBinder}, nil, resultBody)

		q := NewQueue[N]()
		rootSym := q.Known(root)
		sym := q.Add(ToSymbolicTree[N](tree))
		q.UnionSymbols(sym, rootSym)
		return q, nil
	}

	return Rule[N]{Name: name, Search: search, Apply: apply}
}

func atomFreeSlots[N comparable](t enode.Tree[N]) slot.SlotSet {
	if !t.IsAtom() {
		return slot.Empty
	}
	return t.Atom().FreeSlots()
}
