package rewrite

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	pkgerrors "github.com/pkg/errors"
)

// Symbol names an e-class that a CommandQueue may not have realized yet:
// either the result of a still-pending AddCommand, or a class already known
// before the queue started (typically a match's root, threaded in via
// Known so it can be unioned against freshly added symbolic trees).
type Symbol struct{ id uuid.UUID }

// NewSymbol allocates a fresh, queue-local symbolic identifier.
func NewSymbol() Symbol { return Symbol{id: uuid.New()} }

// symbolicAtom is either an already-realized call or a forward reference to
// another command in the same queue.
type symbolicAtom struct {
	known bool
	call  enode.EClassCall
	sym   Symbol
}

// SymbolicTree is a Tree whose leaves may still be symbolic. AddCommand
// carries one of these rather than a concrete enode.Tree so an applier can
// reference the output of another AddCommand in the same batch before
// either has actually been realized against the e-graph.
type SymbolicTree[N comparable] = enode.MixedTree[N, symbolicAtom]

// KnownLeaf wraps an already-realized call as a SymbolicTree leaf.
func KnownLeaf[N comparable](call enode.EClassCall) SymbolicTree[N] {
	return enode.AtomTree[N, symbolicAtom](symbolicAtom{known: true, call: call})
}

// SymbolLeaf wraps a forward reference to sym as a SymbolicTree leaf.
func SymbolLeaf[N comparable](sym Symbol) SymbolicTree[N] {
	return enode.AtomTree[N, symbolicAtom](symbolicAtom{sym: sym})
}

// ToSymbolicTree lifts a fully concrete tree into a SymbolicTree with no
// forward references, for appliers that built a tree directly from a
// match's bindings.
func ToSymbolicTree[N comparable](t enode.Tree[N]) SymbolicTree[N] {
	return enode.MapAtoms(t, func(c enode.EClassCall) symbolicAtom {
		return symbolicAtom{known: true, call: c}
	})
}

type addCommand[N comparable] struct {
	sym  Symbol
	tree SymbolicTree[N]
}

type unionPair struct{ a, b Symbol }

// CommandQueue accumulates the Add and UnionMany commands an applier
// produces for a single match, deferring realization until Apply runs them
// against a concrete e-graph. Building the queue never touches the
// e-graph: Symbol identities stand in for classes that don't exist yet.
type CommandQueue[N comparable] struct {
	known  map[Symbol]enode.EClassCall
	adds   []addCommand[N]
	unions []unionPair
}

// NewQueue returns an empty command queue.
func NewQueue[N comparable]() *CommandQueue[N] {
	return &CommandQueue[N]{known: map[Symbol]enode.EClassCall{}}
}

// Known registers call under a fresh symbol, for referencing an
// already-realized class (a match's root, typically) from UnionSymbols.
func (q *CommandQueue[N]) Known(call enode.EClassCall) Symbol {
	sym := NewSymbol()
	q.known[sym] = call
	return sym
}

// Add queues tree for realization, returning the symbol its result will be
// bound to once Apply runs.
func (q *CommandQueue[N]) Add(tree SymbolicTree[N]) Symbol {
	sym := NewSymbol()
	q.adds = append(q.adds, addCommand[N]{sym: sym, tree: tree})
	return sym
}

// UnionSymbols queues a union between whatever a and b realize to.
func (q *CommandQueue[N]) UnionSymbols(a, b Symbol) {
	q.unions = append(q.unions, unionPair{a: a, b: b})
}

// Absorb appends other's commands onto q, for a rule folding together the
// queues produced by applying the same applier to every one of its matches.
func (q *CommandQueue[N]) Absorb(other *CommandQueue[N]) {
	if other == nil {
		return
	}
	for k, v := range other.known {
		q.known[k] = v
	}
	q.adds = append(q.adds, other.adds...)
	q.unions = append(q.unions, other.unions...)
}

// Optimize coalesces the queue in place: adds whose symbolic tree is
// structurally identical to an earlier one are dropped and their symbol
// aliased to the earlier add's, and union pairs that are trivially
// reflexive or duplicate another pair (after alias resolution) are
// removed. It never touches the e-graph, so "identical" means identical up
// to the symbols and calls already in the queue, not up to hash-consing.
func (q *CommandQueue[N]) Optimize() {
	alias := map[Symbol]Symbol{}
	resolve := func(s Symbol) Symbol {
		for {
			if next, ok := alias[s]; ok {
				s = next
				continue
			}
			return s
		}
	}

	seen := map[string]Symbol{}
	kept := q.adds[:0]
	for _, a := range q.adds {
		key := symbolicTreeKey(a.tree, resolve)
		if existing, ok := seen[key]; ok {
			alias[a.sym] = existing
			continue
		}
		seen[key] = a.sym
		kept = append(kept, a)
	}
	q.adds = kept
	for i := range q.adds {
		q.adds[i].tree = resolveSymbolicTree(q.adds[i].tree, resolve)
	}

	pairSeen := map[string]struct{}{}
	unions := q.unions[:0]
	for _, p := range q.unions {
		a, b := resolve(p.a), resolve(p.b)
		if a == b {
			continue
		}
		key := a.id.String() + "|" + b.id.String()
		altKey := b.id.String() + "|" + a.id.String()
		if _, ok := pairSeen[key]; ok {
			continue
		}
		if _, ok := pairSeen[altKey]; ok {
			continue
		}
		pairSeen[key] = struct{}{}
		unions = append(unions, unionPair{a: a, b: b})
	}
	q.unions = unions
}

func resolveSymbolicTree[N comparable](t SymbolicTree[N], resolve func(Symbol) Symbol) SymbolicTree[N] {
	return enode.MapAtoms(t, func(a symbolicAtom) symbolicAtom {
		if a.known {
			return a
		}
		return symbolicAtom{sym: resolve(a.sym)}
	})
}

func symbolicTreeKey[N comparable](t SymbolicTree[N], resolve func(Symbol) Symbol) string {
	if t.IsAtom() {
		a := t.Atom()
		if a.known {
			key := "c:" + a.call.Ref.String()
			for _, k := range a.call.Subst.Keys() {
				v, _ := a.call.Subst.Get(k)
				key += "," + k.String() + "=" + v.String()
			}
			return key
		}
		return "s:" + resolve(a.sym).id.String()
	}
	key := fmt.Sprintf("n:%v", t.Op())
	for _, c := range t.Children() {
		key += "(" + symbolicTreeKey(c, resolve) + ")"
	}
	return key
}

// Apply realizes every queued command against g, in topological order
// (children before parents, via memoized recursion), then runs every
// queued union through a single rebuild. It reports whether the e-graph
// actually changed: a node that didn't already exist was added, or a union
// merged two classes that weren't already congruent.
func (q *CommandQueue[N]) Apply(g egraph.Mutable[N]) (bool, map[Symbol]enode.EClassCall, error) {
	realized := make(map[Symbol]enode.EClassCall, len(q.known)+len(q.adds))
	for k, v := range q.known {
		realized[k] = v
	}
	bySym := make(map[Symbol]addCommand[N], len(q.adds))
	for _, a := range q.adds {
		bySym[a.sym] = a
	}

	changed := false
	var realize func(sym Symbol) (enode.EClassCall, error)
	realize = func(sym Symbol) (call enode.EClassCall, err error) {
		if call, ok := realized[sym]; ok {
			return call, nil
		}
		a, ok := bySym[sym]
		if !ok {
			return enode.EClassCall{}, ErrUnknownSymbol
		}
		before := g.ClassCount()
		defer func() {
			if r := recover(); r != nil {
				if rerr, ok := r.(error); ok {
					err = rerr
					return
				}
				panic(r)
			}
		}()
		concrete := enode.MapAtoms(a.tree, func(at symbolicAtom) enode.EClassCall {
			if at.known {
				return at.call
			}
			c, err := realize(at.sym)
			if err != nil {
				panic(err)
			}
			return c
		})
		call, err = g.AddTree(concrete)
		if err != nil {
			return enode.EClassCall{}, pkgerrors.Wrap(err, "realize add command")
		}
		if g.ClassCount() != before {
			changed = true
		}
		realized[sym] = call
		return call, nil
	}

	for _, a := range q.adds {
		if _, err := realize(a.sym); err != nil {
			return false, nil, err
		}
	}
	for _, p := range q.unions {
		a, err := realize(p.a)
		if err != nil {
			return false, nil, err
		}
		b, err := realize(p.b)
		if err != nil {
			return false, nil, err
		}
		if !g.SameClass(a.Ref, b.Ref) {
			changed = true
		}
		if err := g.Union(a, b); err != nil {
			return false, nil, pkgerrors.Wrap(err, "union command")
		}
	}
	if len(q.unions) > 0 {
		if err := g.Rebuild(); err != nil {
			return false, nil, pkgerrors.Wrap(err, "rebuild after command queue")
		}
	}
	return changed, realized, nil
}
