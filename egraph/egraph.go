package egraph

import (
	"github.com/katalvlaran/foresight/enode"
)

// EGraph is the immutable face of the slotted e-graph: Add and Union return
// a new value and never modify the receiver, the way core.Graph's
// immutable methods return a fresh graph rather than mutate in place.
// A value with a non-empty pending-union queue is an
// EGraphWithPendingUnions in spirit; call Rebuild before trusting Find or
// iterating classes.
type EGraph[N comparable] struct {
	c *core[N]
}

// New returns an empty e-graph.
func New[N comparable](opts ...Option) EGraph[N] {
	return EGraph[N]{c: newCore[N](opts...)}
}

// Add hash-conses node, returning the call through which it is now
// reachable and a new e-graph reflecting the change. Add panics if node
// fails validation (its defs and uses overlap): this is a precondition
// violation with no error channel in the immutable API, per the package's
// fatal-on-corruption policy.
func (g EGraph[N]) Add(node enode.ENode[N]) (enode.EClassCall, EGraph[N]) {
	next := g.c.clone()
	call, err := next.addNode(node)
	if err != nil {
		panic(err)
	}
	return call, EGraph[N]{c: next}
}

// AddTree hash-conses every node of t bottom-up.
func (g EGraph[N]) AddTree(t enode.Tree[N]) (enode.EClassCall, EGraph[N]) {
	next := g.c.clone()
	call, err := next.addTree(t)
	if err != nil {
		panic(err)
	}
	return call, EGraph[N]{c: next}
}

// Find looks up node without adding it.
func (g EGraph[N]) Find(node enode.ENode[N]) (enode.EClassCall, bool) {
	call, ok, err := g.c.find(node)
	if err != nil {
		panic(err)
	}
	return call, ok
}

// Union enqueues a as equal to b and returns the graph with the union
// pending; Rebuild must be called before the merge is visible to Find,
// NodesOf or pattern matching.
func (g EGraph[N]) Union(a, b enode.EClassCall) EGraph[N] {
	next := g.c.clone()
	if err := next.union(a, b); err != nil {
		panic(err)
	}
	return EGraph[N]{c: next}
}

// Rebuild drains pending unions to a fixpoint, restoring congruence.
func (g EGraph[N]) Rebuild() EGraph[N] {
	next := g.c.clone()
	if err := next.rebuild(); err != nil {
		panic(err)
	}
	return EGraph[N]{c: next}
}

// RequiresRebuild reports whether unions are queued but not yet applied.
func (g EGraph[N]) RequiresRebuild() bool { return g.c.requiresRebuild() }

// NodesOf returns every member node known to denote ref's class.
func (g EGraph[N]) NodesOf(ref enode.EClassRef) ([]enode.ENode[N], error) {
	return g.c.nodesOf(ref)
}

// ClassRefs returns every canonical class ref currently live.
func (g EGraph[N]) ClassRefs() []enode.EClassRef { return g.c.classRefs() }

// ClassSig returns the identity EClassCall for ref, expressed in its class's
// own free-slot signature — the call a searcher roots its matching at.
func (g EGraph[N]) ClassSig(ref enode.EClassRef) (enode.EClassCall, error) {
	return g.c.classSig(ref)
}

// ClassCount reports the number of live classes.
func (g EGraph[N]) ClassCount() int { return g.c.classCount() }

// SameClass reports whether a and b currently resolve to the same class.
func (g EGraph[N]) SameClass(a, b enode.EClassRef) bool { return g.c.areSame(a, b) }

// CheckInvariants validates hash-cons bijectivity, live-ref reachability,
// slot-signature consistency, parent completeness and the absence of
// pending unions, returning ErrInvariantViolation if any fail. It is meant
// for debug and test builds, not hot loops.
func (g EGraph[N]) CheckInvariants() error { return g.c.checkInvariants() }

// WithAnalysis returns a graph with a registered, seeding values for every
// class already present.
func (g EGraph[N]) WithAnalysis(a Analysis[N]) EGraph[N] {
	next := g.c.clone()
	next.registerAnalysis(a)
	return EGraph[N]{c: next}
}

// AnalysisValue returns the value a's Name computed for ref's class.
func (g EGraph[N]) AnalysisValue(name string, ref enode.EClassRef) (any, bool) {
	id, ok := g.c.tryCanonicalize(ref)
	if !ok {
		return nil, false
	}
	return g.c.analysisValue(name, id.ID())
}

// Mutable returns an in-place copy of g for hot loops that would otherwise
// pay clone-per-step cost; Freeze on the result snapshots it back.
func (g EGraph[N]) Mutable() Mutable[N] {
	return Mutable[N]{c: g.c.clone()}
}
