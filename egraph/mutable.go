package egraph

import "github.com/katalvlaran/foresight/enode"

// Mutable is the in-place face of the slotted e-graph, for saturation loops
// that apply thousands of unions per iteration and cannot afford a clone per
// step. It shares core's algorithm with EGraph; Freeze hands back an
// immutable snapshot once a batch of mutation is done.
type Mutable[N comparable] struct {
	c *core[N]
}

// NewMutable returns an empty mutable e-graph.
func NewMutable[N comparable](opts ...Option) Mutable[N] {
	return Mutable[N]{c: newCore[N](opts...)}
}

// Add hash-conses node in place.
func (m Mutable[N]) Add(node enode.ENode[N]) (enode.EClassCall, error) {
	return m.c.addNode(node)
}

// AddTree hash-conses t in place, bottom-up.
func (m Mutable[N]) AddTree(t enode.Tree[N]) (enode.EClassCall, error) {
	return m.c.addTree(t)
}

// Find looks up node without adding it.
func (m Mutable[N]) Find(node enode.ENode[N]) (enode.EClassCall, bool, error) {
	return m.c.find(node)
}

// Union enqueues a as equal to b in place.
func (m Mutable[N]) Union(a, b enode.EClassCall) error {
	return m.c.union(a, b)
}

// Rebuild drains pending unions in place.
func (m Mutable[N]) Rebuild() error {
	return m.c.rebuild()
}

// RequiresRebuild reports whether unions are queued but not yet applied.
func (m Mutable[N]) RequiresRebuild() bool { return m.c.requiresRebuild() }

// NodesOf returns every member node known to denote ref's class.
func (m Mutable[N]) NodesOf(ref enode.EClassRef) ([]enode.ENode[N], error) {
	return m.c.nodesOf(ref)
}

// ClassRefs returns every canonical class ref currently live.
func (m Mutable[N]) ClassRefs() []enode.EClassRef { return m.c.classRefs() }

// ClassSig returns the identity EClassCall for ref, expressed in its class's
// own free-slot signature — the call a searcher roots its matching at.
func (m Mutable[N]) ClassSig(ref enode.EClassRef) (enode.EClassCall, error) {
	return m.c.classSig(ref)
}

// ClassCount reports the number of live classes.
func (m Mutable[N]) ClassCount() int { return m.c.classCount() }

// SameClass reports whether a and b currently resolve to the same class.
func (m Mutable[N]) SameClass(a, b enode.EClassRef) bool { return m.c.areSame(a, b) }

// CheckInvariants validates hash-cons bijectivity, live-ref reachability,
// slot-signature consistency, parent completeness and the absence of
// pending unions, returning ErrInvariantViolation if any fail. It is meant
// for debug and test builds, not hot loops.
func (m Mutable[N]) CheckInvariants() error { return m.c.checkInvariants() }

// WithAnalysis registers a in place.
func (m Mutable[N]) WithAnalysis(a Analysis[N]) {
	m.c.registerAnalysis(a)
}

// AnalysisValue returns the value a's Name computed for ref's class.
func (m Mutable[N]) AnalysisValue(name string, ref enode.EClassRef) (any, bool) {
	id, ok := m.c.tryCanonicalize(ref)
	if !ok {
		return nil, false
	}
	return m.c.analysisValue(name, id.ID())
}

// Freeze snapshots m into an immutable EGraph. Further mutation of m does
// not affect the returned value or vice versa, since core.clone performs a
// deep copy of the arena.
func (m Mutable[N]) Freeze() EGraph[N] {
	return EGraph[N]{c: m.c.clone()}
}
