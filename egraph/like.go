package egraph

import "github.com/katalvlaran/foresight/enode"

// EGraphLike is the capability both EGraph and Mutable expose through an
// error-returning surface, letting the pattern matcher, the rewrite command
// queue and the saturation strategies operate over either face without
// caring which one a caller picked. EGraph's Find never returns an error
// (it panics on the precondition violations the interface threads through
// as errors) but implementing the same signature lets both faces satisfy it.
type EGraphLike[N comparable] interface {
	Find(node enode.ENode[N]) (enode.EClassCall, bool, error)
	NodesOf(ref enode.EClassRef) ([]enode.ENode[N], error)
	ClassRefs() []enode.EClassRef
	ClassSig(ref enode.EClassRef) (enode.EClassCall, error)
	SameClass(a, b enode.EClassRef) bool
	AnalysisValue(name string, ref enode.EClassRef) (any, bool)
}

type mutableAdapter[N comparable] struct{ m Mutable[N] }

func (a mutableAdapter[N]) Find(n enode.ENode[N]) (enode.EClassCall, bool, error) {
	return a.m.Find(n)
}
func (a mutableAdapter[N]) NodesOf(ref enode.EClassRef) ([]enode.ENode[N], error) {
	return a.m.NodesOf(ref)
}
func (a mutableAdapter[N]) ClassRefs() []enode.EClassRef { return a.m.ClassRefs() }
func (a mutableAdapter[N]) ClassSig(ref enode.EClassRef) (enode.EClassCall, error) {
	return a.m.ClassSig(ref)
}
func (a mutableAdapter[N]) SameClass(x, y enode.EClassRef) bool {
	return a.m.SameClass(x, y)
}
func (a mutableAdapter[N]) AnalysisValue(name string, ref enode.EClassRef) (any, bool) {
	return a.m.AnalysisValue(name, ref)
}

// AsLike adapts m to EGraphLike for code that is agnostic to which facade
// produced it (the pattern matching VM in particular: it only ever reads).
func AsLike[N comparable](m Mutable[N]) EGraphLike[N] { return mutableAdapter[N]{m: m} }

type egraphAdapter[N comparable] struct{ g EGraph[N] }

func (a egraphAdapter[N]) Find(n enode.ENode[N]) (enode.EClassCall, bool, error) {
	call, ok := a.g.Find(n)
	return call, ok, nil
}
func (a egraphAdapter[N]) NodesOf(ref enode.EClassRef) ([]enode.ENode[N], error) {
	return a.g.NodesOf(ref)
}
func (a egraphAdapter[N]) ClassRefs() []enode.EClassRef { return a.g.ClassRefs() }
func (a egraphAdapter[N]) ClassSig(ref enode.EClassRef) (enode.EClassCall, error) {
	return a.g.ClassSig(ref)
}
func (a egraphAdapter[N]) SameClass(x, y enode.EClassRef) bool {
	return a.g.SameClass(x, y)
}
func (a egraphAdapter[N]) AnalysisValue(name string, ref enode.EClassRef) (any, bool) {
	return a.g.AnalysisValue(name, ref)
}

// AsLikeImmutable adapts g to EGraphLike.
func AsLikeImmutable[N comparable](g EGraph[N]) EGraphLike[N] { return egraphAdapter[N]{g: g} }
