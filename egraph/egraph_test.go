package egraph

import (
	"testing"

	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
	"github.com/stretchr/testify/require"
)

func leaf(op string) enode.ENode[string] {
	return enode.New(op, nil, nil)
}

func TestAddIsIdempotentUpToHashCons(t *testing.T) {
	g := New[string]()
	call1, g := g.Add(leaf("a"))
	call2, g := g.Add(leaf("a"))

	require.Equal(t, call1.Ref, call2.Ref)
	require.Equal(t, 1, g.ClassCount())
}

func TestUnionOfLeavesMergesAfterRebuild(t *testing.T) {
	g := New[string]()
	callA, g := g.Add(leaf("a"))
	callB, g := g.Add(leaf("b"))
	require.False(t, g.SameClass(callA.Ref, callB.Ref))

	g = g.Union(callA, callB)
	require.True(t, g.RequiresRebuild())

	g = g.Rebuild()
	require.False(t, g.RequiresRebuild())
	require.True(t, g.SameClass(callA.Ref, callB.Ref))
	require.Equal(t, 1, g.ClassCount())
	require.NoError(t, g.CheckInvariants())
}

func TestCongruenceClosureMergesParentsUpward(t *testing.T) {
	g := New[string]()
	callA, g := g.Add(leaf("a"))
	callB, g := g.Add(leaf("b"))

	fa := enode.New("f", nil, nil, callA)
	fb := enode.New("f", nil, nil, callB)

	callFA, g := g.Add(fa)
	callFB, g := g.Add(fb)
	require.False(t, g.SameClass(callFA.Ref, callFB.Ref))

	g = g.Union(callA, callB)
	g = g.Rebuild()

	require.True(t, g.SameClass(callA.Ref, callB.Ref))
	require.True(t, g.SameClass(callFA.Ref, callFB.Ref), "f(a) and f(b) must merge once a=b is known")

	lookupFA, ok := g.Find(fa)
	require.True(t, ok)
	require.True(t, g.SameClass(lookupFA.Ref, callFB.Ref))
	require.NoError(t, g.CheckInvariants())
}

// Same setup as above but f(x) and g(y) are distinct operators wrapping
// the unmerged leaves: unioning a=b must not pull f(a) and g(b) together,
// since congruence only ever merges same-operator parents.
func TestCongruenceClosureDoesNotMergeDistinctOperatorParents(t *testing.T) {
	g := New[string]()
	callA, g := g.Add(leaf("a"))
	callB, g := g.Add(leaf("b"))

	fa := enode.New("f", nil, nil, callA)
	gb := enode.New("g", nil, nil, callB)

	callFA, g := g.Add(fa)
	callGB, g := g.Add(gb)

	g = g.Union(callA, callB)
	g = g.Rebuild()

	require.True(t, g.SameClass(callA.Ref, callB.Ref))
	require.False(t, g.SameClass(callFA.Ref, callGB.Ref), "f(a) and g(b) share no operator and must not merge")
	require.Equal(t, 3, g.ClassCount(), "a/b merge to one class; f(a) and g(b) remain distinct classes")
	require.NoError(t, g.CheckInvariants())
}

func TestOpenLeavesWithDifferentFreeSlotsShareOneClass(t *testing.T) {
	g := New[string]()
	x, y := slot.Fresh(), slot.Fresh()

	callX, g := g.Add(enode.New("var", nil, []slot.Slot{x}))
	callY, g := g.Add(enode.New("var", nil, []slot.Slot{y}))

	require.Equal(t, callX.Ref, callY.Ref, "var(x) and var(y) are alpha-equivalent and must hash-cons to one class")
	require.Equal(t, 1, g.ClassCount())

	vx, ok := callX.Subst.Get(slot.Numeric(0))
	require.True(t, ok)
	require.True(t, vx.Equal(x))

	vy, ok := callY.Subst.Get(slot.Numeric(0))
	require.True(t, ok)
	require.True(t, vy.Equal(y))
}

func TestUnionWithSelfIsNoop(t *testing.T) {
	g := New[string]()
	call, g := g.Add(leaf("a"))
	g = g.Union(call, call)
	g = g.Rebuild()
	require.Equal(t, 1, g.ClassCount())
	require.NoError(t, g.CheckInvariants())
}

func TestAddTreeBuildsBottomUp(t *testing.T) {
	g := New[string]()
	leafCall, g := g.Add(leaf("zero"))
	tree := enode.NodeTree[string, enode.EClassCall]("succ", nil, nil, enode.AtomTree[string, enode.EClassCall](leafCall))

	call, g := g.AddTree(tree)
	require.Equal(t, 2, g.ClassCount())

	nodes, err := g.NodesOf(call.Ref)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	require.Equal(t, "succ", nodes[0].Op)
}

type constAnalysis struct{}

func (constAnalysis) Name() string { return "const" }
func (constAnalysis) Make(op string, _, _ []slot.Slot, args []any) any {
	if op == "one" {
		return 1
	}
	return nil
}
func (constAnalysis) Join(a, b any) (any, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if a != b {
		return nil, ErrAnalysisContradiction
	}
	return a, nil
}

func TestAnalysisValuePropagatesAndJoins(t *testing.T) {
	g := New[string]()
	g = g.WithAnalysis(constAnalysis{})

	call, g := g.Add(leaf("one"))
	v, ok := g.AnalysisValue("const", call.Ref)
	require.True(t, ok)
	require.Equal(t, 1, v)

	other, g := g.Add(leaf("other"))
	g = g.Union(call, other)
	g = g.Rebuild()

	v, ok = g.AnalysisValue("const", call.Ref)
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.NoError(t, g.CheckInvariants())
}

func TestCheckInvariantsFailsOnUnrebuiltGraph(t *testing.T) {
	g := New[string]()
	callA, g := g.Add(leaf("a"))
	callB, g := g.Add(leaf("b"))
	g = g.Union(callA, callB)

	require.ErrorIs(t, g.CheckInvariants(), ErrInvariantViolation)
}
