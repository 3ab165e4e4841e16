package rewrite

import (
	"testing"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/stretchr/testify/require"
)

// commute rewrites add(X, Y) into add(Y, X), every X/Y pattern var bound to
// a fresh subtree (no slots involved), exercising ToSearcher/ToApplier and
// the command queue end to end.
func commuteRule() Rule[string] {
	x, y := enode.FreshVar(), enode.FreshVar()
	lhs := enode.NodeTree[string, enode.PatternVar]("add", nil, nil,
		enode.AtomTree[string, enode.PatternVar](x),
		enode.AtomTree[string, enode.PatternVar](y),
	)
	rhs := enode.NodeTree[string, enode.PatternVar]("add", nil, nil,
		enode.AtomTree[string, enode.PatternVar](y),
		enode.AtomTree[string, enode.PatternVar](x),
	)
	return Rule[string]{
		Name:   "commute-add",
		Search: ToSearcher[string](lhs),
		Apply:  ToApplier[string](rhs),
	}
}

func TestRuleRunProducesQueueThatUnifiesBothOrders(t *testing.T) {
	g := egraph.NewMutable[string]()
	a, err := g.Add(enode.New("a", nil, nil))
	require.NoError(t, err)
	b, err := g.Add(enode.New("b", nil, nil))
	require.NoError(t, err)
	addAB, err := g.Add(enode.New("add", nil, nil, a, b))
	require.NoError(t, err)

	q, err := commuteRule().Run(egraph.AsLike[string](g))
	require.NoError(t, err)

	changed, _, err := q.Apply(g)
	require.NoError(t, err)
	require.True(t, changed)

	addBA, ok, err := g.Find(enode.New("add", nil, nil, b, a))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, g.SameClass(addAB.Ref, addBA.Ref))
	require.NoError(t, g.CheckInvariants())
}

func TestCommandQueueOptimizeDedupsIdenticalAdds(t *testing.T) {
	q := NewQueue[string]()
	leaf := func() SymbolicTree[string] {
		return enode.NodeTree[string, symbolicAtom]("const", nil, nil)
	}
	s1 := q.Add(leaf())
	s2 := q.Add(leaf())
	q.UnionSymbols(s1, s2)
	q.Optimize()

	require.Len(t, q.adds, 1)
	require.Empty(t, q.unions)
}

func TestCommandQueueOptimizeDropsReflexiveUnion(t *testing.T) {
	q := NewQueue[string]()
	s := q.Add(enode.NodeTree[string, symbolicAtom]("const", nil, nil))
	q.UnionSymbols(s, s)
	q.Optimize()
	require.Empty(t, q.unions)
}
