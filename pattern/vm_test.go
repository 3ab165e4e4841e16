package pattern

import (
	"testing"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/stretchr/testify/require"
)

func TestMatchSingleVarBindsRoot(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(enode.New("a", nil, nil))

	v := enode.FreshVar()
	p := enode.AtomTree[string, enode.PatternVar](v)
	prog := Compile(p)

	matches, err := Match(prog, egraph.AsLikeImmutable(g), callA)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	bound, ok := matches[0].Var(v)
	require.True(t, ok)
	require.True(t, bound.IsAtom())
	require.Equal(t, callA, bound.Atom())
}

func TestMatchBindNodeWithChild(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(enode.New("a", nil, nil))
	callFA, g := g.Add(enode.New("f", nil, nil, callA))

	v := enode.FreshVar()
	p := enode.NodeTree[string, enode.PatternVar]("f", nil, nil, enode.AtomTree[string, enode.PatternVar](v))
	prog := Compile(p)

	matches, err := Match(prog, egraph.AsLikeImmutable(g), callFA)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	bound, ok := matches[0].Var(v)
	require.True(t, ok)
	require.Equal(t, callA, bound.Atom())
}

func TestMatchRepeatedVarEnforcesEquality(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(enode.New("a", nil, nil))
	callB, g := g.Add(enode.New("b", nil, nil))
	callPairAA, g := g.Add(enode.New("pair", nil, nil, callA, callA))
	callPairAB, g := g.Add(enode.New("pair", nil, nil, callA, callB))

	v := enode.FreshVar()
	leaf := enode.AtomTree[string, enode.PatternVar](v)
	p := enode.NodeTree[string, enode.PatternVar]("pair", nil, nil, leaf, leaf)
	prog := Compile(p)

	matches, err := Match(prog, egraph.AsLikeImmutable(g), callPairAA)
	require.NoError(t, err)
	require.Len(t, matches, 1)

	matches, err = Match(prog, egraph.AsLikeImmutable(g), callPairAB)
	require.NoError(t, err)
	require.Len(t, matches, 0)
}

func TestMatchWrongOperatorFails(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(enode.New("a", nil, nil))
	_, g = g.Add(enode.New("f", nil, nil, callA))
	callGA, g := g.Add(enode.New("g", nil, nil, callA))

	v := enode.FreshVar()
	p := enode.NodeTree[string, enode.PatternVar]("f", nil, nil, enode.AtomTree[string, enode.PatternVar](v))
	prog := Compile(p)

	matches, err := Match(prog, egraph.AsLikeImmutable(g), callGA)
	require.NoError(t, err)
	require.Len(t, matches, 0)
}
