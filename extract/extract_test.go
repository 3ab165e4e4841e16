package extract

import (
	"testing"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
	"github.com/stretchr/testify/require"
)

func leaf(op string) enode.ENode[string] {
	return enode.New(op, nil, nil)
}

// cost charges 1 for "a", 5 for "b", and 1 + sum(children) for anything
// else — cheap enough that a naive "first member" extraction would pick
// the wrong representative whenever a class already has both an "a" and a
// "b" member by the time the analysis is registered.
func cost(op string, _, _ []slot.Slot, children []int) int {
	switch op {
	case "a":
		return 1
	case "b":
		return 5
	default:
		total := 1
		for _, c := range children {
			total += c
		}
		return total
	}
}

func TestExtractPicksCheaperOfTwoPreExistingMembers(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(leaf("a"))
	callB, g := g.Add(leaf("b"))

	g = g.Union(callA, callB)
	g = g.Rebuild()
	require.Equal(t, 1, g.ClassCount())

	g = g.WithAnalysis(NewExtractionAnalysis("cost", cost))

	got, ok := Extract[string, int](egraph.AsLikeImmutable(g), "cost", callA.Ref)
	require.True(t, ok)
	require.Equal(t, "a", got.Op)
	require.Empty(t, got.Children)
}

func TestExtractComposesThroughParentNode(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(leaf("a"))
	callB, g := g.Add(leaf("b"))
	g = g.Union(callA, callB)
	g = g.Rebuild()

	// f's single argument class already holds both "a" and "b"; f must be
	// built from the cheaper one regardless of which member the e-graph
	// happened to store first.
	callF, g := g.Add(enode.New("f", nil, nil, callA))

	g = g.WithAnalysis(NewExtractionAnalysis("cost", cost))

	got, ok := Extract[string, int](egraph.AsLikeImmutable(g), "cost", callF.Ref)
	require.True(t, ok)
	require.Equal(t, "f", got.Op)
	require.Len(t, got.Children, 1)
	require.Equal(t, "a", got.Children[0].Op)
}

func TestExtractReportsFalseForUnregisteredAnalysis(t *testing.T) {
	g := egraph.New[string]()
	callA, g := g.Add(leaf("a"))

	_, ok := Extract[string, int](egraph.AsLikeImmutable(g), "cost", callA.Ref)
	require.False(t, ok)
}

func TestExtractOnMutableGraph(t *testing.T) {
	m := egraph.NewMutable[string]()
	callA, err := m.Add(leaf("a"))
	require.NoError(t, err)
	callB, err := m.Add(leaf("b"))
	require.NoError(t, err)

	require.NoError(t, m.Union(callA, callB))
	require.NoError(t, m.Rebuild())

	m.WithAnalysis(NewExtractionAnalysis("cost", cost))

	got, ok := Extract[string, int](egraph.AsLike(m), "cost", callA.Ref)
	require.True(t, ok)
	require.Equal(t, "a", got.Op)
}
