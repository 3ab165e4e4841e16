package strategy

import (
	"testing"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/rewrite"
	"github.com/stretchr/testify/require"
)

func TestRepeatUntilStableStopsOnNoChange(t *testing.T) {
	g := egraph.NewMutable[string]()
	calls := 0
	s := Strategy[string, int](func(g egraph.Mutable[string], d int, pm ParallelMap) (Result[string, int], error) {
		calls++
		return Result[string, int]{Graph: g, Data: d, Changed: calls < 3}, nil
	})

	res, err := RepeatUntilStable[string, int](s)(g, 0, Sequential{})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.True(t, res.Changed)
}

func TestRepeatUntilStableHonorsIterationLimit(t *testing.T) {
	g := egraph.NewMutable[string]()
	calls := 0
	s := Strategy[string, int](func(g egraph.Mutable[string], d int, pm ParallelMap) (Result[string, int], error) {
		calls++
		return Result[string, int]{Graph: g, Data: d, Changed: true}, nil
	})

	res, err := RepeatUntilStable[string, int](s, WithIterationLimit(2))(g, 0, Sequential{})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.True(t, res.Changed)
}

func TestRepeatUntilStableWithStateThreadsAccumulator(t *testing.T) {
	g := egraph.NewMutable[string]()
	s := Strategy[string, int](func(g egraph.Mutable[string], d int, pm ParallelMap) (Result[string, int], error) {
		nd := d + 1
		return Result[string, int]{Graph: g, Data: nd, Changed: nd < 4}, nil
	})

	res, err := RepeatUntilStableWithState[string, int](s)(g, 0, Sequential{})
	require.NoError(t, err)
	require.Equal(t, 4, res.Data)
	require.True(t, res.Changed)
}

func TestBetweenIterationsRunsOtherOneFewerTimeThanS(t *testing.T) {
	g := egraph.NewMutable[string]()
	betweenCalls := 0
	alwaysChanged := Strategy[string, int](func(g egraph.Mutable[string], d int, pm ParallelMap) (Result[string, int], error) {
		return Result[string, int]{Graph: g, Data: d, Changed: true}, nil
	})
	other := Strategy[string, int](func(g egraph.Mutable[string], d int, pm ParallelMap) (Result[string, int], error) {
		betweenCalls++
		return Result[string, int]{Graph: g, Data: d, Changed: false}, nil
	})

	res, err := BetweenIterations[string, int](alwaysChanged, other, WithIterationLimit(3))(g, 0, Sequential{})
	require.NoError(t, err)
	require.Equal(t, 2, betweenCalls)
	require.True(t, res.Changed)
}

func TestMaximalRuleApplicationConvergesUnderRepeatUntilStable(t *testing.T) {
	g := egraph.NewMutable[string]()
	_, err := g.Add(enode.New("zero", nil, nil))
	require.NoError(t, err)

	lhs := enode.NodeTree[string, enode.PatternVar]("zero", nil, nil)
	rhs := enode.NodeTree[string, enode.PatternVar]("one", nil, nil)
	rule := rewrite.Rule[string]{
		Name:   "zero-to-one",
		Search: rewrite.ToSearcher[string](lhs),
		Apply:  rewrite.ToApplier[string](rhs),
	}

	sat := RepeatUntilStable[string, struct{}](MaximalRuleApplication[string]([]rewrite.Rule[string]{rule}))
	res, err := sat(g, struct{}{}, Sequential{})
	require.NoError(t, err)
	require.True(t, res.Changed)

	one, ok, err := g.Find(enode.New("one", nil, nil))
	require.NoError(t, err)
	require.True(t, ok)
	zero, ok, err := g.Find(enode.New("zero", nil, nil))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, g.SameClass(one.Ref, zero.Ref))
}

func TestMaximalRuleApplicationWithCachingSkipsReappliedMatch(t *testing.T) {
	g := egraph.NewMutable[string]()
	_, err := g.Add(enode.New("zero", nil, nil))
	require.NoError(t, err)

	lhs := enode.NodeTree[string, enode.PatternVar]("zero", nil, nil)
	rhs := enode.NodeTree[string, enode.PatternVar]("one", nil, nil)
	rule := rewrite.Rule[string]{
		Name:   "zero-to-one",
		Search: rewrite.ToSearcher[string](lhs),
		Apply:  rewrite.ToApplier[string](rhs),
	}

	sat := RepeatUntilStableWithState[string, *MatchCache](MaximalRuleApplicationWithCaching[string]([]rewrite.Rule[string]{rule}))
	res, err := sat(g, NewMatchCache(), Sequential{})
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.NotNil(t, res.Data)
}
