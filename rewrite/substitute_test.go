package rewrite

import (
	"testing"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
	"github.com/stretchr/testify/require"
)

// TestBetaReductionRuleAvoidsCapture builds app(lam(x, lam(y, var(x))), var(y))
// and runs it through BetaReductionRule, checking the result is lam(y', var(y))
// for some y' distinct from y, rather than the wrong, captured identity shape
// lam(z, var(z)) an applier that reused y as the new binder would produce.
func TestBetaReductionRuleAvoidsCapture(t *testing.T) {
	g := egraph.NewMutable[string]()
	x, y := slot.Fresh(), slot.Fresh()

	callVarX, err := g.Add(enode.New("var", nil, []slot.Slot{x}))
	require.NoError(t, err)
	callVarY, err := g.Add(enode.New("var", nil, []slot.Slot{y}))
	require.NoError(t, err)

	callInnerLam, err := g.Add(enode.New("lam", []slot.Slot{y}, nil, callVarX))
	require.NoError(t, err)
	callOuterLam, err := g.Add(enode.New("lam", []slot.Slot{x}, nil, callInnerLam))
	require.NoError(t, err)
	callApp, err := g.Add(enode.New("app", nil, nil, callOuterLam, callVarY))
	require.NoError(t, err)

	rule := BetaReductionRule[string]("beta", "app", "lam")
	q, err := rule.Run(egraph.AsLike[string](g))
	require.NoError(t, err)

	changed, _, err := q.Apply(g)
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, g.CheckInvariants())

	wantLam := enode.New("lam", []slot.Slot{slot.Fresh()}, nil, callVarY)
	wantCall, ok, err := g.Find(wantLam)
	require.NoError(t, err)
	require.True(t, ok, "lam(y', var(y)) must already be hash-consed by the rule's output")
	require.True(t, g.SameClass(wantCall.Ref, callApp.Ref))

	capturedLam := enode.New("lam", []slot.Slot{x}, nil, callVarX)
	capturedCall, ok, err := g.Find(capturedLam)
	if ok {
		require.False(t, g.SameClass(capturedCall.Ref, callApp.Ref), "identity-shaped lam(z, var(z)) must not be what app reduced to")
	}
}
