package enode

import (
	"testing"

	"github.com/katalvlaran/foresight/slot"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsOverlappingDefsUses(t *testing.T) {
	x := slot.Fresh()
	n := New[string]("lam", []slot.Slot{x}, []slot.Slot{x})
	require.ErrorIs(t, n.Validate(), ErrOverlappingDefsUses)
}

func TestFreeSlotsExcludesDefs(t *testing.T) {
	x, y := slot.Fresh(), slot.Fresh()
	// lam(x){ uses y } -- x is bound, y is free
	n := New[string]("lam", []slot.Slot{x}, []slot.Slot{y})
	free := n.FreeSlots()
	require.True(t, free.Contains(y))
	require.False(t, free.Contains(x))
}

func TestFreeSlotsPropagatesThroughArgs(t *testing.T) {
	x := slot.Fresh()
	child := EClassCall{Ref: RefFromID(1), Subst: slot.NewSlotMap().MustInsert(slot.Numeric(0), x)}
	n := New[string]("app", nil, nil, child)
	require.True(t, n.FreeSlots().Contains(x))
}

func TestShapeCallRoundTrip(t *testing.T) {
	x, y := slot.Fresh(), slot.Fresh()
	childCall := EClassCall{Ref: RefFromID(7), Subst: slot.NewSlotMap().MustInsert(slot.Numeric(0), y)}
	n := New[string]("lam", []slot.Slot{x}, []slot.Slot{y}, childCall)

	sc := n.AsShapeCall()
	require.True(t, sc.AsNode().Equal(n), "ShapeCall(shape,args).AsNode() must reproduce the original node")
}

func TestShapeCallDependsOnlyOnAlphaClass(t *testing.T) {
	x, y := slot.Fresh(), slot.Fresh()
	a := New[string]("lam", []slot.Slot{x}, nil)
	b := New[string]("lam", []slot.Slot{y}, nil)

	require.Equal(t, a.AsShapeCall().Key(), b.AsShapeCall().Key(),
		"two alpha-equivalent nodes must produce the same canonical key")
}

func TestShapeCallDistinguishesDifferentStructure(t *testing.T) {
	x := slot.Fresh()
	a := New[string]("lam", []slot.Slot{x}, nil)
	b := New[string]("lam", nil, []slot.Slot{x})

	require.NotEqual(t, a.AsShapeCall().Key(), b.AsShapeCall().Key())
}

func TestShapeIndicesFollowFirstOccurrenceOrder(t *testing.T) {
	y, z := slot.Fresh(), slot.Fresh()
	// uses y then z then y again (y reused): first-occurrence order is y, z.
	n := New[string]("f", nil, []slot.Slot{y, z, y})
	sc := n.AsShapeCall()
	require.Equal(t, 0, sc.Shape.Uses[0].Index())
	require.Equal(t, 1, sc.Shape.Uses[1].Index())
	require.Equal(t, 0, sc.Shape.Uses[2].Index(), "repeated slot must reuse its first index")
}
