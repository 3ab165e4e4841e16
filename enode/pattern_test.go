package enode

import (
	"testing"

	"github.com/katalvlaran/foresight/slot"
	"github.com/stretchr/testify/require"
)

func TestPatternVarsAreDistinct(t *testing.T) {
	a, b := FreshVar(), FreshVar()
	require.False(t, a.Equal(b))
	require.True(t, a.Equal(a))
}

func TestPatternMatchBindAndLookup(t *testing.T) {
	v := FreshVar()
	leaf := AtomTree[string, EClassCall](EClassCall{Ref: RefFromID(3)})

	m := NewPatternMatch[string]().BindVar(v, leaf)
	got, ok := m.Var(v)
	require.True(t, ok)
	require.Equal(t, RefFromID(3), got.Atom().Ref)

	_, ok = m.Var(FreshVar())
	require.False(t, ok)
}

func TestPatternMatchMergePrefersReceiver(t *testing.T) {
	v := FreshVar()
	left := NewPatternMatch[string]().BindVar(v, AtomTree[string, EClassCall](EClassCall{Ref: RefFromID(1)}))
	right := NewPatternMatch[string]().BindVar(v, AtomTree[string, EClassCall](EClassCall{Ref: RefFromID(2)}))

	merged := left.Merge(right)
	got, _ := merged.Var(v)
	require.Equal(t, RefFromID(1), got.Atom().Ref, "Merge must keep the receiver's binding on conflict")
}

func TestPatternMatchSlotBindings(t *testing.T) {
	k, v := slot.Numeric(0), slot.Fresh()
	m := NewPatternMatch[string]().BindSlot(k, v)
	got, ok := m.Slots().Get(k)
	require.True(t, ok)
	require.True(t, got.Equal(v))
}
