package slot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotMapInsertGet(t *testing.T) {
	a, b := Numeric(0), Numeric(1)
	m := NewSlotMap()
	m, err := m.Insert(a, b)
	require.NoError(t, err)

	v, ok := m.Get(a)
	require.True(t, ok)
	require.True(t, v.Equal(b))

	_, ok = m.Get(b)
	require.False(t, ok, "b was never used as a key")
}

func TestSlotMapInsertRejectsDuplicateKey(t *testing.T) {
	a, b, c := Numeric(0), Numeric(1), Numeric(2)
	m := NewSlotMap().MustInsert(a, b)
	_, err := m.Insert(a, c)
	require.True(t, errors.Is(err, ErrDuplicateKey))
}

func TestSlotMapIsBijectionIsPermutation(t *testing.T) {
	a, b, c, d := Numeric(0), Numeric(1), Numeric(2), Numeric(3)

	injective := NewSlotMap().MustInsert(a, c).MustInsert(b, d)
	require.True(t, injective.IsBijection())
	require.False(t, injective.IsPermutation(), "domain {a,b} != codomain {c,d}")

	perm := NewSlotMap().MustInsert(a, b).MustInsert(b, a)
	require.True(t, perm.IsBijection())
	require.True(t, perm.IsPermutation())

	collapsing := NewSlotMap().MustInsert(a, c).MustInsert(b, c)
	require.False(t, collapsing.IsBijection())
}

func TestSlotMapInverse(t *testing.T) {
	a, b, c, d := Numeric(0), Numeric(1), Numeric(2), Numeric(3)
	m := NewSlotMap().MustInsert(a, c).MustInsert(b, d)

	inv, err := m.Inverse()
	require.NoError(t, err)
	v, ok := inv.Get(c)
	require.True(t, ok)
	require.True(t, v.Equal(a))

	notBijective := NewSlotMap().MustInsert(a, c).MustInsert(b, c)
	_, err = notBijective.Inverse()
	require.True(t, errors.Is(err, ErrNotBijection))
}

func TestSlotMapCompose(t *testing.T) {
	a, b, c, d := Numeric(0), Numeric(1), Numeric(2), Numeric(3)

	f := NewSlotMap().MustInsert(a, b) // a -> b
	g := NewSlotMap().MustInsert(b, c) // b -> c

	composed := f.Compose(g) // a -> c
	v, ok := composed.Get(a)
	require.True(t, ok)
	require.True(t, v.Equal(c))

	// unmatched key drops out of Compose
	f2 := NewSlotMap().MustInsert(a, d) // d not in g's domain
	require.Equal(t, 0, f2.Compose(g).Len())

	// but ComposePartial keeps it as-is
	partial := f2.ComposePartial(g)
	v, ok = partial.Get(a)
	require.True(t, ok)
	require.True(t, v.Equal(d))

	// and ComposeFresh allocates a new slot for it
	fresh := f2.ComposeFresh(g)
	v, ok = fresh.Get(a)
	require.True(t, ok)
	require.False(t, v.Equal(d), "ComposeFresh must not reuse the stale value")
}

func TestIdentityAndBijectionFromSetToFresh(t *testing.T) {
	set := NewSlotSet(Numeric(0), Numeric(1))
	id := Identity(set)
	for _, s := range set.Slice() {
		v, ok := id.Get(s)
		require.True(t, ok)
		require.True(t, v.Equal(s))
	}

	renamed := BijectionFromSetToFresh(set)
	require.True(t, renamed.IsBijection())
	for _, s := range set.Slice() {
		v, ok := renamed.Get(s)
		require.True(t, ok)
		require.False(t, v.Equal(s), "every slot should be renamed to something new")
		require.False(t, v.IsNumeric(), "renaming target must be a fresh slot")
	}
}
