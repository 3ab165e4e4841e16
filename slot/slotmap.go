package slot

// SlotMap is an ordered, finite partial function Slot -> Slot. Ordering is
// insertion order, not sorted order: SlotMap is used to carry the caller's
// naming of a class's parameters, and the order in which those parameters
// were first bound is exactly the order pattern variables should see them
// in. SlotMap values are immutable; every mutator returns a new value.
type SlotMap struct {
	pairs []slotPair
}

type slotPair struct {
	key, val Slot
}

// NewSlotMap returns the empty SlotMap.
func NewSlotMap() SlotMap {
	return SlotMap{}
}

func (m SlotMap) indexOf(k Slot) int {
	for i, p := range m.pairs {
		if p.key.Equal(k) {
			return i
		}
	}
	return -1
}

// Len returns the number of bindings in m.
func (m SlotMap) Len() int { return len(m.pairs) }

// IsEmpty reports whether m has no bindings.
func (m SlotMap) IsEmpty() bool { return len(m.pairs) == 0 }

// Get looks up k, returning (zero, false) if it is unbound.
func (m SlotMap) Get(k Slot) (Slot, bool) {
	if i := m.indexOf(k); i >= 0 {
		return m.pairs[i].val, true
	}
	return Slot{}, false
}

// Apply is an alias for Get, read as "m applied to k".
func (m SlotMap) Apply(k Slot) (Slot, bool) { return m.Get(k) }

// Insert returns m extended with k -> v. It fails with ErrDuplicateKey if k
// is already bound, since a SlotMap is a function, not a multimap.
func (m SlotMap) Insert(k, v Slot) (SlotMap, error) {
	if m.indexOf(k) >= 0 {
		return m, ErrDuplicateKey
	}
	out := make([]slotPair, len(m.pairs), len(m.pairs)+1)
	copy(out, m.pairs)
	out = append(out, slotPair{k, v})
	return SlotMap{pairs: out}, nil
}

// MustInsert is Insert but panics on a duplicate key; it is meant for
// call sites that have already established k is fresh to m (e.g. building a
// map from a SlotSet, whose members are themselves deduplicated).
func (m SlotMap) MustInsert(k, v Slot) SlotMap {
	out, err := m.Insert(k, v)
	if err != nil {
		panic(err)
	}
	return out
}

// Keys returns the bound keys in insertion order.
func (m SlotMap) Keys() []Slot {
	out := make([]Slot, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.key
	}
	return out
}

// Values returns the bound values in insertion order (may contain
// duplicates unless IsBijection holds).
func (m SlotMap) Values() []Slot {
	out := make([]Slot, len(m.pairs))
	for i, p := range m.pairs {
		out[i] = p.val
	}
	return out
}

// Domain returns the map's keys as a SlotSet.
func (m SlotMap) Domain() SlotSet { return NewSlotSet(m.Keys()...) }

// Codomain returns the map's values as a SlotSet (duplicates collapsed).
func (m SlotMap) Codomain() SlotSet { return NewSlotSet(m.Values()...) }

// IsBijection reports whether m's values are pairwise distinct, i.e. m is
// injective as well as functional.
func (m SlotMap) IsBijection() bool {
	seen := NewSlotSet()
	for _, p := range m.pairs {
		if seen.Contains(p.val) {
			return false
		}
		seen = seen.Incl(p.val)
	}
	return true
}

// IsPermutation reports whether m is a bijection whose domain equals its
// codomain, i.e. m merely renames within a fixed set of slots.
func (m SlotMap) IsPermutation() bool {
	return m.IsBijection() && m.Domain().Equal(m.Codomain())
}

// Inverse returns the inverse function, failing with ErrNotBijection if m's
// values are not unique.
func (m SlotMap) Inverse() (SlotMap, error) {
	if !m.IsBijection() {
		return SlotMap{}, ErrNotBijection
	}
	out := NewSlotMap()
	for _, p := range m.pairs {
		out = out.MustInsert(p.val, p.key)
	}
	return out, nil
}

// Compose returns h such that h[k] = other[m[k]] for every k where m[k] is
// in other's domain; keys whose image falls outside other's domain are
// dropped from the result. This matches function composition restricted to
// the overlap of the two maps' domains.
func (m SlotMap) Compose(other SlotMap) SlotMap {
	out := NewSlotMap()
	for _, p := range m.pairs {
		if v2, ok := other.Get(p.val); ok {
			out = out.MustInsert(p.key, v2)
		}
	}
	return out
}

// ComposePartial behaves like Compose but keeps a key whose image is not in
// other's domain bound to its original (uncomposed) value rather than
// dropping it.
func (m SlotMap) ComposePartial(other SlotMap) SlotMap {
	out := NewSlotMap()
	for _, p := range m.pairs {
		if v2, ok := other.Get(p.val); ok {
			out = out.MustInsert(p.key, v2)
		} else {
			out = out.MustInsert(p.key, p.val)
		}
	}
	return out
}

// ComposeFresh behaves like Compose but allocates a brand-new Fresh slot for
// any key whose image is not in other's domain, instead of dropping or
// keeping it. Used when renaming a class's parameters across a union where
// the two classes' signatures only partially overlap.
func (m SlotMap) ComposeFresh(other SlotMap) SlotMap {
	out := NewSlotMap()
	for _, p := range m.pairs {
		if v2, ok := other.Get(p.val); ok {
			out = out.MustInsert(p.key, v2)
		} else {
			out = out.MustInsert(p.key, Fresh())
		}
	}
	return out
}

// Equal reports whether m and o bind exactly the same keys to exactly the
// same values, independent of insertion order.
func (m SlotMap) Equal(o SlotMap) bool {
	if len(m.pairs) != len(o.pairs) {
		return false
	}
	for _, p := range m.pairs {
		v, ok := o.Get(p.key)
		if !ok || !v.Equal(p.val) {
			return false
		}
	}
	return true
}

// Restrict returns the sub-map of m whose keys lie in domain.
func (m SlotMap) Restrict(domain SlotSet) SlotMap {
	out := NewSlotMap()
	for _, k := range m.Keys() {
		if domain.Contains(k) {
			v, _ := m.Get(k)
			out = out.MustInsert(k, v)
		}
	}
	return out
}

// Identity returns the map that sends every slot in set to itself.
func Identity(set SlotSet) SlotMap {
	out := NewSlotMap()
	for _, s := range set.Slice() {
		out = out.MustInsert(s, s)
	}
	return out
}

// BijectionFromSetToFresh returns a map sending every slot in set to a
// distinct, newly allocated Fresh slot. This is the core primitive for
// capture-avoiding alpha-renaming: rename a class's bound parameters apart
// before substituting a term that might mention them.
func BijectionFromSetToFresh(set SlotSet) SlotMap {
	out := NewSlotMap()
	for _, s := range set.Slice() {
		out = out.MustInsert(s, Fresh())
	}
	return out
}
