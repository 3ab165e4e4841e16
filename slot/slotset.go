package slot

import "sort"

// SlotSet is a sorted, duplicate-free immutable set of slots. It is backed
// by a sorted array rather than a map: equality, hashing and the set
// operations below are all linear scans over two sorted slices, which is
// what makes rebuild's per-class slot-signature bookkeeping cheap. Nothing
// in this package ever hashes an individual Slot's identity bytes except
// Hash itself.
type SlotSet struct {
	items []Slot // sorted, no duplicates
}

// Empty is the zero-value SlotSet.
var Empty = SlotSet{}

// NewSlotSet builds a SlotSet from an unordered, possibly duplicated slice.
func NewSlotSet(items ...Slot) SlotSet {
	if len(items) == 0 {
		return SlotSet{}
	}
	cp := make([]Slot, len(items))
	copy(cp, items)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })
	out := cp[:1]
	for _, s := range cp[1:] {
		if !out[len(out)-1].Equal(s) {
			out = append(out, s)
		}
	}
	return SlotSet{items: out}
}

// Len returns the number of distinct slots in the set.
func (s SlotSet) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no members.
func (s SlotSet) IsEmpty() bool { return len(s.items) == 0 }

// Slice returns the sorted contents as a fresh slice; mutating it does not
// affect s.
func (s SlotSet) Slice() []Slot {
	out := make([]Slot, len(s.items))
	copy(out, s.items)
	return out
}

func (s SlotSet) search(x Slot) (int, bool) {
	i := sort.Search(len(s.items), func(i int) bool { return !s.items[i].Less(x) })
	if i < len(s.items) && s.items[i].Equal(x) {
		return i, true
	}
	return i, false
}

// Contains reports whether x is a member of s.
func (s SlotSet) Contains(x Slot) bool {
	_, ok := s.search(x)
	return ok
}

// Incl returns s with x added, or s unchanged if x was already present.
func (s SlotSet) Incl(x Slot) SlotSet {
	i, ok := s.search(x)
	if ok {
		return s
	}
	out := make([]Slot, 0, len(s.items)+1)
	out = append(out, s.items[:i]...)
	out = append(out, x)
	out = append(out, s.items[i:]...)
	return SlotSet{items: out}
}

// Excl returns s with x removed, or s unchanged if x was absent.
func (s SlotSet) Excl(x Slot) SlotSet {
	i, ok := s.search(x)
	if !ok {
		return s
	}
	out := make([]Slot, 0, len(s.items)-1)
	out = append(out, s.items[:i]...)
	out = append(out, s.items[i+1:]...)
	return SlotSet{items: out}
}

// Union returns the sorted merge of s and o.
func (s SlotSet) Union(o SlotSet) SlotSet {
	out := make([]Slot, 0, len(s.items)+len(o.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(o.items) {
		switch {
		case s.items[i].Equal(o.items[j]):
			out = append(out, s.items[i])
			i++
			j++
		case s.items[i].Less(o.items[j]):
			out = append(out, s.items[i])
			i++
		default:
			out = append(out, o.items[j])
			j++
		}
	}
	out = append(out, s.items[i:]...)
	out = append(out, o.items[j:]...)
	return SlotSet{items: out}
}

// Intersect returns the slots present in both s and o.
func (s SlotSet) Intersect(o SlotSet) SlotSet {
	out := make([]Slot, 0, minInt(len(s.items), len(o.items)))
	i, j := 0, 0
	for i < len(s.items) && j < len(o.items) {
		switch {
		case s.items[i].Equal(o.items[j]):
			out = append(out, s.items[i])
			i++
			j++
		case s.items[i].Less(o.items[j]):
			i++
		default:
			j++
		}
	}
	return SlotSet{items: out}
}

// Diff returns the slots present in s but not in o.
func (s SlotSet) Diff(o SlotSet) SlotSet {
	out := make([]Slot, 0, len(s.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(o.items) {
		switch {
		case s.items[i].Equal(o.items[j]):
			i++
			j++
		case s.items[i].Less(o.items[j]):
			out = append(out, s.items[i])
			i++
		default:
			j++
		}
	}
	out = append(out, s.items[i:]...)
	return SlotSet{items: out}
}

// SubsetOf reports whether every slot in s is also in o.
func (s SlotSet) SubsetOf(o SlotSet) bool {
	i, j := 0, 0
	for i < len(s.items) {
		if j >= len(o.items) {
			return false
		}
		switch {
		case s.items[i].Equal(o.items[j]):
			i++
			j++
		case o.items[j].Less(s.items[i]):
			j++
		default:
			return false
		}
	}
	return true
}

// Equal reports structural equality: same members, independent of how each
// set was constructed.
func (s SlotSet) Equal(o SlotSet) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for i := range s.items {
		if !s.items[i].Equal(o.items[i]) {
			return false
		}
	}
	return true
}

// Hash returns a stable FNV-1a hash over the set's contents. Two equal sets
// always hash equal, regardless of construction order.
func (s SlotSet) Hash() uint64 {
	h := newFnvState()
	h.writeInt(len(s.items))
	for _, x := range s.items {
		x.writeHash(h)
	}
	return h.sum64()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
