package enode

import "github.com/katalvlaran/foresight/slot"

// EClassRef is an opaque handle identifying an e-class within a particular
// e-graph. It is a value, not a pointer: e-classes live in an arena owned
// by the e-graph (package egraph), and a ref is just its index, kept stable
// across unions even after the class it names stops being canonical.
//
// RefFromID is exported only so package egraph (the sole owner of the
// arena) can mint refs; other callers should treat EClassRef as opaque and
// obtain theirs from EGraph.Add / EGraph.Find.
type EClassRef struct {
	id uint64
}

// RefFromID mints a ref for arena index id. Reserved for package egraph.
func RefFromID(id uint64) EClassRef { return EClassRef{id: id} }

// ID returns the arena index backing the ref. Reserved for package egraph.
func (r EClassRef) ID() uint64 { return r.id }

func (r EClassRef) String() string {
	return "e" + itoa(r.id)
}

// EClassCall references an e-class together with a renaming from the
// class's canonical slot parameters to the slots the caller actually used.
// It is how a slotted e-graph keeps alpha-equivalence out of its hashing
// while still letting every caller see its own slot names.
type EClassCall struct {
	Ref   EClassRef
	Subst slot.SlotMap
}

// Call builds an EClassCall naming ref, renamed through subst.
func Call(ref EClassRef, subst slot.SlotMap) EClassCall {
	return EClassCall{Ref: ref, Subst: subst}
}

// FreeSlots returns the free slots a caller sees through this call: the
// image of Subst, which by construction is keyed by the callee class's
// slot-signature parameters.
func (c EClassCall) FreeSlots() slot.SlotSet {
	return slot.NewSlotSet(c.Subst.Values()...)
}

// Equal reports whether c and o name the same class through the same
// renaming.
func (c EClassCall) Equal(o EClassCall) bool {
	return c.Ref == o.Ref && c.Subst.Equal(o.Subst)
}

// RenameThrough rewrites c's substitution after the callee class's slot
// signature was itself renamed (renaming maps old parameter -> new
// parameter), e.g. during rebuild's slot-signature merge. Keys absent from
// renaming are kept as-is.
func (c EClassCall) RenameThrough(renaming slot.SlotMap) EClassCall {
	newSubst := slot.NewSlotMap()
	for _, k := range c.Subst.Keys() {
		v, _ := c.Subst.Get(k)
		if nk, ok := renaming.Get(k); ok {
			newSubst = newSubst.MustInsert(nk, v)
		} else {
			newSubst = newSubst.MustInsert(k, v)
		}
	}
	return EClassCall{Ref: c.Ref, Subst: newSubst}
}

func itoa(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}
