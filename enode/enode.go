package enode

import "github.com/katalvlaran/foresight/slot"

// ENode is a single operator application living inside an e-class. Defs are
// the slots this node binds (e.g. a lambda's parameter); Uses are the free
// slots it references directly; Args are its children, each reached through
// an EClassCall rather than a bare class reference so that alpha-renaming
// at a call site never has to touch the callee's own representation.
type ENode[N comparable] struct {
	Op   N
	Defs []slot.Slot
	Uses []slot.Slot
	Args []EClassCall
}

// New builds an ENode, defensively copying defs/uses/args so later mutation
// of the caller's slices cannot alias into the node.
func New[N comparable](op N, defs, uses []slot.Slot, args ...EClassCall) ENode[N] {
	return ENode[N]{
		Op:   op,
		Defs: append([]slot.Slot(nil), defs...),
		Uses: append([]slot.Slot(nil), uses...),
		Args: append([]EClassCall(nil), args...),
	}
}

// Validate checks the defs/uses disjointness invariant. The e-graph must
// reject a node that fails this check rather than hash-cons it.
func (n ENode[N]) Validate() error {
	defs := slot.NewSlotSet(n.Defs...)
	for _, u := range n.Uses {
		if defs.Contains(u) {
			return ErrOverlappingDefsUses
		}
	}
	return nil
}

// FreeSlots returns the node's free-slot set: its own uses, plus every
// child call's free slots, minus whatever this node itself binds.
func (n ENode[N]) FreeSlots() slot.SlotSet {
	free := slot.NewSlotSet(n.Uses...)
	for _, a := range n.Args {
		free = free.Union(a.FreeSlots())
	}
	return free.Diff(slot.NewSlotSet(n.Defs...))
}

// Equal reports deep structural equality: same operator, same defs/uses in
// order, and pairwise-equal argument calls.
func (n ENode[N]) Equal(o ENode[N]) bool {
	if n.Op != o.Op {
		return false
	}
	if !slotsEqual(n.Defs, o.Defs) || !slotsEqual(n.Uses, o.Uses) {
		return false
	}
	if len(n.Args) != len(o.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// MapArgs returns a copy of n with each argument call rewritten by f. Used
// by rebuild to push a canonicalizing renaming through a node's children.
func (n ENode[N]) MapArgs(f func(EClassCall) EClassCall) ENode[N] {
	out := n
	out.Args = make([]EClassCall, len(n.Args))
	for i, a := range n.Args {
		out.Args[i] = f(a)
	}
	return out
}

// Rename rewrites every slot occurrence of n that appears as a key in
// renaming to its image, leaving everything else untouched. Applied to a
// fully-numeric shape (as stored by an e-class member) it reinterprets the
// node's free slots under a new class signature; applied to an argument
// call's substitution it only ever touches the values, since Subst's keys
// live in the callee's own numbering.
func (n ENode[N]) Rename(renaming slot.SlotMap) ENode[N] {
	apply := func(s slot.Slot) slot.Slot {
		if v, ok := renaming.Get(s); ok {
			return v
		}
		return s
	}
	args := make([]EClassCall, len(n.Args))
	for i, a := range n.Args {
		newSubst := slot.NewSlotMap()
		for _, k := range a.Subst.Keys() {
			v, _ := a.Subst.Get(k)
			newSubst = newSubst.MustInsert(k, apply(v))
		}
		args[i] = EClassCall{Ref: a.Ref, Subst: newSubst}
	}
	return ENode[N]{
		Op:   n.Op,
		Defs: mapSlots(n.Defs, apply),
		Uses: mapSlots(n.Uses, apply),
		Args: args,
	}
}

func slotsEqual(a, b []slot.Slot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
