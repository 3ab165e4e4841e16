// Package slot implements the name-hygienic binder identities used by the
// rest of Foresight's e-graph core.
//
// A Slot stands in for a binder position (a lambda parameter, a let-bound
// name, ...) without committing to any particular textual name. Two slots
// are equal only if they are the same identity: a Fresh slot compares by a
// globally unique token, a Numeric slot compares by its de-Bruijn-style
// index. Numeric slots only ever appear inside a canonical "shape" (see
// package enode); callers of the e-graph only ever see Fresh slots.
//
//	sm := slot.NewSlotMap()
//	sm = sm.MustInsert(a, b)
//
// SlotMap and SlotSet are immutable: every mutator returns a new value and
// leaves the receiver untouched, which keeps them safe to share between
// e-classes without defensive copying.
package slot
