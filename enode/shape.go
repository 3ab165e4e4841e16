package enode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/foresight/slot"
)

// ShapeCall decomposes an ENode into a canonical Shape - every distinct
// slot occurrence replaced by a Numeric slot in first-occurrence order -
// plus an Args map recovering the original slots. Shape depends only on
// the node's alpha-equivalence class, which is exactly what makes it a
// valid hash-cons key: two alpha-equivalent nodes produce an identical
// Shape and differ only in Args.
type ShapeCall[N comparable] struct {
	Shape ENode[N]
	Args  slot.SlotMap // numeric (shape-local) -> original slot
}

// AsShapeCall decomposes n. Occurrence order is defs, then uses, then each
// argument's substitution values in argument order; the first time a slot
// is seen it is assigned the next numeric index.
func (n ENode[N]) AsShapeCall() ShapeCall[N] {
	toNumeric := slot.NewSlotMap() // original -> numeric, built incrementally
	next := 0
	assign := func(s slot.Slot) slot.Slot {
		if v, ok := toNumeric.Get(s); ok {
			return v
		}
		ns := slot.Numeric(next)
		next++
		toNumeric = toNumeric.MustInsert(s, ns)
		return ns
	}

	newDefs := mapSlots(n.Defs, assign)
	newUses := mapSlots(n.Uses, assign)

	newArgs := make([]EClassCall, len(n.Args))
	for i, a := range n.Args {
		newSubst := slot.NewSlotMap()
		for _, k := range a.Subst.Keys() {
			v, _ := a.Subst.Get(k)
			newSubst = newSubst.MustInsert(k, assign(v))
		}
		newArgs[i] = EClassCall{Ref: a.Ref, Subst: newSubst}
	}

	shape := ENode[N]{Op: n.Op, Defs: newDefs, Uses: newUses, Args: newArgs}
	// toNumeric only ever grows by assigning a fresh numeric index to a
	// slot it has not seen before, so it is a bijection by construction.
	argsMap, err := toNumeric.Inverse()
	if err != nil {
		panic(fmt.Sprintf("enode: shape decomposition produced a non-bijective slot map: %v", err))
	}
	return ShapeCall[N]{Shape: shape, Args: argsMap}
}

// AsNode reconstructs the original ENode from a ShapeCall, the inverse of
// AsShapeCall. ShapeCall(shape, args).AsNode() == node is the round-trip
// invariant the hash-cons relies on.
func (sc ShapeCall[N]) AsNode() ENode[N] {
	lookup := func(s slot.Slot) slot.Slot {
		if v, ok := sc.Args.Get(s); ok {
			return v
		}
		return s
	}
	defs := mapSlots(sc.Shape.Defs, lookup)
	uses := mapSlots(sc.Shape.Uses, lookup)
	args := make([]EClassCall, len(sc.Shape.Args))
	for i, a := range sc.Shape.Args {
		newSubst := slot.NewSlotMap()
		for _, k := range a.Subst.Keys() {
			v, _ := a.Subst.Get(k)
			newSubst = newSubst.MustInsert(k, lookup(v))
		}
		args[i] = EClassCall{Ref: a.Ref, Subst: newSubst}
	}
	return ENode[N]{Op: sc.Shape.Op, Defs: defs, Uses: uses, Args: args}
}

// Key returns a canonical string encoding of the shape suitable for use as
// a hash-cons map key. Every field feeding the key is either the node's
// operator (formatted with %v, since N need only be comparable) or a
// numeric slot index, so two shapes produce equal keys iff they are
// structurally identical.
func (sc ShapeCall[N]) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v|", sc.Shape.Op)
	writeIndices(&b, sc.Shape.Defs)
	b.WriteByte('|')
	writeIndices(&b, sc.Shape.Uses)
	b.WriteByte('|')
	for _, a := range sc.Shape.Args {
		b.WriteString(strconv.FormatUint(a.Ref.id, 10))
		b.WriteByte(':')
		for _, k := range a.Subst.Keys() {
			v, _ := a.Subst.Get(k)
			b.WriteString(strconv.Itoa(k.Index()))
			b.WriteByte('=')
			b.WriteString(strconv.Itoa(v.Index()))
			b.WriteByte(',')
		}
		b.WriteByte(';')
	}
	return b.String()
}

// ShapeKeyOf computes the hash-cons key of an already-numeric-slotted node
// directly, without re-running AsShapeCall's first-occurrence assignment.
// It is used to re-key a class member after rebuild has renamed its free
// slots through a signature-merging SlotMap: the member's slots are already
// canonical (Numeric) at that point, just expressed in a new class's
// parameter numbering, so re-decomposing from scratch would be redundant.
func ShapeKeyOf[N comparable](shape ENode[N]) string {
	return ShapeCall[N]{Shape: shape}.Key()
}

func writeIndices(b *strings.Builder, slots []slot.Slot) {
	for i, s := range slots {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s.Index()))
	}
}

func mapSlots(in []slot.Slot, f func(slot.Slot) slot.Slot) []slot.Slot {
	if in == nil {
		return nil
	}
	out := make([]slot.Slot, len(in))
	for i, s := range in {
		out[i] = f(s)
	}
	return out
}
