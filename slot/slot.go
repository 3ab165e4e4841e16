package slot

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// Slot is a name-hygienic identifier for a binder position. Slots are
// values: two slots are equal iff they carry the same identity, never by
// looking at any surrounding structure.
//
// A Fresh slot's identity is a process-wide unique token; a Numeric slot's
// identity is a small integer index and is only ever produced internally
// when an ENode is decomposed into a canonical ShapeCall (package enode).
// Client code should treat Numeric as an implementation detail and only
// construct Fresh slots.
type Slot struct {
	numeric bool
	index   int
	id      uuid.UUID
}

// Fresh allocates a new slot with a globally unique identity.
func Fresh() Slot {
	return Slot{id: uuid.New()}
}

// Numeric constructs the de-Bruijn-style slot used by canonical shapes.
// i must be the first-occurrence rank of the slot it replaces.
func Numeric(i int) Slot {
	return Slot{numeric: true, index: i}
}

// IsNumeric reports whether s is a shape-internal numeric slot.
func (s Slot) IsNumeric() bool { return s.numeric }

// Index returns the de-Bruijn index of a numeric slot. It panics if s is
// not numeric; callers must check IsNumeric first.
func (s Slot) Index() int {
	if !s.numeric {
		panic("slot: Index called on a fresh slot")
	}
	return s.index
}

// Equal reports whether s and o share the same identity.
func (s Slot) Equal(o Slot) bool {
	if s.numeric != o.numeric {
		return false
	}
	if s.numeric {
		return s.index == o.index
	}
	return s.id == o.id
}

// Less imposes a total, deterministic order over slots so that SlotSet can
// keep a sorted backing array. Numeric slots sort before fresh slots, and
// within a kind slots sort by index / uuid bytes.
func (s Slot) Less(o Slot) bool {
	if s.numeric != o.numeric {
		return s.numeric // numeric < fresh
	}
	if s.numeric {
		return s.index < o.index
	}
	return lessUUID(s.id, o.id)
}

func lessUUID(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// writeHash feeds s's identity bytes into h, used by SlotSet.Hash and by the
// hash-cons key for canonical shapes.
func (s Slot) writeHash(h *fnvState) {
	if s.numeric {
		h.writeByte(0)
		h.writeInt(s.index)
		return
	}
	h.writeByte(1)
	h.writeBytes(s.id[:])
}

func (s Slot) String() string {
	if s.numeric {
		return fmt.Sprintf("$%d", s.index)
	}
	return fmt.Sprintf("#%s", s.id.String()[:8])
}

// fnvState is a tiny wrapper around hash/fnv.New64a used by both Slot and
// SlotSet so the hashing rules live in one place.
type fnvState struct {
	h fnvHash
}

type fnvHash interface {
	Write([]byte) (int, error)
	Sum64() uint64
}

func newFnvState() *fnvState {
	return &fnvState{h: fnv.New64a()}
}

func (f *fnvState) writeByte(b byte) { _, _ = f.h.Write([]byte{b}) }

func (f *fnvState) writeInt(i int) {
	var buf [8]byte
	u := uint64(i)
	for k := 0; k < 8; k++ {
		buf[k] = byte(u >> (8 * k))
	}
	_, _ = f.h.Write(buf[:])
}

func (f *fnvState) writeBytes(b []byte) { _, _ = f.h.Write(b) }

func (f *fnvState) sum64() uint64 { return f.h.Sum64() }
