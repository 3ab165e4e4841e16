package slot

import "errors"

// Sentinel errors for the slot package. Callers should branch on these with
// errors.Is rather than string matching.
var (
	// ErrDuplicateKey indicates a SlotMap insert would introduce a second
	// binding for a key that is already present.
	ErrDuplicateKey = errors.New("slot: duplicate key in SlotMap")

	// ErrNotBijection indicates an inverse or bijection-only operation was
	// attempted on a SlotMap whose values are not unique.
	ErrNotBijection = errors.New("slot: SlotMap is not a bijection")

	// ErrKeyNotFound indicates a lookup for a key absent from the SlotMap.
	ErrKeyNotFound = errors.New("slot: key not found")
)
