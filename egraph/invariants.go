package egraph

import (
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
	pkgerrors "github.com/pkg/errors"
)

// checkInvariants validates the five properties the core's hash-cons /
// congruence-closure machinery is supposed to maintain at every point where
// no rebuild is pending. It is not called on any hot path; it exists for
// debug and test builds to catch a bug in the engine itself, per the
// package's fatal-on-corruption policy — a caller hitting this should treat
// it as this engine being wrong, never as bad input.
func (c *core[N]) checkInvariants() error {
	if len(c.pending) != 0 {
		return pkgerrors.Wrapf(ErrInvariantViolation, "%d unions still pending", len(c.pending))
	}

	for id, cd := range c.classes {
		canon, ok := c.tryCanonicalize(enode.RefFromID(id))
		if !ok || canon.ID() != id {
			return pkgerrors.Wrapf(ErrInvariantViolation, "class %d is not its own canonical representative", id)
		}

		union := slot.Empty
		for key, m := range cd.members {
			if gotID, ok := c.hashcons[key]; !ok || gotID != id {
				return pkgerrors.Wrapf(ErrInvariantViolation, "hash-cons entry for member %q of class %d is missing or points elsewhere", key, id)
			}
			if gotKey := enode.ShapeKeyOf(m); gotKey != key {
				return pkgerrors.Wrapf(ErrInvariantViolation, "member of class %d is stored under key %q but re-keys to %q", id, key, gotKey)
			}
			union = union.Union(m.FreeSlots())

			for _, arg := range m.Args {
				argCanon, ok := c.tryCanonicalize(arg.Ref)
				if !ok {
					return pkgerrors.Wrapf(ErrInvariantViolation, "member of class %d references unknown class %d", id, arg.Ref.ID())
				}
				if _, ok := c.classes[argCanon.ID()]; !ok {
					return pkgerrors.Wrapf(ErrInvariantViolation, "member of class %d's argument canonicalizes to live ref %d with no class data", id, argCanon.ID())
				}
				if _, ok := c.classes[argCanon.ID()].parents[id]; !ok {
					return pkgerrors.Wrapf(ErrInvariantViolation, "class %d is not recorded as a parent of class %d despite referencing it", id, argCanon.ID())
				}
			}
		}
		if !union.SubsetOf(cd.sig) || !cd.sig.SubsetOf(union) {
			return pkgerrors.Wrapf(ErrInvariantViolation, "class %d's signature does not equal the union of its members' free slots", id)
		}

		for parentID := range cd.parents {
			// parentID was canonical at the time it was recorded, but a
			// later merge may have absorbed it into a different class —
			// the same staleness documented for a caller-held EClassCall
			// in hashcons.go. Resolve it the same way any other class
			// reference is resolved, through tryCanonicalize, rather than
			// requiring the raw id to still be a live map key.
			canonicalParent, ok := c.tryCanonicalize(enode.RefFromID(parentID))
			if !ok {
				return pkgerrors.Wrapf(ErrInvariantViolation, "class %d lists never-allocated class %d as a parent", id, parentID)
			}
			parentData, ok := c.classes[canonicalParent.ID()]
			if !ok {
				return pkgerrors.Wrapf(ErrInvariantViolation, "class %d lists dead class %d as a parent", id, parentID)
			}
			found := false
			for _, m := range parentData.members {
				for _, arg := range m.Args {
					if argCanon, ok := c.tryCanonicalize(arg.Ref); ok && argCanon.ID() == id {
						found = true
					}
				}
			}
			if !found {
				return pkgerrors.Wrapf(ErrInvariantViolation, "class %d lists %d as a parent but no member of its canonical class %d references it", id, parentID, canonicalParent.ID())
			}
		}
	}

	for key, id := range c.hashcons {
		cd, ok := c.classes[id]
		if !ok {
			return pkgerrors.Wrapf(ErrInvariantViolation, "hash-cons key %q points at dead class %d", key, id)
		}
		if _, ok := cd.members[key]; !ok {
			return pkgerrors.Wrapf(ErrInvariantViolation, "hash-cons key %q points at class %d which has no matching member", key, id)
		}
	}

	return nil
}
