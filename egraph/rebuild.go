package egraph

import (
	"errors"

	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
)

// union enqueues a deferred union between the classes a and b name. The
// correspondence between their slot signatures is recovered by composing
// a's substitution with b's inverted substitution: both calls are assumed
// to have been produced in a common ambient slot frame (the normal case,
// since a union is always justified by a rewrite or a congruence discovered
// while both calls were in scope together), so this recovers exactly which
// of a's class-local parameters line up with which of b's.
func (c *core[N]) union(a, b enode.EClassCall) error {
	ra, ok := c.tryCanonicalize(a.Ref)
	if !ok {
		return ErrUnknownClass
	}
	rb, ok := c.tryCanonicalize(b.Ref)
	if !ok {
		return ErrUnknownClass
	}

	renaming := slot.NewSlotMap()
	if invB, err := b.Subst.Inverse(); err == nil {
		renaming = a.Subst.Compose(invB)
	}
	// A non-bijective substitution on either side means the caller merged
	// two parameters onto one ambient slot; rebuild falls back to treating
	// every one of a's parameters as uncorrelated with b's, which is sound
	// (just coarser) since mergeSignatures fresh-allocates any parameter
	// missing from renaming's domain.

	c.pending = append(c.pending, pendingUnion{a: ra.ID(), b: rb.ID(), renameAToB: renaming})
	return nil
}

// rebuild drains the pending union queue to a fixpoint, restoring the
// congruence-closure and hash-cons invariants. It processes unions in FIFO
// order but a single merge may enqueue more (discovered via upward
// congruence), so the loop continues until the queue is empty.
func (c *core[N]) rebuild() error {
	merges := 0
	for len(c.pending) > 0 {
		p := c.pending[0]
		c.pending = c.pending[1:]

		idA, okA := c.uf.find(p.a)
		idB, okB := c.uf.find(p.b)
		if !okA || !okB {
			continue
		}
		if idA == idB {
			continue
		}

		renaming := p.renameAToB
		survivor, absorbed, merged := c.uf.union(idA, idB)
		if !merged {
			continue
		}
		merges++

		// Orient renaming so it always maps absorbed-local -> survivor-local.
		if absorbed != idA {
			inv, err := renaming.Inverse()
			if err == nil {
				renaming = inv
			} else {
				renaming = slot.NewSlotMap()
			}
		}

		if err := c.mergeClass(survivor, absorbed, renaming); err != nil {
			if c.log != nil && errors.Is(err, ErrAnalysisContradiction) {
				c.log.Warnw("egraph rebuild: analysis contradiction", "error", err)
			}
			return err
		}
	}
	if c.log != nil && merges > 0 {
		c.log.Debugw("egraph rebuild", "merges", merges)
	}
	return nil
}

// mergeClass folds the absorbed class's members, parents and analysis value
// into survivor, extending survivor's signature to cover any absorbed
// parameter renaming did not already correlate, then revisits every
// affected parent to rewrite its reference and, if that rewrite produces a
// new congruence, enqueues the resulting union.
func (c *core[N]) mergeClass(survivor, absorbed uint64, renaming slot.SlotMap) error {
	sd, ad := c.classes[survivor], c.classes[absorbed]

	newSig, full := mergeSignatures(sd.sig, ad.sig, renaming)
	sd.sig = newSig

	touched := map[uint64]struct{}{survivor: {}}

	// Drop absorbed's own hash-cons entries first: otherwise a member whose
	// renamed key happens to equal its own pre-rename key reads back as a
	// collision with the class being absorbed, not a genuine third-party
	// congruence.
	for oldKey := range ad.members {
		delete(c.hashcons, oldKey)
	}
	for _, m := range ad.members {
		renamed := m.Rename(full)
		key := enode.ShapeKeyOf(renamed)
		if existingID, ok := c.hashcons[key]; ok {
			if existingID != survivor {
				// Two distinct classes now denote the same shape: congruence
				// discovered while folding in absorbed's members.
				sig := c.classes[existingID].sig
				callHere := enode.Call(enode.RefFromID(survivor), slot.Identity(sig))
				callThere := enode.Call(enode.RefFromID(existingID), slot.Identity(sig))
				if err := c.union(callHere, callThere); err != nil {
					return err
				}
			}
			continue
		}
		c.hashcons[key] = survivor
		sd.members[key] = renamed
		for _, arg := range renamed.Args {
			if argID, ok := c.uf.find(arg.Ref.ID()); ok {
				if ac, ok := c.classes[argID]; ok {
					ac.parents[survivor] = struct{}{}
				}
			}
		}
	}

	for parentID := range ad.parents {
		touched[parentID] = struct{}{}
		sd.parents[parentID] = struct{}{}
	}
	delete(sd.parents, absorbed)

	if err := c.joinAnalyses(sd, ad); err != nil {
		return err
	}
	delete(c.classes, absorbed)

	for parentID := range touched {
		if parentID == survivor {
			continue
		}
		if err := c.rewriteParent(parentID, absorbed, survivor, full); err != nil {
			return err
		}
	}
	return nil
}

// rewriteParent rewrites every member of class parentID that calls oldRef
// (the now-absorbed class) to call newRef instead, translating the callee's
// parameter numbering through renaming. A rewrite that makes two of
// parentID's own members coincide is just a local dedup; one that collides
// with a different class's hash-cons entry enqueues a further union.
func (c *core[N]) rewriteParent(parentID, oldRef, newRef uint64, renaming slot.SlotMap) error {
	cd, ok := c.classes[parentID]
	if !ok {
		return nil
	}
	rewritten := make(map[string]enode.ENode[N], len(cd.members))
	for key, m := range cd.members {
		changed := false
		args := make([]enode.EClassCall, len(m.Args))
		for i, a := range m.Args {
			if a.Ref.ID() == oldRef {
				args[i] = enode.Call(enode.RefFromID(newRef), a.Subst).RenameThrough(renaming)
				changed = true
			} else {
				args[i] = a
			}
		}
		if !changed {
			rewritten[key] = m
			continue
		}
		newNode := enode.ENode[N]{Op: m.Op, Defs: m.Defs, Uses: m.Uses, Args: args}
		newKey := enode.ShapeKeyOf(newNode)
		if existingID, exists := c.hashcons[newKey]; exists && existingID != parentID {
			sig := c.classes[parentID].sig
			callHere := enode.Call(enode.RefFromID(parentID), slot.Identity(sig))
			callThere := enode.Call(enode.RefFromID(existingID), slot.Identity(sig))
			if err := c.union(callHere, callThere); err != nil {
				return err
			}
			delete(c.hashcons, key)
			continue
		}
		delete(c.hashcons, key)
		c.hashcons[newKey] = parentID
		rewritten[newKey] = newNode
	}
	cd.members = rewritten
	return nil
}

// mergeSignatures returns a signature that is a superset of survivorSig and
// a renaming, total over absorbedSig, from absorbed-local parameters into
// that signature: parameters correlated by partial (the union-time
// correspondence) map onto their survivor counterpart; any absorbed
// parameter left uncorrelated gets a freshly allocated Numeric slot appended
// to the signature.
func mergeSignatures(survivorSig, absorbedSig slot.SlotSet, partial slot.SlotMap) (slot.SlotSet, slot.SlotMap) {
	newSig := survivorSig
	renaming := slot.NewSlotMap()
	next := 0
	for _, s := range survivorSig.Slice() {
		if s.Index() >= next {
			next = s.Index() + 1
		}
	}
	for _, s := range absorbedSig.Slice() {
		if v, ok := partial.Get(s); ok && newSig.Contains(v) {
			renaming = renaming.MustInsert(s, v)
			continue
		}
		nv := slot.Numeric(next)
		next++
		newSig = newSig.Incl(nv)
		renaming = renaming.MustInsert(s, nv)
	}
	return newSig, renaming
}
