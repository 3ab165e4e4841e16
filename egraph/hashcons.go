package egraph

import (
	"sort"

	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
)

// tryCanonicalize resolves ref to its current union-find representative.
// It reports false if ref was never allocated in this core.
func (c *core[N]) tryCanonicalize(ref enode.EClassRef) (enode.EClassRef, bool) {
	id, ok := c.uf.find(ref.ID())
	if !ok {
		return enode.EClassRef{}, false
	}
	return enode.RefFromID(id), true
}

// canonicalizeCall rewrites call's ref to its current representative,
// leaving Subst untouched. Between rebuilds every live call reachable from a
// class's own members is kept consistent by rebuild's parent-rewrite pass;
// a caller-held EClassCall obtained before a union and never re-submitted
// may still carry a stale Subst domain after its Ref changes class, which is
// the one documented looseness of treating rebuild as class-local rather
// than whole-graph.
func (c *core[N]) canonicalizeCall(call enode.EClassCall) (enode.EClassCall, error) {
	ref, ok := c.tryCanonicalize(call.Ref)
	if !ok {
		return enode.EClassCall{}, ErrUnknownClass
	}
	return enode.EClassCall{Ref: ref, Subst: call.Subst}, nil
}

// canonicalizeNode rewrites every argument call's ref to its current
// representative.
func (c *core[N]) canonicalizeNode(n enode.ENode[N]) (enode.ENode[N], error) {
	var firstErr error
	out := n.MapArgs(func(call enode.EClassCall) enode.EClassCall {
		cc, err := c.canonicalizeCall(call)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return cc
	})
	if firstErr != nil {
		return enode.ENode[N]{}, firstErr
	}
	return out, nil
}

// find looks up n's e-class without creating one, returning (call, false) if
// no congruent node has ever been added.
func (c *core[N]) find(n enode.ENode[N]) (enode.EClassCall, bool, error) {
	canon, err := c.canonicalizeNode(n)
	if err != nil {
		return enode.EClassCall{}, false, err
	}
	sc := canon.AsShapeCall()
	id, ok := c.hashcons[sc.Key()]
	if !ok {
		return enode.EClassCall{}, false, nil
	}
	sig := c.classes[id].sig
	return enode.EClassCall{Ref: enode.RefFromID(id), Subst: restrictToSig(sc.Args, sig)}, true, nil
}

// addNode hash-conses n, returning the call through which the node is now
// reachable. A congruent node already present returns the existing class;
// otherwise a fresh singleton class is allocated.
func (c *core[N]) addNode(n enode.ENode[N]) (enode.EClassCall, error) {
	if err := n.Validate(); err != nil {
		return enode.EClassCall{}, ErrInvalidNode
	}
	canon, err := c.canonicalizeNode(n)
	if err != nil {
		return enode.EClassCall{}, err
	}
	sc := canon.AsShapeCall()
	key := sc.Key()

	if id, ok := c.hashcons[key]; ok {
		sig := c.classes[id].sig
		return enode.EClassCall{Ref: enode.RefFromID(id), Subst: restrictToSig(sc.Args, sig)}, nil
	}

	id := c.nextID
	c.nextID++
	c.uf.makeSet(id)

	sig := sc.Shape.FreeSlots()
	cd := newClassData[N](sig)
	cd.members[key] = sc.Shape
	c.classes[id] = cd
	c.hashcons[key] = id

	for _, a := range canon.Args {
		if pc, ok := c.classes[a.Ref.ID()]; ok {
			pc.parents[id] = struct{}{}
		}
	}

	c.recomputeNewClassValues(id, cd, n.Op)

	return enode.EClassCall{Ref: enode.RefFromID(id), Subst: restrictToSig(sc.Args, sig)}, nil
}

// addTree hash-conses every node of t bottom-up, returning the call for its
// root. Atoms are returned unchanged.
func (c *core[N]) addTree(t enode.Tree[N]) (enode.EClassCall, error) {
	if t.IsAtom() {
		return t.Atom(), nil
	}
	children := make([]enode.EClassCall, len(t.Children()))
	for i, ch := range t.Children() {
		call, err := c.addTree(ch)
		if err != nil {
			return enode.EClassCall{}, err
		}
		children[i] = call
	}
	n := enode.New(t.Op(), t.Defs(), t.Uses(), children...)
	return c.addNode(n)
}

// contains reports whether n (up to canonicalization) is already hash-consed.
func (c *core[N]) contains(n enode.ENode[N]) bool {
	_, ok, err := c.find(n)
	return err == nil && ok
}

// nodesOf returns every member shape known to denote class id's canonical
// representative, sorted by hash-cons key so callers (pattern matching in
// particular) see a reproducible candidate order across runs regardless of
// Go's map iteration order.
func (c *core[N]) nodesOf(ref enode.EClassRef) ([]enode.ENode[N], error) {
	id, ok := c.tryCanonicalize(ref)
	if !ok {
		return nil, ErrUnknownClass
	}
	cd := c.classes[id.ID()]
	keys := make([]string, 0, len(cd.members))
	for k := range cd.members {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]enode.ENode[N], 0, len(keys))
	for _, k := range keys {
		out = append(out, cd.members[k])
	}
	return out, nil
}

// classRefs returns every canonical class ref currently live, sorted by
// arena id so a searcher iterating every class (rewrite.ToSearcher in
// particular) visits them in a reproducible order across runs.
func (c *core[N]) classRefs() []enode.EClassRef {
	ids := make([]uint64, 0, len(c.classes))
	for id := range c.classes {
		if r, ok := c.uf.find(id); ok && r == id {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]enode.EClassRef, len(ids))
	for i, id := range ids {
		out[i] = enode.RefFromID(id)
	}
	return out
}

// classSig returns the identity EClassCall for ref's canonical class,
// expressed in that class's current free-slot signature (Subst mapping every
// signature slot to itself) — the natural "from inside the class" call a
// searcher roots its matching at.
func (c *core[N]) classSig(ref enode.EClassRef) (enode.EClassCall, error) {
	id, ok := c.tryCanonicalize(ref)
	if !ok {
		return enode.EClassCall{}, ErrUnknownClass
	}
	sig := c.classes[id.ID()].sig
	return enode.EClassCall{Ref: id, Subst: slot.Identity(sig)}, nil
}

// areSame reports whether a and b currently resolve to the same canonical
// class.
func (c *core[N]) areSame(a, b enode.EClassRef) bool {
	ra, aok := c.tryCanonicalize(a)
	rb, bok := c.tryCanonicalize(b)
	return aok && bok && ra == rb
}
