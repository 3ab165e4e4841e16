package egraph

import (
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
)

// classData is the arena entry for one e-class: its free-slot signature (the
// Numeric parameters a caller's EClassCall.Subst maps onto real slots), the
// set of node shapes known to denote it, and the set of classes that have at
// least one member referencing it directly (consulted during rebuild's
// upward pass so a merge only revisits nodes that can possibly be affected).
type classData[N comparable] struct {
	sig     slot.SlotSet
	members map[string]enode.ENode[N] // hash-cons key -> fully-numeric shape
	parents map[uint64]struct{}
	values  map[string]any // analysis name -> lattice value
}

func newClassData[N comparable](sig slot.SlotSet) *classData[N] {
	return &classData[N]{
		sig:     sig,
		members: map[string]enode.ENode[N]{},
		parents: map[uint64]struct{}{},
		values:  map[string]any{},
	}
}

func (c *classData[N]) clone() *classData[N] {
	out := newClassData[N](c.sig)
	for k, v := range c.members {
		out.members[k] = v
	}
	for k := range c.parents {
		out.parents[k] = struct{}{}
	}
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

// pendingUnion records a deferred union request: the two (already
// canonicalized at enqueue time, but possibly stale by the time rebuild
// drains the queue) class refs to merge, and a's-numbering -> b's-numbering
// correspondence recovered by composing the two EClassCall substitutions
// that justified the union.
type pendingUnion struct {
	a, b       uint64
	renameAToB slot.SlotMap
}

// core holds the single algorithm implementation shared by EGraph and
// Mutable: a union-find over class ids, the class arena, the global
// hash-cons table, the queue of unions awaiting rebuild, and the registered
// analyses. Both facades wrap a *core and differ only in whether operations
// clone it first.
type core[N comparable] struct {
	uf       *disjointSet
	classes  map[uint64]*classData[N]
	hashcons map[string]uint64 // shape key -> canonical class id
	pending  []pendingUnion
	analyses []Analysis[N]
	nextID   uint64
	log      Logger
}

func newCore[N comparable](opts ...Option) *core[N] {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &core[N]{
		uf:       newDisjointSet(),
		classes:  map[uint64]*classData[N]{},
		hashcons: map[string]uint64{},
		log:      cfg.logger,
	}
}

func (c *core[N]) clone() *core[N] {
	out := &core[N]{
		uf:       c.uf.clone(),
		classes:  make(map[uint64]*classData[N], len(c.classes)),
		hashcons: make(map[string]uint64, len(c.hashcons)),
		pending:  append([]pendingUnion(nil), c.pending...),
		analyses: append([]Analysis[N](nil), c.analyses...),
		nextID:   c.nextID,
		log:      c.log,
	}
	for k, v := range c.classes {
		out.classes[k] = v.clone()
	}
	for k, v := range c.hashcons {
		out.hashcons[k] = v
	}
	return out
}

// classCount reports the number of live (canonical) classes.
func (c *core[N]) classCount() int {
	n := 0
	for id := range c.classes {
		if r, ok := c.uf.find(id); ok && r == id {
			n++
		}
	}
	return n
}

// requiresRebuild reports whether unions are queued but not yet applied.
func (c *core[N]) requiresRebuild() bool {
	return len(c.pending) > 0
}

func restrictToSig(full slot.SlotMap, sig slot.SlotSet) slot.SlotMap {
	return full.Restrict(sig)
}
