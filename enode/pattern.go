package enode

import (
	"github.com/google/uuid"
	"github.com/katalvlaran/foresight/slot"
)

// Tree is a fully concrete term: a MixedTree whose leaves are e-class
// calls. EGraph.Add walks a Tree bottom-up.
type Tree[N comparable] = MixedTree[N, EClassCall]

// Pattern is a MixedTree whose leaves are unknown subtrees (PatternVar).
// The pattern compiler (package pattern) turns a Pattern into a matching
// program.
type Pattern[N comparable] = MixedTree[N, PatternVar]

// PatternVar is a fresh identity standing for an unknown subtree inside a
// Pattern. Two pattern variables are equal only if they are literally the
// same variable: reusing one within a pattern expresses a repeated
// subterm, which the matching VM enforces with a Compare instruction.
type PatternVar struct {
	id uuid.UUID
}

// FreshVar allocates a new, globally distinct pattern variable.
func FreshVar() PatternVar { return PatternVar{id: uuid.New()} }

// Equal reports whether v and o are the same variable.
func (v PatternVar) Equal(o PatternVar) bool { return v.id == o.id }

func (v PatternVar) String() string { return "?" + v.id.String()[:8] }

// PatternMatch is the result of successfully matching a Pattern against the
// e-graph: a binding from each pattern variable to the Tree it matched,
// plus a slot substitution recovering how the pattern's own Defs
// occurrences were instantiated.
type PatternMatch[N comparable] struct {
	vars  map[PatternVar]Tree[N]
	slots slot.SlotMap
}

// NewPatternMatch returns an empty match.
func NewPatternMatch[N comparable]() PatternMatch[N] {
	return PatternMatch[N]{vars: map[PatternVar]Tree[N]{}, slots: slot.NewSlotMap()}
}

// BindVar returns m extended with v bound to t. It is the caller's
// responsibility to ensure v was not already bound to something else; the
// matching VM only ever calls BindVar on first occurrence (see Compare for
// repeats).
func (m PatternMatch[N]) BindVar(v PatternVar, t Tree[N]) PatternMatch[N] {
	out := m.clone()
	out.vars[v] = t
	return out
}

// Var looks up the subtree bound to v.
func (m PatternMatch[N]) Var(v PatternVar) (Tree[N], bool) {
	t, ok := m.vars[v]
	return t, ok
}

// Vars returns every bound pattern variable; order is unspecified.
func (m PatternMatch[N]) Vars() []PatternVar {
	out := make([]PatternVar, 0, len(m.vars))
	for v := range m.vars {
		out = append(out, v)
	}
	return out
}

// BindSlot returns m with its slot substitution extended by k -> v,
// fixing a Defs occurrence from the pattern to the concrete slot the match
// instantiated it with.
func (m PatternMatch[N]) BindSlot(k, v slot.Slot) PatternMatch[N] {
	out := m.clone()
	out.slots = out.slots.MustInsert(k, v)
	return out
}

// Slots returns the accumulated slot substitution.
func (m PatternMatch[N]) Slots() slot.SlotMap { return m.slots }

// Merge combines m with other, keeping m's bindings where both define the
// same variable or slot. Used to fold together matches produced by
// independently-searched sub-patterns (e.g. rule aggregation).
func (m PatternMatch[N]) Merge(other PatternMatch[N]) PatternMatch[N] {
	out := m.clone()
	for v, t := range other.vars {
		if _, ok := out.vars[v]; !ok {
			out.vars[v] = t
		}
	}
	for _, k := range other.slots.Keys() {
		if _, ok := out.slots.Get(k); !ok {
			v, _ := other.slots.Get(k)
			out.slots = out.slots.MustInsert(k, v)
		}
	}
	return out
}

func (m PatternMatch[N]) clone() PatternMatch[N] {
	vars := make(map[PatternVar]Tree[N], len(m.vars)+1)
	for k, v := range m.vars {
		vars[k] = v
	}
	return PatternMatch[N]{vars: vars, slots: m.slots}
}
