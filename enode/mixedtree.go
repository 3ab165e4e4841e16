package enode

import "github.com/katalvlaran/foresight/slot"

// MixedTree is a tree that bottoms out in either a concrete atom (an
// EClassCall, for an already-built term) or, when A is PatternVar, an
// unknown subtree. The same shape is reused for both concrete trees and
// rewrite patterns so the pattern compiler (package pattern) and EGraph.Add
// (package egraph) can share one walk.
type MixedTree[N comparable, A any] struct {
	isAtom bool
	atom   A

	op       N
	defs     []slot.Slot
	uses     []slot.Slot
	children []MixedTree[N, A]
}

// NodeTree builds an interior node over children.
func NodeTree[N comparable, A any](op N, defs, uses []slot.Slot, children ...MixedTree[N, A]) MixedTree[N, A] {
	return MixedTree[N, A]{
		op:       op,
		defs:     append([]slot.Slot(nil), defs...),
		uses:     append([]slot.Slot(nil), uses...),
		children: append([]MixedTree[N, A](nil), children...),
	}
}

// AtomTree builds a leaf wrapping a.
func AtomTree[N comparable, A any](a A) MixedTree[N, A] {
	return MixedTree[N, A]{isAtom: true, atom: a}
}

// IsAtom reports whether t is a leaf atom rather than an interior node.
func (t MixedTree[N, A]) IsAtom() bool { return t.isAtom }

// Atom returns the wrapped atom. It panics if t is not a leaf; callers must
// check IsAtom first.
func (t MixedTree[N, A]) Atom() A {
	if !t.isAtom {
		panic("enode: Atom called on an interior MixedTree node")
	}
	return t.atom
}

// Op, Defs, Uses, Children expose an interior node's fields. They panic on
// a leaf atom; callers must check IsAtom first.
func (t MixedTree[N, A]) Op() N                    { t.mustNode(); return t.op }
func (t MixedTree[N, A]) Defs() []slot.Slot        { t.mustNode(); return t.defs }
func (t MixedTree[N, A]) Uses() []slot.Slot        { t.mustNode(); return t.uses }
func (t MixedTree[N, A]) Children() []MixedTree[N, A] { t.mustNode(); return t.children }

func (t MixedTree[N, A]) mustNode() {
	if t.isAtom {
		panic("enode: node accessor called on a leaf MixedTree atom")
	}
}

// MapAtoms rewrites every atom in t through f, preserving shape.
func MapAtoms[N comparable, A, B any](t MixedTree[N, A], f func(A) B) MixedTree[N, B] {
	if t.isAtom {
		return AtomTree[N, B](f(t.atom))
	}
	children := make([]MixedTree[N, B], len(t.children))
	for i, c := range t.children {
		children[i] = MapAtoms(c, f)
	}
	return NodeTree[N, B](t.op, t.defs, t.uses, children...)
}
