// Package egraph implements Foresight's hash-consed, slotted e-graph: the
// union-find over e-class identities, the congruence-closure hash-cons
// keyed by canonical node shapes, the deferred union / rebuild protocol
// that restores invariants after a batch of unions, and the analysis
// framework that keeps a lattice value attached to every class.
//
// The package offers the same algorithm through two faces, per the
// project's usual split between a hot mutable path and a safe immutable
// one (compare core.Graph's Clone/CloneEmpty in the sibling graph module):
//
//   - EGraph is immutable. Add and Union return a new value and leave the
//     receiver untouched.
//   - Mutable wraps the identical algorithm with in-place updates and a
//     Freeze method that snapshots it into an EGraph.
//
// Both share one private core so there is exactly one implementation of
// rebuild to get right.
package egraph
