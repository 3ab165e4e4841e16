// Package enode defines the slotted node representation that the e-graph
// in package egraph hash-conses: ENode, the class-reference-plus-renaming
// pair EClassCall, the canonical ShapeCall decomposition that makes
// hash-consing alpha-invariant, and MixedTree, the tree shape shared by
// concrete input trees and rewrite patterns.
//
// None of the types here know how to store or look anything up; they are
// plain, comparable-by-value data. The e-graph (package egraph) is what
// gives EClassRef meaning, and the pattern compiler (package pattern) is
// what turns a MixedTree pattern into something executable.
package enode
