// Package pattern compiles a MixedTree pattern into a register-based
// instruction tape and interprets that tape against an e-graph to produce
// matches.
//
// Compilation walks the pattern in preorder, assigning each node a register
// (the root gets register 0) and emitting one of three instructions:
// BindNode (the register's class must contain a node with this shape),
// BindVar (first occurrence of a pattern variable) or Compare (a repeated
// occurrence, enforcing equality with the first). Execution is depth-first
// with backtracking over BindNode's candidate nodes; a full instruction walk
// that reaches the end of the tape yields one PatternMatch.
package pattern
