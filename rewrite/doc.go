// Package rewrite pairs pattern searching with command application: a Rule
// is a Searcher producing Matches plus an Applier turning each Match into a
// batch of queued Add/UnionMany commands. Commands reference e-classes
// symbolically until CommandQueue.Apply realizes them against a concrete
// e-graph, so an applier never has to interleave its own adds with the
// match it's still iterating over.
package rewrite
