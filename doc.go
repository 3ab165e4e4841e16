// Package foresight is a slotted, hash-consed e-graph for equality
// saturation: grow a term's equivalence class under a set of rewrite rules,
// then extract the cheapest representative back out.
//
// Everything lives under subpackages:
//
//	egraph/   — hash-consed e-classes, congruence closure, analyses
//	enode/    — slotted nodes, patterns and the mixed-tree representation
//	slot/     — the binder/slot algebra nodes and patterns share
//	pattern/  — the register-based pattern matching VM
//	rewrite/  — rules, searchers/appliers and the symbolic command queue
//	strategy/ — saturation combinators (repeat-until-stable, parallel map)
//	priority/ — rule scheduling and weighted sampling
//	extract/  — cost-based extraction of a concrete term from a class
//
// A typical saturation loop builds a Mutable e-graph, adds the starting
// term, repeatedly runs a Strategy built from a rule set until it stops
// changing anything, then extracts the minimum-cost term out of the root
// class:
//
//	g := egraph.NewMutable[Op]()
//	root, _ := g.AddTree(term)
//	run := strategy.RepeatUntilStable(strategy.MaximalRuleApplication(rules))
//	_, _ = run(g, struct{}{}, strategy.Sequential{})
//	g.WithAnalysis(extract.NewExtractionAnalysis[Op, int]("cost", costFn))
//	best, _ := extract.Extract[Op, int](egraph.AsLike(g), "cost", root.Ref)
package foresight
