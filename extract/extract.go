package extract

import (
	"cmp"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
)

// CostFunction maps a node's operator, its defs/uses and the already-costed
// children to a cost in a totally ordered C.
type CostFunction[N comparable, C cmp.Ordered] func(op N, defs, uses []slot.Slot, childCosts []C) C

// Extracted is a fully concrete term picked out of an e-class's member set:
// unlike enode.Tree it never bottoms out in an e-class reference, since
// extraction always resolves every child down to its own chosen operator
// node.
type Extracted[N comparable] struct {
	Op       N
	Defs     []slot.Slot
	Uses     []slot.Slot
	Children []Extracted[N]
}

type choice[N comparable, C cmp.Ordered] struct {
	cost C
	tree Extracted[N]
}

// ExtractionAnalysis is the egraph.Analysis that keeps, per class, the
// minimum-cost member and the concrete tree it expands to. Join always
// keeps the cheaper of the two classes being merged, so the value attached
// to a class is always a minimum over every member it has ever absorbed —
// not just the one Make first saw it with.
type ExtractionAnalysis[N comparable, C cmp.Ordered] struct {
	name string
	cost CostFunction[N, C]
}

// NewExtractionAnalysis returns an ExtractionAnalysis registered under
// name, ranking members by cost.
func NewExtractionAnalysis[N comparable, C cmp.Ordered](name string, cost CostFunction[N, C]) ExtractionAnalysis[N, C] {
	return ExtractionAnalysis[N, C]{name: name, cost: cost}
}

func (e ExtractionAnalysis[N, C]) Name() string { return e.name }

func (e ExtractionAnalysis[N, C]) Make(op N, defs, uses []slot.Slot, args []any) any {
	children := make([]Extracted[N], len(args))
	childCosts := make([]C, len(args))
	for i, a := range args {
		c := a.(choice[N, C])
		children[i] = c.tree
		childCosts[i] = c.cost
	}
	return choice[N, C]{
		cost: e.cost(op, defs, uses, childCosts),
		tree: Extracted[N]{Op: op, Defs: defs, Uses: uses, Children: children},
	}
}

func (e ExtractionAnalysis[N, C]) Join(a, b any) (any, error) {
	ca, cb := a.(choice[N, C]), b.(choice[N, C])
	if ca.cost <= cb.cost {
		return ca, nil
	}
	return cb, nil
}

// Extract reads the value ExtractionAnalysis `name` computed for root and
// returns the concrete tree it chose. It reports false if the analysis was
// never registered or root's class has no recorded value yet.
func Extract[N comparable, C cmp.Ordered](g egraph.EGraphLike[N], name string, root enode.EClassRef) (Extracted[N], bool) {
	v, ok := g.AnalysisValue(name, root)
	if !ok {
		return Extracted[N]{}, false
	}
	c, ok := v.(choice[N, C])
	if !ok {
		return Extracted[N]{}, false
	}
	return c.tree, true
}
