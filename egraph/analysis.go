package egraph

import (
	"github.com/katalvlaran/foresight/slot"
	pkgerrors "github.com/pkg/errors"
)

// Analysis attaches a lattice value to every e-class and keeps it consistent
// as the e-graph grows. Make computes a class's initial value from one of
// its member nodes and the values already known for that node's argument
// classes; Join combines the values of two classes being unioned and must
// return ErrAnalysisContradiction (wrapped with context) if the two values
// are fundamentally incompatible.
type Analysis[N comparable] interface {
	Name() string
	Make(op N, defs, uses []slot.Slot, args []any) any
	Join(a, b any) (any, error)
}

// registerAnalysis attaches a to the core and seeds values for every class
// already present, in arbitrary order repeated to a fixpoint since a class's
// value may depend on a not-yet-visited argument class.
func (c *core[N]) registerAnalysis(a Analysis[N]) {
	c.analyses = append(c.analyses, a)
	for pass := 0; pass < len(c.classes)+1; pass++ {
		changed := false
		for id, cd := range c.classes {
			if _, ok := cd.values[a.Name()]; ok {
				continue
			}
			if v, ok := c.tryMake(a, id, cd); ok {
				cd.values[a.Name()] = v
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

// tryMake computes Make over every member of cd whose argument classes
// already have a value for a, then folds the results together with Join.
// Folding across every ready member (rather than stopping at the first)
// matters whenever a class already has more than one member by the time an
// analysis is registered on it — an analysis like extraction's "minimum
// cost representative" is only correct if every member was actually
// considered, not just whichever one Go's map iteration happened to visit
// first.
func (c *core[N]) tryMake(a Analysis[N], id uint64, cd *classData[N]) (any, bool) {
	var acc any
	have := false
	for _, m := range cd.members {
		args := make([]any, len(m.Args))
		ok := true
		for i, arg := range m.Args {
			ac, exists := c.classes[arg.Ref.ID()]
			if !exists {
				ok = false
				break
			}
			v, has := ac.values[a.Name()]
			if !has {
				ok = false
				break
			}
			args[i] = v
		}
		if !ok {
			continue
		}
		v := a.Make(m.Op, m.Defs, m.Uses, args)
		if !have {
			acc, have = v, true
			continue
		}
		joined, err := a.Join(acc, v)
		if err != nil {
			// A contradiction between two members' own make results is
			// the same kind of fatal condition joinAnalyses raises during
			// rebuild; registerAnalysis has no rebuild-style recovery
			// path to unwind to, so the value is simply left unset and
			// the caller sees no value for this class rather than a
			// silently wrong one.
			return nil, false
		}
		acc = joined
	}
	return acc, have
}

func (c *core[N]) analysisValue(name string, id uint64) (any, bool) {
	cd, ok := c.classes[id]
	if !ok {
		return nil, false
	}
	v, ok := cd.values[name]
	return v, ok
}

// joinAnalyses folds every registered analysis's Join over the surviving and
// absorbed classes' values, storing the result on the survivor. A
// contradiction aborts the whole rebuild: the core's analyses are left
// untouched by the caller once this returns an error.
func (c *core[N]) joinAnalyses(survivor, absorbed *classData[N]) error {
	for _, a := range c.analyses {
		av, aok := survivor.values[a.Name()]
		bv, bok := absorbed.values[a.Name()]
		switch {
		case aok && bok:
			joined, err := a.Join(av, bv)
			if err != nil {
				return pkgerrors.Wrapf(ErrAnalysisContradiction, "%s: %v", a.Name(), err)
			}
			survivor.values[a.Name()] = joined
		case bok:
			survivor.values[a.Name()] = bv
		}
	}
	return nil
}

func (c *core[N]) recomputeNewClassValues(id uint64, cd *classData[N], m N) {
	for _, a := range c.analyses {
		if v, ok := c.tryMake(a, id, cd); ok {
			cd.values[a.Name()] = v
		}
	}
	_ = m // placeholder to keep signature symmetric with future node-specific hooks
}
