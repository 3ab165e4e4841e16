package pattern

import (
	"fmt"

	"github.com/katalvlaran/foresight/egraph"
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
	pkgerrors "github.com/pkg/errors"
)

// Failure reports an internal VM failure (a register referencing a class
// that no longer exists), carrying the instruction index it stopped at for
// diagnostics. It is distinct from an ordinary failed match, which simply
// contributes no result.
type Failure struct {
	Instr int
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("pattern: failed at instruction %d: %v", f.Instr, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Match executes prog against g starting with root bound to register 0,
// returning every successful match. An empty, non-nil result means the
// pattern compiled fine but nothing in the e-graph matched it.
func Match[N comparable](prog Program[N], g egraph.EGraphLike[N], root enode.EClassCall) ([]enode.PatternMatch[N], error) {
	regs := make([]enode.EClassCall, prog.regs)
	regs[0] = root
	out := []enode.PatternMatch[N]{}
	if err := exec(prog, g, regs, 0, enode.NewPatternMatch[N](), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func exec[N comparable](prog Program[N], g egraph.EGraphLike[N], regs []enode.EClassCall, ip int, m enode.PatternMatch[N], out *[]enode.PatternMatch[N]) error {
	if ip == len(prog.instrs) {
		*out = append(*out, m)
		return nil
	}
	in := prog.instrs[ip]
	switch in.kind {
	case kindBindVar:
		leaf := enode.AtomTree[N, enode.EClassCall](regs[in.out])
		return exec(prog, g, regs, ip+1, m.BindVar(in.v, leaf), out)

	case kindCompare:
		if !regs[in.out].Equal(regs[in.cmpTo]) {
			return nil
		}
		return exec(prog, g, regs, ip+1, m, out)

	case kindBindNode:
		ref := regs[in.out].Ref
		nodes, err := g.NodesOf(ref)
		if err != nil {
			return &Failure{Instr: ip, Err: pkgerrors.Wrap(err, "nodes-of")}
		}
		for _, n := range nodes {
			if n.Op != in.op || len(n.Args) != len(in.childRegs) {
				continue
			}
			fresh, ok := matchDefsUses(m.Slots(), in.defs, in.uses, n.Defs, n.Uses)
			if !ok {
				continue
			}
			regs2 := append([]enode.EClassCall(nil), regs...)
			for i, cr := range in.childRegs {
				regs2[cr] = n.Args[i]
			}
			m2 := m
			for _, b := range fresh {
				m2 = m2.BindSlot(b.k, b.v)
			}
			if err := exec(prog, g, regs2, ip+1, m2, out); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

type slotBinding struct{ k, v slot.Slot }

// matchDefsUses checks that a pattern node's defs/uses line up positionally
// with a candidate node's, consistently with any slot already fixed earlier
// in this match (either by an outer BindNode or by an earlier occurrence of
// the same pattern slot). It returns only the newly discovered bindings, so
// the caller can fold them into the match with PatternMatch.BindSlot without
// re-inserting an already-bound key.
func matchDefsUses(existing slot.SlotMap, patDefs, patUses, nodeDefs, nodeUses []slot.Slot) ([]slotBinding, bool) {
	if len(patDefs) != len(nodeDefs) || len(patUses) != len(nodeUses) {
		return nil, false
	}
	var fresh []slotBinding
	bind := func(p, n slot.Slot) bool {
		if v, ok := existing.Get(p); ok {
			return v.Equal(n)
		}
		for _, b := range fresh {
			if b.k.Equal(p) {
				return b.v.Equal(n)
			}
		}
		fresh = append(fresh, slotBinding{p, n})
		return true
	}
	for i := range patDefs {
		if !bind(patDefs[i], nodeDefs[i]) {
			return nil, false
		}
	}
	for i := range patUses {
		if !bind(patUses[i], nodeUses[i]) {
			return nil, false
		}
	}
	return fresh, true
}
