package pattern

import (
	"github.com/katalvlaran/foresight/enode"
	"github.com/katalvlaran/foresight/slot"
)

type instrKind int

const (
	kindBindNode instrKind = iota
	kindBindVar
	kindCompare
)

type instr[N comparable] struct {
	kind      instrKind
	out       int
	op        N
	defs      []slot.Slot
	uses      []slot.Slot
	childRegs []int
	v         enode.PatternVar
	cmpTo     int
}

// Program is a compiled pattern: a flat instruction tape plus the register
// count it needs.
type Program[N comparable] struct {
	instrs []instr[N]
	regs   int
}

// Compile turns a Pattern into a Program. The root always occupies
// register 0.
func Compile[N comparable](p enode.Pattern[N]) Program[N] {
	c := &compiler[N]{firstOcc: map[enode.PatternVar]int{}}
	root := c.alloc()
	c.compile(p, root)
	return Program[N]{instrs: c.instrs, regs: c.next}
}

type compiler[N comparable] struct {
	instrs   []instr[N]
	next     int
	firstOcc map[enode.PatternVar]int
}

func (c *compiler[N]) alloc() int {
	r := c.next
	c.next++
	return r
}

func (c *compiler[N]) compile(p enode.Pattern[N], reg int) {
	if p.IsAtom() {
		v := p.Atom()
		if first, seen := c.firstOcc[v]; seen {
			c.instrs = append(c.instrs, instr[N]{kind: kindCompare, out: reg, cmpTo: first})
			return
		}
		c.firstOcc[v] = reg
		c.instrs = append(c.instrs, instr[N]{kind: kindBindVar, out: reg, v: v})
		return
	}

	children := p.Children()
	childRegs := make([]int, len(children))
	for i := range children {
		childRegs[i] = c.alloc()
	}
	c.instrs = append(c.instrs, instr[N]{
		kind:      kindBindNode,
		out:       reg,
		op:        p.Op(),
		defs:      p.Defs(),
		uses:      p.Uses(),
		childRegs: childRegs,
	})
	for i, ch := range children {
		c.compile(ch, childRegs[i])
	}
}
