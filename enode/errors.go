package enode

import "errors"

// Sentinel errors for the enode package.
var (
	// ErrOverlappingDefsUses indicates an ENode was built with a slot that
	// appears in both Defs and Uses, violating the defs/uses disjointness
	// invariant (ADR-3).
	ErrOverlappingDefsUses = errors.New("enode: defs and uses overlap")
)
