package egraph

import "errors"

// Sentinel errors for the egraph package. Precondition violations and
// internal invariant failures are both fatal per the core's error-handling
// design: callers should treat any of these as a bug, not a recoverable
// condition, and the e-graph value they were raised against must not be
// used further.
var (
	// ErrUnknownClass indicates a reference to an e-class that was never
	// allocated, or was allocated in a different e-graph.
	ErrUnknownClass = errors.New("egraph: unknown e-class")

	// ErrInvalidNode indicates ENode.Validate failed (defs/uses overlap).
	ErrInvalidNode = errors.New("egraph: invalid node")

	// ErrInvariantViolation indicates checkInvariants found the e-graph in
	// an inconsistent state. This signals a bug in the engine itself.
	ErrInvariantViolation = errors.New("egraph: invariant violation")

	// ErrAnalysisContradiction is returned by an analysis's Join when two
	// values are fundamentally incompatible (e.g. two distinct constants
	// unioned by a constant-folding analysis). The core re-raises it
	// without attempting recovery.
	ErrAnalysisContradiction = errors.New("egraph: analysis contradiction")
)
