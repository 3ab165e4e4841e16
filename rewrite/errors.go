package rewrite

import "errors"

var (
	// ErrUnboundVar is returned when an applier's pattern references a
	// pattern variable the match never bound.
	ErrUnboundVar = errors.New("rewrite: applier referenced an unbound pattern variable")

	// ErrUnknownSymbol indicates a command queue referenced a Symbol that
	// was never produced by Add or Known on the same queue.
	ErrUnknownSymbol = errors.New("rewrite: unknown command symbol")
)
