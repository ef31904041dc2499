package mvreg

import "errors"

// Duplicate applies, not-yet-ready applies, and empty undo/redo/delete are
// never surfaced as errors... they're plain control flow (nil returns or
// silent no-ops) handled inline where they occur. Only the two fatal classes
// below get sentinel errors.
var (
	// ErrInvariantViolation means a Restore's anchor was not found in the
	// applied set at resolution time. This indicates the sender violated
	// causality and is not recoverable by the engine.
	ErrInvariantViolation = errors.New("mvreg: invariant violation")

	// ErrMalformedOpId means an OpId's wire form failed to parse: the
	// counter wasn't a valid non-negative integer, or the actor was empty.
	ErrMalformedOpId = errors.New("mvreg: malformed op id")
)
