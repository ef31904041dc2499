package mvreg

import "fmt"

// maxTerminalHops bounds resolveToTerminal against a malformed anchor
// chain. Well-formed input converges within 2 hops; this is purely a
// defensive backstop against corrupt data, never exercised by valid input.
const maxTerminalHops = 64

// resolveToTerminal follows r.Anchor through applied until it reaches a
// Set. redo() uses this to find what to push onto the undo stack after
// resolving a chain of undo/redo Restores.
func resolveToTerminal[V any](applied map[OpId]*Operation[V], r *Operation[V]) (*Operation[V], error) {
	cur := r
	for hop := 0; hop < maxTerminalHops; hop++ {
		if cur.Kind == OpSet {
			return cur, nil
		}
		next, ok := applied[cur.Anchor]
		if !ok {
			return nil, fmt.Errorf("%w: restore %s anchors unresolved op %s", ErrInvariantViolation, cur.ID, cur.Anchor)
		}
		cur = next
	}
	return nil, fmt.Errorf("%w: restore-to-terminal chain from %s exceeded %d hops", ErrInvariantViolation, r.ID, maxTerminalHops)
}
