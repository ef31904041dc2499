package mvreg

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// graphStore is the append-only operation graph store: every applied
// operation, keyed by OpId, plus the current head set and the OpId-greatest
// applied operation.
type graphStore[V any] struct {
	applied map[OpId]*Operation[V]
	heads   mapset.Set[OpId]
	lastOp  *OpId
}

func newGraphStore[V any]() *graphStore[V] {
	return &graphStore[V]{
		applied: make(map[OpId]*Operation[V]),
		heads:   mapset.NewSet[OpId](),
	}
}

func (g *graphStore[V]) isApplied(id OpId) bool {
	_, ok := g.applied[id]
	return ok
}

// ready reports whether every predecessor of op is already applied. This is
// the causal-readiness check used by both direct apply and the lobby.
func (g *graphStore[V]) ready(op *Operation[V]) bool {
	for _, pred := range op.Preds.ToSlice() {
		if !g.isApplied(pred) {
			return false
		}
	}
	return true
}

// insert admits op into the graph: not already applied, and preconditioned
// on ready(op) by the caller. Removes op's preds from heads, adds op as a
// new head, and advances lastOp.
func (g *graphStore[V]) insert(op *Operation[V]) {
	g.applied[op.ID] = op
	for _, pred := range op.Preds.ToSlice() {
		g.heads.Remove(pred)
	}
	g.heads.Add(op.ID)
	if g.lastOp == nil || g.lastOp.Compare(op.ID) < 0 {
		id := op.ID
		g.lastOp = &id
	}
}
