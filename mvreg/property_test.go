package mvreg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReapplyIsNoOp verifies that applying the same op twice leaves state
// unchanged after the first application.
func TestReapplyIsNoOp(t *testing.T) {
	a := Create[int]("A", false)
	op := a.Set(1)
	before := a.Get()
	beforeHeads := a.TerminalHeads()

	a.Apply([]*Operation[int]{op})

	require.Equal(t, before, a.Get())
	require.Equal(t, beforeHeads, a.TerminalHeads())
}

// TestDeliveryOrderIndependence verifies that a three-operation dependency
// chain converges to the same final state no matter what order its
// operations are delivered in, once all predecessors have arrived.
func TestDeliveryOrderIndependence(t *testing.T) {
	src := Create[int]("A", false)
	o1 := src.Set(1)
	o2 := src.Set(2)
	o3 := src.Set(3)
	ops := []*Operation[int]{o1, o2, o3}

	perms := [][]int{
		{0, 1, 2}, {0, 2, 1}, {1, 0, 2},
		{1, 2, 0}, {2, 0, 1}, {2, 1, 0},
	}
	for _, perm := range perms {
		dst := Create[int]("A", false)
		for _, i := range perm {
			dst.Apply([]*Operation[int]{ops[i]})
		}
		require.Equal(t, []int{3}, dst.Get(), "permutation %v", perm)
	}
}

// TestStackLocality verifies that an actor's undo/redo stacks contain only
// operations it authored itself, even when foreign operations are
// interleaved between its own.
func TestStackLocality(t *testing.T) {
	a := Create[int]("A", false)
	b := Create[int]("B", false)

	a.Set(1)
	b.Set(99)
	a.Apply(b.PendingOps())
	a.Set(2) // a's own set, with a foreign op as a predecessor in between
	a.Undo()

	for _, op := range a.UndoStack() {
		require.Equal(t, ActorId("A"), op.ID.Actor)
	}
	for _, op := range a.RedoStack() {
		require.Equal(t, ActorId("A"), op.ID.Actor)
	}
}

// TestRedoClearing verifies that any successful local set/delete clears the
// redo stack.
func TestRedoClearing(t *testing.T) {
	a := Create[int]("A", false)
	a.Set(1)
	a.Set(2)
	a.Undo()
	require.NotEmpty(t, a.RedoStack())

	a.Set(3)
	require.Empty(t, a.RedoStack())

	a.Undo()
	require.NotEmpty(t, a.RedoStack())
	a.Delete()
	require.Empty(t, a.RedoStack())
}

// TestDeleteGuard verifies that delete on an empty register is a no-op that
// produces no operation.
func TestDeleteGuard(t *testing.T) {
	a := Create[int]("A", false)
	require.Nil(t, a.Delete())

	a.Set(1)
	a.Delete()
	require.Nil(t, a.Delete(), "register already empty after the first delete")
}

// TestRestoreChainBound verifies that resolving a redo's anchor down to a
// terminal set takes at most two hops.
func TestRestoreChainBound(t *testing.T) {
	a := Create[int]("A", false)
	a.Set(1)
	a.Set(2)
	a.Undo()
	redoOp := a.Redo()
	require.NotNil(t, redoOp)

	hops := 0
	cur := redoOp
	for cur.Kind == OpRestore {
		hops++
		require.LessOrEqual(t, hops, 2, "restore-to-terminal chain exceeded bound")
		next, ok := a.graph.applied[cur.Anchor]
		require.True(t, ok)
		cur = next
	}
}

// TestTraceShape verifies that every terminal-head entry's opIdTrace begins
// at a current head and ends at the terminal set's own OpId.
func TestTraceShape(t *testing.T) {
	a := Create[int]("A", false)
	b := Create[int]("B", false)

	a.Set(1)
	a.Set(2)
	a.Undo()
	b.Set(3)
	a.Apply(b.PendingOps())
	b.Apply(a.PendingOps())

	heads := a.graph.heads
	for _, th := range a.TerminalHeads() {
		require.NotEmpty(t, th.Metadata.OpIdTrace)
		require.True(t, heads.Contains(th.Metadata.OpIdTrace[0]), "trace must start at a head")
		last := th.Metadata.OpIdTrace[len(th.Metadata.OpIdTrace)-1]
		require.Equal(t, th.Op.ID, last, "trace must end at the terminal op's own id")
	}
}

// TestResolutionCacheMatchesUncached verifies that enabling the optional
// resolution cache never changes the resolved value list, only how it's
// computed.
func TestResolutionCacheMatchesUncached(t *testing.T) {
	build := func(useCache bool) *Replica[int] {
		r := Create[int]("A", useCache)
		r.Set(1)
		r.Set(2)
		r.Set(3)
		r.Undo()
		r.Undo()
		r.Redo()
		r.Redo()
		return r
	}

	cached := build(true)
	uncached := build(false)

	require.Equal(t, uncached.Get(), cached.Get())
}
