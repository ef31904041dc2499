// Package mvreg implements a replicated multi-value register with local
// undo/redo: a Lamport-ordered operation graph, a causal-readiness lobby, a
// resolver that walks restores back to terminal sets, and per-actor
// undo/redo stacks.
//
// The engine is a pure, synchronous library: Apply runs to completion with
// no locks, no I/O, and no goroutines. Transport, persistence, and
// higher-level data types (lists, maps, text) are external collaborators.
package mvreg

import (
	"fmt"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sanity-io/litter"

	"github.com/kywong-dev/mvregister/internal/util"
)

// NewActorID mints a fresh opaque actor identifier. A convenience for
// callers that don't already have a stable identity scheme; the engine
// itself treats ActorId as an arbitrary string.
func NewActorID() ActorId {
	return ActorId(uuid.NewString())
}

// Replica is the engine's public facade: one actor's view of the
// register, with its own operation graph, lobby, resolver, and undo/redo
// stacks.
type Replica[V any] struct {
	actor ActorId
	clock *Clock
	graph *graphStore[V]
	lobby *lobby[V]
	cache *resolutionCache[V]
	stack undoRedoStacks[V]

	resolved []resolvedEntry[V] // cached result of the last resolveHeads

	localOps []*Operation[V] // this actor's own locally-generated ops, append-only

	log      *slog.Logger
	applying bool // re-entrancy guard
}

// Create returns a new, empty Replica for actorId. useCache enables the
// optional resolution cache.
func Create[V any](actorId ActorId, useCache bool) *Replica[V] {
	var cache *resolutionCache[V]
	if useCache {
		cache = newResolutionCache[V]()
	}
	return &Replica[V]{
		actor: actorId,
		clock: NewClock(actorId),
		graph: newGraphStore[V](),
		lobby: newLobby[V](),
		cache: cache,
		log:   slog.Default().With("actor", string(actorId)),
	}
}

func (r *Replica[V]) currentHeadsSnapshot() mapset.Set[OpId] {
	return mapset.NewSet(r.graph.heads.ToSlice()...)
}

// Apply admits a batch of received or self-produced operations. Empty
// (nil) entries are skipped; re-applying an already-applied OpId is a
// silent no-op.
func (r *Replica[V]) Apply(ops []*Operation[V]) {
	if r.applying {
		panic("mvreg: Apply called re-entrantly; queue batches between Apply calls")
	}
	r.applying = true
	defer func() { r.applying = false }()

	for _, op := range ops {
		if op == nil {
			continue
		}
		r.applyOne(op)
	}
}

// applyOne is the admission routine: idempotence check, causal readiness
// check (deferring to the lobby when not ready), admission, and a
// fixed-point drain of the lobby for newly-ready operations.
func (r *Replica[V]) applyOne(op *Operation[V]) {
	if r.graph.isApplied(op.ID) {
		return // already applied
	}
	if !r.graph.ready(op) {
		r.lobby.hold(op)
		r.log.Debug("deferred to lobby", "op", op.ID.String(), "lobby_size", r.lobby.size())
		return // not yet causally ready
	}

	r.admit(op)

	for {
		next := r.lobby.popReady(r.graph)
		if next == nil {
			break
		}
		r.log.Debug("admitted from lobby", "op", next.ID.String())
		r.admit(next)
	}
}

// admit inserts op into the graph, advances the clock, and recomputes the
// resolved value list. It never touches the undo/redo stacks: those are
// pushed only by the local mutation methods below.
func (r *Replica[V]) admit(op *Operation[V]) {
	r.graph.insert(op)
	r.clock.Sync(op.ID.Counter)
	r.recompute()
}

func (r *Replica[V]) recompute() {
	res := newResolver(r.graph.applied, r.cache)
	r.resolved = res.resolveHeads(r.graph.heads)
	r.log.Debug("resolved", "heads", r.graph.heads.Cardinality(), "entries", len(r.resolved))
}

// Get returns the register's current ordered values.
func (r *Replica[V]) Get() []V {
	present := filterPresent(r.resolved)
	values := make([]V, len(present))
	for i, e := range present {
		values[i] = e.terminal.Value
	}
	return values
}

func filterPresent[V any](entries []resolvedEntry[V]) []resolvedEntry[V] {
	return util.Filter(entries, func(e resolvedEntry[V]) bool { return e.terminal.HasValue })
}

// Set generates a Set operation, applies it locally, pushes it onto the
// undo stack, clears the redo stack, and returns it for broadcast.
func (r *Replica[V]) Set(value V) *Operation[V] {
	op := NewSet(r.clock.Tick(), r.currentHeadsSnapshot(), value)
	r.applyOne(op)
	r.stack.pushUndo(op)
	r.stack.clearRedo()
	r.localOps = append(r.localOps, op)
	return op
}

// Delete generates a delete (a Set with no value) unless the register is
// already empty, in which case it returns nil.
func (r *Replica[V]) Delete() *Operation[V] {
	if len(filterPresent(r.resolved)) == 0 {
		return nil
	}
	op := NewDelete[V](r.clock.Tick(), r.currentHeadsSnapshot())
	r.applyOne(op)
	r.stack.pushUndo(op)
	r.stack.clearRedo()
	r.localOps = append(r.localOps, op)
	return op
}

// Undo pops the actor's own undo stack and emits a Restore anchored at the
// popped operation, or returns nil if the stack is empty.
func (r *Replica[V]) Undo() *Operation[V] {
	anchor, ok := r.stack.popUndo()
	if !ok {
		return nil
	}
	op := NewRestore[V](r.clock.Tick(), r.currentHeadsSnapshot(), anchor.ID)
	r.applyOne(op)
	r.stack.pushRedo(op)
	r.localOps = append(r.localOps, op)
	return op
}

// Redo pops the actor's own redo stack and emits a new Restore anchored at
// the popped Restore, resolves it down to its terminal Set and pushes that
// onto the undo stack (so the next undo reverts the just-redone value),
// and returns the new Restore. Returns nil if the redo stack is empty.
func (r *Replica[V]) Redo() *Operation[V] {
	anchor, ok := r.stack.popRedo()
	if !ok {
		return nil
	}
	op := NewRestore[V](r.clock.Tick(), r.currentHeadsSnapshot(), anchor.ID)
	r.applyOne(op)

	terminal, err := resolveToTerminal(r.graph.applied, op)
	if err != nil {
		panic(err)
	}
	r.stack.pushUndo(terminal)
	r.localOps = append(r.localOps, op)
	return op
}

// UndoStack returns a snapshot of this actor's own undo stack.
func (r *Replica[V]) UndoStack() []*Operation[V] {
	return r.stack.snapshotUndo()
}

// RedoStack returns a snapshot of this actor's own redo stack.
func (r *Replica[V]) RedoStack() []*Operation[V] {
	return r.stack.snapshotRedo()
}

// TerminalHeads exposes the resolver's last output: every (Set, metadata)
// pair reachable from the current heads, for introspection and tests.
func (r *Replica[V]) TerminalHeads() []TerminalHead[V] {
	out := make([]TerminalHead[V], len(r.resolved))
	for i, e := range r.resolved {
		out[i] = TerminalHead[V]{
			Op: e.terminal,
			Metadata: ResolutionMetadata{
				OpIdTrace:       append([]OpId(nil), e.meta.trace...),
				ResolutionDepth: e.meta.depth,
			},
		}
	}
	return out
}

// DeepestResolution returns the largest resolution depth among the current
// terminal heads, a convenience over TerminalHeads. It returns 0 when there
// are no terminal heads.
func (r *Replica[V]) DeepestResolution() int {
	return deepest(r.resolved)
}

func deepest[V any](entries []resolvedEntry[V]) int {
	return util.Reduce(entries, func(e resolvedEntry[V], acc int) int {
		return util.Choose(e.meta.depth > acc, e.meta.depth, acc)
	}, 0)
}

// PendingOps returns every operation this actor has generated locally
// since the replica was created. It is bookkeeping for whatever external
// collaborator does broadcast; the engine neither sends nor receives
// anything itself.
func (r *Replica[V]) PendingOps() []*Operation[V] {
	out := make([]*Operation[V], len(r.localOps))
	copy(out, r.localOps)
	return out
}

// Dump renders the replica's internal state for debugging: graph size,
// heads, lobby occupancy, both stacks, and the current value list.
func (r *Replica[V]) Dump() string {
	heads := r.graph.heads.ToSlice()
	headStrs := make([]string, len(heads))
	for i, h := range heads {
		headStrs[i] = h.String()
	}
	return litter.Sdump(struct {
		Actor      ActorId
		AppliedOps int
		Heads      []string
		LobbySize  int
		UndoDepth  int
		RedoDepth  int
		Values     []V
	}{
		Actor:      r.actor,
		AppliedOps: len(r.graph.applied),
		Heads:      headStrs,
		LobbySize:  r.lobby.size(),
		UndoDepth:  len(r.stack.undo),
		RedoDepth:  len(r.stack.redo),
		Values:     r.Get(),
	})
}

// LastOp returns the OpId-greatest applied operation, if any.
func (r *Replica[V]) LastOp() (OpId, bool) {
	if r.graph.lastOp == nil {
		return OpId{}, false
	}
	return *r.graph.lastOp, true
}

func (r *Replica[V]) String() string {
	return fmt.Sprintf("Replica{actor=%s, applied=%d, values=%v}", r.actor, len(r.graph.applied), r.Get())
}
