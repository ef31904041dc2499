package mvreg

import "github.com/kywong-dev/mvregister/internal/util"

// Clock is a per-replica Lamport counter. It starts at 0.
type Clock struct {
	actor   ActorId
	counter uint64
}

// NewClock returns a Clock scoped to actor, starting at counter 0.
func NewClock(actor ActorId) *Clock {
	return &Clock{actor: actor}
}

// Tick peeks the next OpId for this actor without advancing the counter.
// Counter advance only ever happens through Sync.
func (c *Clock) Tick() OpId {
	return OpId{Counter: c.counter + 1, Actor: c.actor}
}

// Sync advances the counter to max(counter, remote). Call it with the
// counter of any operation right after that operation is applied, so that
// subsequent local operations observe it.
func (c *Clock) Sync(remote uint64) {
	c.counter = util.Max(c.counter, remote)
}

// Value returns the current counter without advancing it.
func (c *Clock) Value() uint64 {
	return c.counter
}
