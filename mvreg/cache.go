package mvreg

// resolutionCache memoises the resolver's output for a given Restore OpId:
// the list of terminal Sets reachable from that Restore, as if it were
// itself a head, pre-sorted by opIdTrace descending. Entries are immutable
// once written, since a restore's anchor's preds never change
// post-application.
type resolutionCache[V any] struct {
	entries map[OpId][]resolvedEntry[V]
}

func newResolutionCache[V any]() *resolutionCache[V] {
	return &resolutionCache[V]{entries: make(map[OpId][]resolvedEntry[V])}
}

func (c *resolutionCache[V]) get(id OpId) ([]resolvedEntry[V], bool) {
	v, ok := c.entries[id]
	return v, ok
}

func (c *resolutionCache[V]) put(id OpId, v []resolvedEntry[V]) {
	c.entries[id] = v
}
