package mvreg

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// traceMeta is the metadata the resolver accumulates along one path: the
// sequence of OpIds visited and the number of hops taken.
type traceMeta struct {
	trace []OpId
	depth int
}

// resolvedEntry pairs a terminal Set with the trace that reached it.
type resolvedEntry[V any] struct {
	terminal *Operation[V]
	meta     traceMeta
}

// resolver implements the multi-value resolution algorithm: walking from
// heads through Restore operations back to terminal Set operations.
type resolver[V any] struct {
	applied map[OpId]*Operation[V]
	cache   *resolutionCache[V] // nil when the replica was created without caching
}

func newResolver[V any](applied map[OpId]*Operation[V], cache *resolutionCache[V]) *resolver[V] {
	return &resolver[V]{applied: applied, cache: cache}
}

// resolveFrom resolves a single OpId as if it were the sole head: the
// returned entries' opIdTrace all begin at id. This is also exactly what the
// cache stores for a Restore id, so resolveFrom doubles as the
// cache-population routine.
func (r *resolver[V]) resolveFrom(id OpId) []resolvedEntry[V] {
	op, ok := r.applied[id]
	if !ok {
		panic(fmt.Errorf("%w: unresolved op id %s", ErrInvariantViolation, id))
	}

	if op.Kind == OpSet {
		return []resolvedEntry[V]{{
			terminal: op,
			meta:     traceMeta{trace: []OpId{id}, depth: 1},
		}}
	}

	if r.cache != nil {
		if hit, ok := r.cache.get(id); ok {
			return hit
		}
	}

	anchor, ok := r.applied[op.Anchor]
	if !ok {
		panic(fmt.Errorf("%w: restore %s anchors unresolved op %s", ErrInvariantViolation, id, op.Anchor))
	}

	// A Restore whose anchor has no preds is undoing the very first
	// operation ever applied; it contributes nothing.
	var out []resolvedEntry[V]
	for _, pred := range anchor.Preds.ToSlice() {
		for _, sub := range r.resolveFrom(pred) {
			trace := make([]OpId, 0, len(sub.meta.trace)+1)
			trace = append(trace, id)
			trace = append(trace, sub.meta.trace...)
			out = append(out, resolvedEntry[V]{
				terminal: sub.terminal,
				meta:     traceMeta{trace: trace, depth: sub.meta.depth + 1},
			})
		}
	}

	if r.cache != nil {
		r.cache.put(id, out)
	}
	return out
}

// resolveHeads runs resolveFrom for every head and returns the concatenated
// results sorted by the opIdTrace comparator, descending.
func (r *resolver[V]) resolveHeads(heads mapset.Set[OpId]) []resolvedEntry[V] {
	var all []resolvedEntry[V]
	for _, h := range heads.ToSlice() {
		all = append(all, r.resolveFrom(h)...)
	}
	sortByTraceDescending(all)
	return all
}

// compareTraces compares two opIdTraces element-wise over their shared
// prefix length, returning the first non-zero OpId comparison. A fully
// equal shared prefix compares equal, even if the traces differ in length.
// This coarser equality is what makes splicing cached results in sound.
func compareTraces(a, b []OpId) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// sortByTraceDescending sorts so the largest OpId at the earliest differing
// trace position comes first, stable with respect to insertion order for
// ties.
func sortByTraceDescending[V any](entries []resolvedEntry[V]) {
	sort.SliceStable(entries, func(i, j int) bool {
		return compareTraces(entries[i].meta.trace, entries[j].meta.trace) > 0
	})
}
