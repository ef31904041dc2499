package mvreg

import (
	"fmt"
	"strconv"
	"strings"
)

// ActorId is an opaque identifier for a replica, stable for the lifetime of
// its operation history.
type ActorId string

// OpId is a Lamport timestamp: a monotonically increasing counter paired
// with the actor that minted it. The total order compares counters first,
// breaking ties lexicographically on actor.
type OpId struct {
	Counter uint64
	Actor   ActorId
}

// Compare returns -1, 0, or 1 as id is less than, equal to, or greater than
// other: counters compared first, actor as the tiebreaker.
func (id OpId) Compare(other OpId) int {
	switch {
	case id.Counter < other.Counter:
		return -1
	case id.Counter > other.Counter:
		return 1
	case id.Actor < other.Actor:
		return -1
	case id.Actor > other.Actor:
		return 1
	default:
		return 0
	}
}

// Less reports whether id sorts strictly before other.
func (id OpId) Less(other OpId) bool {
	return id.Compare(other) < 0
}

// String renders the canonical wire form "<counter>@<actor>".
func (id OpId) String() string {
	return fmt.Sprintf("%d@%s", id.Counter, id.Actor)
}

// ParseOpID parses the canonical "<counter>@<actor>" form produced by
// OpId.String, returning MalformedOpId if the counter doesn't parse or the
// actor is empty.
func ParseOpID(s string) (OpId, error) {
	counterStr, actorStr, found := strings.Cut(s, "@")
	if !found || actorStr == "" {
		return OpId{}, fmt.Errorf("%w: %q", ErrMalformedOpId, s)
	}
	counter, err := strconv.ParseUint(counterStr, 10, 64)
	if err != nil {
		return OpId{}, fmt.Errorf("%w: %q: %v", ErrMalformedOpId, s, err)
	}
	return OpId{Counter: counter, Actor: ActorId(actorStr)}, nil
}
