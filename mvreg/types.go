package mvreg

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// OpKind tags the two Operation shapes. Undo and redo are not distinct
// kinds at the data level: the distinction between "this Restore is an
// undo" and "this Restore is a redo" is purely derived from whether its
// anchor resolves to a Set or to another Restore.
type OpKind int

const (
	// OpSet carries an optional value: present is a set, absent is a
	// delete. Set operations are terminal.
	OpSet OpKind = iota
	// OpRestore is "undo-the-effect-of anchor".
	OpRestore
)

// Operation is the engine's tagged variant: V is opaque to the engine,
// stored, never compared or hashed, only emitted.
type Operation[V any] struct {
	ID    OpId
	Preds mapset.Set[OpId]
	Kind  OpKind

	// Meaningful iff Kind == OpSet.
	Value    V
	HasValue bool

	// Meaningful iff Kind == OpRestore.
	Anchor OpId
}

// NewSet constructs a terminal Set operation with a present value.
func NewSet[V any](id OpId, preds mapset.Set[OpId], value V) *Operation[V] {
	return &Operation[V]{ID: id, Preds: preds, Kind: OpSet, Value: value, HasValue: true}
}

// NewDelete constructs a terminal Set operation with an absent value. A
// delete is modelled as "set to nothing", never a separate kind.
func NewDelete[V any](id OpId, preds mapset.Set[OpId]) *Operation[V] {
	return &Operation[V]{ID: id, Preds: preds, Kind: OpSet, HasValue: false}
}

// NewRestore constructs a Restore operation anchored at anchor.
func NewRestore[V any](id OpId, preds mapset.Set[OpId], anchor OpId) *Operation[V] {
	return &Operation[V]{ID: id, Preds: preds, Kind: OpRestore, Anchor: anchor}
}

// IsDelete reports whether a Set operation carries no value.
func (op *Operation[V]) IsDelete() bool {
	return op.Kind == OpSet && !op.HasValue
}

// ResolutionMetadata is the per-terminal trace the resolver produces for
// every entry in TerminalHeads.
type ResolutionMetadata struct {
	OpIdTrace       []OpId
	ResolutionDepth int
}

// TerminalHead pairs a terminal Set operation with the trace that reached
// it from some head, as returned by Replica.TerminalHeads.
type TerminalHead[V any] struct {
	Op       *Operation[V]
	Metadata ResolutionMetadata
}
