// Typed is a thin, generic convenience layer over the untyped node-graph
// pool: it constructs and destructs values of T in place at a node's
// payload address instead of leaving raw payload-pointer bookkeeping to
// the caller.
package memorypool

import (
	"unsafe"

	set3 "github.com/TomTonic/Set3"
)

// TypedRef is a typed handle to a node allocated through a Typed[T] pool.
// The zero TypedRef is null, same as NodeRef.
type TypedRef[T any] struct {
	ref NodeRef
}

// IsNull reports whether ref is the null reference.
func (ref TypedRef[T]) IsNull() bool {
	return ref.ref.IsNull()
}

// Value returns a pointer to the T constructed in the node's payload area.
func (ref TypedRef[T]) Value() *T {
	return (*T)(ref.ref.Payload())
}

// NeighbourCount, GetNeighbour and SetNeighbour re-expose the underlying
// node graph in terms of TypedRef instead of the untyped NodeRef.
func (ref TypedRef[T]) NeighbourCount() uint16 {
	return ref.ref.NeighbourCount()
}

func (ref TypedRef[T]) GetNeighbour(i uint16) TypedRef[T] {
	return TypedRef[T]{ref.ref.GetNeighbour(i)}
}

func (ref TypedRef[T]) SetNeighbour(v TypedRef[T], i uint16) {
	ref.ref.SetNeighbour(v.ref, i)
}

// Typed wraps a *Pool and constructs/destructs values of type T in place at
// each node's payload, instead of leaving that to the caller.
type Typed[T any] struct {
	pool      *Pool
	rooted    *set3.Set3[TypedRef[T]]
	finalizer func(*T)
}

// NewTyped creates a Typed[T] pool over size bytes of backing storage. The
// finalizer, if non-nil, runs on every live T a Collect or Release reclaims.
func NewTyped[T any](size uintptr, finalizer func(*T)) (*Typed[T], bool) {
	t := &Typed[T]{
		finalizer: finalizer,
		rooted:    set3.Empty[TypedRef[T]](),
	}
	pool, ok := NewPool(size, func(payload unsafe.Pointer) {
		if t.finalizer != nil {
			t.finalizer((*T)(payload))
		}
	})
	if !ok {
		return nil, false
	}
	t.pool = pool
	return t, true
}

// Alloc constructs value in place inside a freshly allocated node carrying
// the given neighbour count.
func (t *Typed[T]) Alloc(value T, neighbours uint16) (TypedRef[T], bool) {
	node, ok := t.pool.Alloc(unsafe.Sizeof(value), neighbours)
	if !ok {
		return TypedRef[T]{}, false
	}
	*(*T)(node.Payload()) = value
	return TypedRef[T]{node}, true
}

// AddRoot roots ref. Unlike the untyped Pool.AddRoot, repeat calls for a
// reference already rooted through this wrapper are a cheap no-op instead
// of growing the root set — a wrapper-level convenience tracked with a
// Set3[TypedRef[T]], not a change to the underlying Pool's semantics:
// Pool.AddRoot itself still permits and preserves duplicate entries.
func (t *Typed[T]) AddRoot(ref TypedRef[T]) bool {
	if t.rooted.Contains(ref) {
		return true
	}
	if !t.pool.AddRoot(ref.ref) {
		return false
	}
	t.rooted.Add(ref)
	return true
}

// Collect reclaims every T not reachable from the root set.
func (t *Typed[T]) Collect() {
	t.pool.Collect()
}

// Release finalizes every remaining allocated T and releases the pool.
func (t *Typed[T]) Release() {
	t.pool.Release()
	*t = Typed[T]{}
}

// Stats reports the underlying pool's block-list summary.
func (t *Typed[T]) Stats() PoolStats {
	return t.pool.Stats()
}
