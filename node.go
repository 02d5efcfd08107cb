package memorypool

import "unsafe"

// wordSize is the size, in bytes, of one neighbour slot.
const wordSize = unsafe.Sizeof(word(0))

// NodeRef is an opaque handle to a node allocated inside a Pool. The zero
// NodeRef represents null; every accessor treats it that way.
type NodeRef struct {
	p unsafe.Pointer
}

// IsNull reports whether ref is the null reference.
func (ref NodeRef) IsNull() bool {
	return ref.p == nil
}

func slotAddr(base unsafe.Pointer, i uint16) *word {
	return (*word)(unsafe.Pointer(uintptr(base) + uintptr(i)*wordSize))
}

// slotCount is the number of slots a node with the given declared neighbour
// count actually occupies: every node has at least one slot, even a
// zero-neighbour one, so the mark bit and (for count==0) nothing else has
// somewhere to live.
func slotCount(neighbourCount uint16) uint16 {
	if neighbourCount == 0 {
		return 1
	}
	return neighbourCount
}

// newNode zeroes the slots a node of the given neighbour count occupies and
// stamps the count into slot 0. The payload area is left uninitialized.
//
// neighbourCount == 0xFFFF is a contract violation (the count field could
// not distinguish it from an empty/sentinel value); callers must not pass
// it.
func newNode(location unsafe.Pointer, neighbourCount uint16) NodeRef {
	if neighbourCount == 0xFFFF {
		panic("memorypool: neighbour count 0xFFFF is reserved")
	}
	n := slotCount(neighbourCount)
	for i := uint16(0); i < n; i++ {
		*slotAddr(location, i) = 0
	}
	*slotAddr(location, 0) = slotAddr(location, 0).withTag(neighbourCount)
	return NodeRef{location}
}

// NeighbourCount returns the node's fixed neighbour count.
func (ref NodeRef) NeighbourCount() uint16 {
	return slotAddr(ref.p, 0).getTag()
}

// IsMarked reports whether the node's mark bit is set.
func (ref NodeRef) IsMarked() bool {
	return slotAddr(ref.p, 0).getFlag()
}

func (ref NodeRef) mark() {
	s := slotAddr(ref.p, 0)
	*s = s.withFlag(true)
}

func (ref NodeRef) clearMark() {
	s := slotAddr(ref.p, 0)
	*s = s.withFlag(false)
}

// GetNeighbour returns the reference stored at index i, or the null
// reference. i must be less than NeighbourCount(); violating that is a
// contract error.
func (ref NodeRef) GetNeighbour(i uint16) NodeRef {
	if i >= ref.NeighbourCount() {
		panic("memorypool: neighbour index out of range")
	}
	v := *slotAddr(ref.p, i)
	return NodeRef{v.addressOnly().pointer()}
}

// SetNeighbour stores v at index i, preserving whatever tag/flag bits that
// slot carries (slot 0's mark bit, slot 1's counter). i must be less than
// NeighbourCount().
func (ref NodeRef) SetNeighbour(v NodeRef, i uint16) {
	if i >= ref.NeighbourCount() {
		panic("memorypool: neighbour index out of range")
	}
	s := slotAddr(ref.p, i)
	old := *s
	*s = fromParts(v.p, old.getTag(), old.getFlag())
}

// getCounter, incCounter and resetCounter expose the per-traversal cursor
// packed into slot 1's tag. Only valid for nodes with NeighbourCount() >= 2.
func (ref NodeRef) getCounter() uint16 {
	if ref.NeighbourCount() < 2 {
		panic("memorypool: counter access requires neighbour count >= 2")
	}
	return slotAddr(ref.p, 1).getTag()
}

func (ref NodeRef) incCounter() uint16 {
	if ref.NeighbourCount() < 2 {
		panic("memorypool: counter access requires neighbour count >= 2")
	}
	s := slotAddr(ref.p, 1)
	next := s.getTag() + 1
	*s = s.withTag(next)
	return next
}

func (ref NodeRef) resetCounter() {
	if ref.NeighbourCount() < 2 {
		panic("memorypool: counter access requires neighbour count >= 2")
	}
	s := slotAddr(ref.p, 1)
	*s = s.withTag(0)
}

// Payload returns a pointer to the byte immediately past the node's last
// neighbour slot. For a zero-neighbour node this is immediately past slot
// 0 — slot 0 still exists (it carries the mark bit) but is never read as a
// neighbour.
func (ref NodeRef) Payload() unsafe.Pointer {
	n := slotCount(ref.NeighbourCount())
	return unsafe.Pointer(uintptr(ref.p) + uintptr(n)*wordSize)
}
