package memorypool

import "unsafe"

// MaxBlockSize is the largest payload area, in bytes, a single pool block
// can govern: the 16-bit size field can encode at most 1<<16 - 1 bytes, and
// sizes are kept 8-byte aligned.
const MaxBlockSize = ((1 << 16) - 1) &^ 7

// blockHeaderSize is the on-wire size of a blockHeader: exactly one word.
const blockHeaderSize = unsafe.Sizeof(blockHeader{})

// blockHeader is a free-list cell. Its single stored field packs the size
// of the payload area it governs (high 16 bits) and a free/allocated flag
// (low bit) around a pointer to the next block in the pool's singly linked,
// ascending-address, non-cyclic block list.
type blockHeader struct {
	next word
}

// blockAt reinterprets a raw location inside the pool buffer as a
// *blockHeader: a cast of a raw memory location to a typed struct via
// unsafe.Pointer, relying on the caller already knowing a block header
// lives at that offset rather than on any tag byte.
func blockAt(location unsafe.Pointer) *blockHeader {
	return (*blockHeader)(location)
}

// newBlockHeader writes a composed header at location and returns it.
func newBlockHeader(location unsafe.Pointer, next unsafe.Pointer, size uint16, isFree bool) *blockHeader {
	b := blockAt(location)
	b.next = fromParts(next, size, isFree)
	return b
}

func (b *blockHeader) getNext() unsafe.Pointer {
	return b.next.addressOnly().pointer()
}

func (b *blockHeader) setNext(next unsafe.Pointer) {
	size := b.next.getTag()
	free := b.next.getFlag()
	b.next = fromParts(next, size, free)
}

func (b *blockHeader) getSize() uint16 {
	return b.next.getTag()
}

func (b *blockHeader) setSize(size uint16) {
	b.next = b.next.withTag(size)
}

func (b *blockHeader) isFree() bool {
	return b.next.getFlag()
}

func (b *blockHeader) setFree(free bool) {
	b.next = b.next.withFlag(free)
}

// data returns a pointer to the payload area immediately following the
// header.
func (b *blockHeader) data() unsafe.Pointer {
	return unsafe.Pointer(uintptr(unsafe.Pointer(b)) + blockHeaderSize)
}
