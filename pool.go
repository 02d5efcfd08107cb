package memorypool

import "unsafe"

// defaultRootSetCapacity is the root set's starting capacity.
const defaultRootSetCapacity = 8

// FinalizerFunc is invoked on a node's payload pointer immediately before
// its block is returned to the free list, either by Release or by Collect.
// A finalizer MUST NOT fail and MUST NOT call back into the pool that
// invoked it — there is no error propagation across this boundary, and
// re-entrancy is not supported.
type FinalizerFunc func(unsafe.Pointer)

// Pool owns one contiguous buffer carved into blocks by a first-fit
// free-list allocator, the root set used to drive Collect, and an optional
// finalizer. All operations on a given Pool are single-threaded and
// non-reentrant; distinct pools are fully independent.
type Pool struct {
	buf       unsafe.Pointer
	bufSize   uintptr
	head      *blockHeader
	roots     rootSet
	finalizer FinalizerFunc
}

// PoolStats summarizes a pool's block list. Stats never mutates the pool —
// not even mark bits — so it is safe to call at any time, including
// mid-debug after a failed Alloc.
type PoolStats struct {
	TotalBytes uint64
	UsedBytes  uint64
	FreeBytes  uint64
	BlockCount int
}

func align8(n uintptr) uintptr {
	return (n + 7) &^ 7
}

func nextBlock(b *blockHeader) *blockHeader {
	next := b.getNext()
	if next == nil {
		return nil
	}
	return blockAt(next)
}

// NewPool creates a pool governing size bytes of backing storage. size must
// be at least one block header.
//
// Returns false if the backing buffer or the root-set storage could not be
// obtained from the platform memory provider; the returned *Pool is then in
// a zeroed state (nil block head, distinguishable from a valid pool) and
// Release on it is a no-op.
func NewPool(size uintptr, finalizer FinalizerFunc) (*Pool, bool) {
	if size < blockHeaderSize {
		panic("memorypool: pool size must be at least one block header")
	}

	buf, ok := platformAllocate(size)
	if !ok {
		return &Pool{}, false
	}
	if uintptr(buf)&7 != 0 {
		platformRelease(buf, size)
		panic("memorypool: platform allocator returned a misaligned buffer")
	}

	roots, ok := newRootSet(defaultRootSetCapacity)
	if !ok {
		platformRelease(buf, size)
		return &Pool{}, false
	}

	p := &Pool{
		buf:       buf,
		bufSize:   size,
		finalizer: finalizer,
		roots:     roots,
	}
	p.initBlocks(size)
	return p, true
}

// initBlocks lays the freshly mapped buffer out as a chain of free blocks,
// each governing at most MaxBlockSize bytes of payload, abandoning any
// sub-header-sized trailing fragment.
func (p *Pool) initBlocks(poolSize uintptr) {
	remaining := poolSize - blockHeaderSize
	headSize := remaining
	if headSize > MaxBlockSize {
		headSize = MaxBlockSize
	}
	head := newBlockHeader(p.buf, nil, uint16(headSize), true)
	remaining -= headSize

	current := head
	location := unsafe.Pointer(uintptr(p.buf) + blockHeaderSize + headSize)

	for remaining > blockHeaderSize {
		remaining -= blockHeaderSize
		size := remaining
		if size > MaxBlockSize {
			size = MaxBlockSize
		}
		remaining -= size

		next := newBlockHeader(location, nil, uint16(size), true)
		current.setNext(unsafe.Pointer(next))
		current = next
		location = unsafe.Pointer(uintptr(location) + blockHeaderSize + size)
	}

	p.head = head
}

// Alloc carves a node of dataSize payload bytes and the given neighbour
// count out of the first free block large enough to hold it (first-fit).
// On success the found block is split: if the residual after carving is
// large enough to house at least a one-byte payload beyond its own header,
// a new free block threads in between this block and its old successor and
// this block's recorded size shrinks to exactly what was requested;
// otherwise the whole block (including the slack) stays allocated.
//
// total = align8(dataSize) + max(1,neighbours)*sizeof(word) must be less
// than 1<<16 bytes; violating that is a contract error, not a recoverable
// failure — Alloc panics.
func (p *Pool) Alloc(dataSize uintptr, neighbours uint16) (NodeRef, bool) {
	total := align8(dataSize) + uintptr(slotCount(neighbours))*wordSize
	if total >= 1<<16 {
		panic("memorypool: allocation request exceeds the 64KiB node size cap")
	}

	block := p.head
	for block != nil && (!block.isFree() || uintptr(block.getSize()) < total) {
		block = nextBlock(block)
	}
	if block == nil {
		return NodeRef{}, false
	}

	block.setFree(false)
	space := block.data()
	node := newNode(space, neighbours)

	totalSpace := uintptr(block.getSize())
	residual := totalSpace - total
	if residual > blockHeaderSize {
		location := unsafe.Pointer(uintptr(space) + total)
		next := newBlockHeader(location, block.getNext(), uint16(residual-blockHeaderSize), true)
		block.setNext(unsafe.Pointer(next))
		block.setSize(uint16(total))
	}

	return node, true
}

// AddRoot appends node to the pool's root set. Duplicates are permitted.
// Returns false, leaving the root set unchanged, if the set could not grow
// to accommodate the new entry.
func (p *Pool) AddRoot(node NodeRef) bool {
	return p.roots.append(node)
}

// Collect reclaims every node not reachable from the root set. See gc.go.

// Release finalizes every currently allocated block's payload (if a
// finalizer is installed), then releases the pool's backing buffer and
// root-set storage. The pool is left zeroed; a second Release is a no-op.
func (p *Pool) Release() {
	if p.head == nil {
		return
	}
	if p.finalizer != nil {
		for b := p.head; b != nil; b = nextBlock(b) {
			if b.isFree() {
				continue
			}
			node := NodeRef{b.data()}
			p.finalizer(node.Payload())
		}
	}
	p.roots.release()
	platformRelease(p.buf, p.bufSize)
	*p = Pool{}
}

// Stats walks the block list and summarizes it.
func (p *Pool) Stats() PoolStats {
	var s PoolStats
	for b := p.head; b != nil; b = nextBlock(b) {
		size := uint64(b.getSize())
		s.TotalBytes += size
		s.BlockCount++
		if b.isFree() {
			s.FreeBytes += size
		} else {
			s.UsedBytes += size
		}
	}
	return s
}
