package memorypool

import "unsafe"

// rootSet is an amortized-growth ordered sequence of node references.
// Duplicates are permitted, though semantically redundant — the same node
// rooted twice is simply visited twice when Collect marks from the root
// set, which is harmless since DFS guards on the mark bit.
//
// Its backing storage comes from the platform allocator (the same
// pluggable pair a Pool's buffer uses) rather than Go's built-in append, so
// a growth failure is a real, reportable outcome rather than something
// only a Go runtime OOM panic could produce.
type rootSet struct {
	buf      unsafe.Pointer
	capacity uintptr
	size     uintptr
}

func newRootSet(capacity uintptr) (rootSet, bool) {
	buf, ok := platformAllocate(capacity * wordSize)
	if !ok {
		return rootSet{}, false
	}
	return rootSet{buf: buf, capacity: capacity}, true
}

func (r *rootSet) slot(i uintptr) *word {
	return (*word)(unsafe.Pointer(uintptr(r.buf) + i*wordSize))
}

func (r *rootSet) len() uintptr {
	return r.size
}

func (r *rootSet) get(i uintptr) NodeRef {
	return NodeRef{r.slot(i).pointer()}
}

// append adds node to the end of the sequence, doubling the backing
// storage first if it is full. Returns false, leaving the root set
// unchanged, if growth was needed and the platform allocator could not
// provide it.
func (r *rootSet) append(node NodeRef) bool {
	if r.size == r.capacity {
		newCapacity := r.capacity * 2
		newBuf, ok := platformAllocate(newCapacity * wordSize)
		if !ok {
			return false
		}
		for i := uintptr(0); i < r.size; i++ {
			src := (*word)(unsafe.Pointer(uintptr(r.buf) + i*wordSize))
			dst := (*word)(unsafe.Pointer(uintptr(newBuf) + i*wordSize))
			*dst = *src
		}
		platformRelease(r.buf, r.capacity*wordSize)
		r.buf = newBuf
		r.capacity = newCapacity
	}

	*r.slot(r.size) = fromParts(node.p, 0, false)
	r.size++
	return true
}

func (r *rootSet) release() {
	if r.buf == nil {
		return
	}
	platformRelease(r.buf, r.capacity*wordSize)
	*r = rootSet{}
}
