package memorypool

import (
	"testing"
	"unsafe"
)

func TestRootSetStartsAtDefaultCapacity(t *testing.T) {
	rs, ok := newRootSet(8)
	if !ok {
		t.Fatalf("newRootSet failed")
	}
	defer rs.release()
	if rs.capacity != 8 {
		t.Fatalf("expected capacity 8, got %d", rs.capacity)
	}
	if rs.len() != 0 {
		t.Fatalf("expected length 0, got %d", rs.len())
	}
}

func TestRootSetAppendDoublesOnGrowth(t *testing.T) {
	rs, ok := newRootSet(2)
	if !ok {
		t.Fatalf("newRootSet failed")
	}
	defer rs.release()

	buf := make([]byte, 256)
	refs := []NodeRef{
		{unsafe.Pointer(&buf[0])},
		{unsafe.Pointer(&buf[8])},
		{unsafe.Pointer(&buf[16])},
	}
	for i, ref := range refs {
		if !rs.append(ref) {
			t.Fatalf("append %d failed", i)
		}
	}
	if rs.capacity != 4 {
		t.Fatalf("expected capacity to double to 4 after exceeding 2, got %d", rs.capacity)
	}
	for i, ref := range refs {
		if got := rs.get(uintptr(i)); got.p != ref.p {
			t.Fatalf("entry %d: expected %p, got %p", i, ref.p, got.p)
		}
	}
}

func TestRootSetPermitsDuplicates(t *testing.T) {
	rs, ok := newRootSet(4)
	if !ok {
		t.Fatalf("newRootSet failed")
	}
	defer rs.release()

	buf := make([]byte, 8)
	ref := NodeRef{unsafe.Pointer(&buf[0])}
	rs.append(ref)
	rs.append(ref)
	if rs.len() != 2 {
		t.Fatalf("expected length 2 with duplicate entries, got %d", rs.len())
	}
	if rs.get(0).p != rs.get(1).p {
		t.Fatalf("expected both entries to reference the same node")
	}
}

func TestRootSetReleaseIsIdempotent(t *testing.T) {
	rs, ok := newRootSet(4)
	if !ok {
		t.Fatalf("newRootSet failed")
	}
	rs.release()
	if rs.buf != nil {
		t.Fatalf("expected buf nil after release")
	}
	rs.release() // must be a harmless no-op
}
