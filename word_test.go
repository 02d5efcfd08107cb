package memorypool

import (
	"testing"
	"unsafe"
)

func TestWordTagRoundTrip(t *testing.T) {
	var w word
	tags := []uint16{0, 1, 255, 4096, 0xFFFF}
	for _, tag := range tags {
		w = w.withTag(tag)
		if got := w.getTag(); got != tag {
			t.Fatalf("tag %d: got %d after withTag", tag, got)
		}
	}
}

func TestWordFlagRoundTrip(t *testing.T) {
	w := word(0).withTag(0xBEEF)
	if w.getFlag() {
		t.Fatalf("flag should be clear initially")
	}
	w = w.withFlag(true)
	if !w.getFlag() {
		t.Fatalf("flag should be set after withFlag(true)")
	}
	if got := w.getTag(); got != 0xBEEF {
		t.Fatalf("withFlag must preserve tag, got %x", got)
	}
	w = w.withFlag(false)
	if w.getFlag() {
		t.Fatalf("flag should be clear after withFlag(false)")
	}
	if got := w.getTag(); got != 0xBEEF {
		t.Fatalf("withFlag must preserve tag, got %x", got)
	}
}

func TestWordAddressOnlyAndFromParts(t *testing.T) {
	var v uint64
	addr := unsafe.Pointer(&v)

	w := fromParts(addr, 0x1234, true)
	if got := w.getTag(); got != 0x1234 {
		t.Fatalf("expected tag 0x1234, got %x", got)
	}
	if !w.getFlag() {
		t.Fatalf("expected flag set")
	}
	if w.addressOnly().pointer() != addr {
		t.Fatalf("addressOnly/pointer round-trip did not recover original address")
	}

	w2 := w.withTag(0).withFlag(false)
	if w2.addressOnly() != w.addressOnly() {
		t.Fatalf("mutating tag/flag must not change the address bits")
	}
}

func TestWordWithTagPreservesFlag(t *testing.T) {
	w := word(0).withFlag(true)
	w = w.withTag(42)
	if !w.getFlag() {
		t.Fatalf("withTag must preserve flag")
	}
	if got := w.getTag(); got != 42 {
		t.Fatalf("expected tag 42, got %d", got)
	}
}
