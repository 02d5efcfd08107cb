//go:build unix

package memorypool

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// defaultAllocate maps size bytes of anonymous, private memory outside the
// Go heap. Because the returned region is never part of a Go allocation,
// raw tagged addresses stored inside it are never scanned or relocated by
// the Go runtime.
func defaultAllocate(size uintptr) (unsafe.Pointer, bool) {
	if size == 0 {
		return nil, false
	}
	b, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, false
	}
	return unsafe.Pointer(&b[0]), true
}

func defaultRelease(ptr unsafe.Pointer, size uintptr) {
	if ptr == nil || size == 0 {
		return
	}
	b := unsafe.Slice((*byte)(ptr), int(size))
	_ = unix.Munmap(b)
}
