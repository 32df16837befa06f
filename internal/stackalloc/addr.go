package stackalloc

import "unsafe"

// sliceAddr returns the address of b's first byte. On unix builds b is
// an mmap'd mapping outside the Go heap; the !unix fallback passes a
// Go-heap slice and keeps it referenced from Region.buf.
func sliceAddr(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
