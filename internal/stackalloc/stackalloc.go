//go:build unix

// Package stackalloc allocates guard-paged memory regions for unbound
// tasks.
//
// Go does not let user code hand a goroutine a custom call stack (the
// runtime owns goroutine stacks and grows/shrinks them itself), so the
// region returned here does not back a task's actual execution stack —
// that is the Go runtime's own goroutine stack. What this package still
// provides for real is a resource-lifecycle contract: a fixed-size
// region with an unreadable low guard page, allocated on task creation
// and freed on task teardown, so overflow of whatever a task keeps in
// its own scratch arena is caught by a segfault rather than silently
// corrupting an adjacent allocation.
package stackalloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultSize is a conventional per-task scratch region size: hundreds
// of KiB, enough headroom for deep call chains without wasting address
// space the guard page would otherwise isolate.
const DefaultSize = 256 * 1024

// Region is a guard-paged memory region: Guard is an unreadable,
// unwritable page immediately below Base; [Base, Top) is the usable
// scratch area.
type Region struct {
	Guard []byte
	Base  uintptr
	Top   uintptr

	mapping []byte
}

// Allocate reserves size bytes of usable scratch space preceded by a
// single guard page. size is rounded up to a whole number of pages.
//
// Allocation failure is treated as unrecoverable by callers: task
// construction panics rather than returning a half-built task.
func Allocate(size int) (*Region, error) {
	if size <= 0 {
		size = DefaultSize
	}

	pageSize := unix.Getpagesize()
	usablePages := (size + pageSize - 1) / pageSize
	total := pageSize * (usablePages + 1) // +1 for the guard page

	mapping, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("stackalloc: mmap %d bytes: %w", total, err)
	}

	guard := mapping[:pageSize]
	if err := unix.Mprotect(guard, unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mapping)
		return nil, fmt.Errorf("stackalloc: mprotect guard page: %w", err)
	}

	base := uintptr(0)
	if len(mapping) > pageSize {
		base = sliceAddr(mapping[pageSize:])
	}

	return &Region{
		Guard:   guard,
		Base:    base,
		Top:     base + uintptr(total-pageSize),
		mapping: mapping,
	}, nil
}

// Free releases the region's backing mapping, guard page included.
func Free(r *Region) error {
	if r == nil || r.mapping == nil {
		return nil
	}
	err := unix.Munmap(r.mapping)
	r.mapping = nil
	r.Guard = nil
	r.Base, r.Top = 0, 0
	return err
}
