// Package gid extracts the runtime-assigned numeric ID of the calling
// goroutine, for use as a stand-in for OS-thread identity in places that
// need goroutine-local state.
//
// There is no supported, stable way to do this in Go: the goroutine ID is
// an internal runtime implementation detail. This package deliberately
// avoids go:linkname tricks into runtime internals (fragile across Go
// versions, and explicitly unsupported) and instead parses the header
// line of runtime.Stack, which is the same technique used by every
// widely deployed "goroutine-local storage" shim in the ecosystem.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// stackBufPool recycles the scratch buffer used to capture the header
// line of runtime.Stack, avoiding an allocation per call.
var stackBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 64)
		return &b
	},
}

// Current returns the numeric ID of the calling goroutine.
//
// This is relatively expensive: it captures and parses a stack trace on
// every call, and nothing here caches the result.
func Current() uint64 {
	buf := stackBufPool.Get().(*[]byte)
	defer stackBufPool.Put(buf)

	n := runtime.Stack(*buf, false)
	id, ok := parseHeader((*buf)[:n])
	if !ok {
		// The format of the header line is stable across all supported Go
		// releases; a mismatch means something is badly wrong.
		panic("gid: unrecognized runtime.Stack header")
	}
	return id
}

// parseHeader extracts the goroutine ID from a line of the form
// "goroutine 123 [running]:".
func parseHeader(b []byte) (uint64, bool) {
	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0, false
	}
	b = b[len(prefix):]
	sp := bytes.IndexByte(b, ' ')
	if sp < 0 {
		return 0, false
	}
	id, err := strconv.ParseUint(string(b[:sp]), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
