package taskmux

// cacheLinePad is the byte width used to separate hot atomic fields
// that different goroutines hammer concurrently, so false sharing on
// one cache line doesn't serialize unrelated counters. 64 bytes covers
// the common x86-64 and arm64 cache line size.
const cacheLinePad = 64
