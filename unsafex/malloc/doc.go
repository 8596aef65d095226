// Package malloc implements a fixed-capacity first-fit heap over a single block
// of backing memory.
//
// A Heap obtains its block from a memsrc.Provider on the first Alloc and never
// grows. Allocations are carved out of the block by scanning the chunk list in
// address order for the first free chunk that is large enough (first fit) and
// splitting it. Freed chunks are merged with free neighbours immediately, so no
// two adjacent chunks are ever both free.
//
// Every operation takes the heap lock for its whole duration. The lock is a
// sync.Mutex or a spinlock.SpinLock, chosen with Option.Lock.
//
// Build with -tags heapdebug to turn internal invariant failures into panics and
// to verify the chunk layout after every call.
package malloc
