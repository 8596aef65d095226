package malloc

// Stats are the instrumentation counters of a Heap.
// All counters are cumulative except the InUse* and BackingSize gauges.
type Stats struct {
	AllocCalls       int64 // Alloc and AllocBytes calls
	AllocFailures    int64 // Alloc calls that found no fitting free chunk
	ProviderFailures int64 // Alloc calls that failed for lack of backing memory
	FreeCalls        int64 // Free, FreeBytes and TryFree calls
	InvalidFrees     int64 // frees of unknown or already free pointers
	Splits           int64 // allocations that created a remainder chunk
	CoalesceForward  int64 // merges with a free successor
	CoalesceBackward int64 // merges with a free predecessor

	InUseBytes  int64
	InUseChunks int64
	BackingSize int64
}

// Available returns the backing bytes not handed out.
func (s Stats) Available() int64 {
	return s.BackingSize - s.InUseBytes
}
