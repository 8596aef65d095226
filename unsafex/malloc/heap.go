package malloc

import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cloudwego/heapx/container/chunkstore"
	"github.com/cloudwego/heapx/internal/logger"
	"github.com/cloudwego/heapx/unsafex/memsrc"
)

// Heap is a first-fit allocator over one block of backing memory.
//
// The chunk list is empty until the first Alloc, which acquires the block from
// the provider and covers it with a single free chunk. From then on the chunks
// tile the block exactly: sorted by offset, no gaps, no overlaps.
type Heap struct {
	mu sync.Locker

	provider memsrc.Provider
	store    chunkstore.Store
	splitter Splitter
	merger   Coalescer
	log      *logrus.Entry

	block  memsrc.Block
	failed error // sticky provider failure
	stats  Stats
}

// NewHeap returns an empty heap backed by p. A nil o means DefaultOption().
// No memory is acquired until the first Alloc.
func NewHeap(p memsrc.Provider, o *Option) *Heap {
	if o == nil {
		o = DefaultOption()
	}
	h := &Heap{
		mu:       o.Lock.locker(),
		provider: p,
		store:    chunkstore.New(o.Store),
		splitter: o.Splitter,
		merger:   o.Coalescer,
		log:      logger.Component(o.Logger, "malloc"),
	}
	if h.splitter == nil {
		h.splitter = ForwardSplitter{}
	}
	if h.merger == nil {
		h.merger = AdjacentCoalescer{}
	}
	return h
}

// MinimalSize returns the allocation granularity of the provider.
func (h *Heap) MinimalSize() int {
	return h.provider.MinimalSize()
}

// Alloc returns a pointer to size bytes, or nil if the heap cannot satisfy the
// request. The memory is not zeroed. size <= 0 always returns nil.
//
// The first successful call acquires the backing block with the requested size.
// If that acquisition fails, every later Alloc returns nil too.
func (h *Heap) Alloc(size int) unsafe.Pointer {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.alloc(size)
	if debugChecks {
		h.mustCheck()
	}
	return p
}

// AllocBytes is like Alloc but returns the memory as a slice of len and cap size.
func (h *Heap) AllocBytes(size int) []byte {
	p := h.Alloc(size)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

func (h *Heap) alloc(size int) unsafe.Pointer {
	h.stats.AllocCalls++
	if size <= 0 {
		return nil
	}
	if h.store.Len() == 0 && !h.acquire(size) {
		h.stats.ProviderFailures++
		return nil
	}

	c := h.firstFit(size)
	if c == chunkstore.Nil {
		h.stats.AllocFailures++
		return nil
	}
	before := h.store.Len()
	off, ok := h.splitter.Split(h.store, c, size)
	if !ok {
		h.invariant("split of %v at %d does not fit", *h.store.At(c), size)
		h.stats.AllocFailures++
		return nil
	}
	if h.store.Len() > before {
		h.stats.Splits++
	}
	chunk := h.store.At(c)
	if chunk == nil || chunk.Off != off || chunk.Len != size {
		h.invariant("split of %d bytes at offset %d lost its chunk", size, off)
		h.stats.AllocFailures++
		return nil
	}
	chunk.Used = true
	h.stats.InUseBytes += int64(size)
	h.stats.InUseChunks++
	return unsafe.Add(h.block.Base, off)
}

// acquire obtains the backing block and covers it with one free chunk.
func (h *Heap) acquire(size int) bool {
	if h.failed != nil {
		return false
	}
	b, err := h.provider.Acquire(size)
	if err == nil && b.IsZero() {
		err = errors.New("provider returned an empty block")
	}
	if err != nil {
		h.failed = errors.Wrapf(err, "acquire %d bytes", size)
		h.log.Warnf("backing memory unavailable, heap disabled: %v", h.failed)
		return false
	}
	h.block = b
	h.stats.BackingSize = int64(b.Size)
	h.store.PushBack(chunkstore.Chunk{Off: 0, Len: b.Size})
	h.log.Debugf("acquired %d bytes at %p", b.Size, b.Base)
	return true
}

// firstFit returns the lowest-addressed free chunk of at least size bytes.
func (h *Heap) firstFit(size int) chunkstore.Handle {
	for c := h.store.Front(); c != chunkstore.Nil; c = h.store.Next(c) {
		if chunk := h.store.At(c); !chunk.Used && chunk.Len >= size {
			return c
		}
	}
	return chunkstore.Nil
}

// Free releases memory returned by Alloc. Nil pointers, pointers this heap did
// not hand out and already freed pointers are ignored.
func (h *Heap) Free(ptr unsafe.Pointer) {
	_ = h.TryFree(ptr)
}

// FreeBytes releases a slice returned by AllocBytes.
func (h *Heap) FreeBytes(b []byte) {
	if cap(b) == 0 {
		return
	}
	h.Free(unsafe.Pointer(unsafe.SliceData(b)))
}

// TryFree is like Free but reports why a pointer could not be freed.
func (h *Heap) TryFree(ptr unsafe.Pointer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	err := h.free(ptr)
	if debugChecks {
		h.mustCheck()
	}
	return err
}

func (h *Heap) free(ptr unsafe.Pointer) error {
	h.stats.FreeCalls++
	if ptr == nil {
		return ErrNilPointer
	}
	off, ok := h.offsetOf(ptr)
	if !ok {
		h.stats.InvalidFrees++
		return ErrUnknownPointer
	}
	c := h.store.Find(off)
	if c == chunkstore.Nil {
		h.stats.InvalidFrees++
		return ErrUnknownPointer
	}
	chunk := h.store.At(c)
	if !chunk.Used {
		h.stats.InvalidFrees++
		return ErrDoubleFree
	}
	chunk.Used = false
	h.stats.InUseBytes -= int64(chunk.Len)
	h.stats.InUseChunks--

	_, forward, backward := h.merger.Merge(h.store, c)
	if forward {
		h.stats.CoalesceForward++
	}
	if backward {
		h.stats.CoalesceBackward++
	}
	return nil
}

// offsetOf maps ptr to an offset inside the backing block.
func (h *Heap) offsetOf(ptr unsafe.Pointer) (int, bool) {
	if h.block.IsZero() {
		return 0, false
	}
	base, p := uintptr(h.block.Base), uintptr(ptr)
	if p < base || p-base >= uintptr(h.block.Size) {
		return 0, false
	}
	return int(p - base), true
}

// Stats returns a snapshot of the heap counters.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Close drops every chunk and returns the backing block to the provider.
// Pointers handed out by the heap must not be used afterwards. Alloc on a closed
// heap returns nil.
func (h *Heap) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if errors.Is(h.failed, ErrClosed) {
		return nil
	}
	h.failed = ErrClosed
	h.store.Reset()
	h.stats.InUseBytes, h.stats.InUseChunks, h.stats.BackingSize = 0, 0, 0
	if h.block.IsZero() {
		return nil
	}
	b := h.block
	h.block = memsrc.Block{}
	if err := h.provider.Release(b); err != nil {
		return errors.Wrap(err, "malloc: release backing block")
	}
	return nil
}
