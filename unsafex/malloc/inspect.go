package malloc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bytedance/gopkg/util/xxhash3"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/cloudwego/heapx/container/chunkstore"
)

// Inspector exposes the chunk layout of a Heap for tests and diagnostics.
// Every call takes the heap lock.
type Inspector interface {
	// ChunkCount returns the number of chunks, used or free.
	ChunkCount() int

	// LastChunkSize returns the length of the highest-addressed chunk,
	// or 0 before the backing block is acquired.
	LastChunkSize() int

	// Chunks returns a copy of the layout in address order.
	Chunks() []chunkstore.Chunk

	// Check verifies that the chunks tile the backing block and agree with the
	// in-use counters. The returned error wraps ErrCorrupted.
	Check() error

	// Fingerprint hashes the layout. Heaps with equal layouts have equal fingerprints.
	Fingerprint() uint64

	// Dump writes one line per chunk to w.
	Dump(w io.Writer) error
}

// Inspect returns an Inspector over h.
func (h *Heap) Inspect() Inspector {
	return inspector{h}
}

type inspector struct {
	h *Heap
}

func (i inspector) ChunkCount() int {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	return i.h.store.Len()
}

func (i inspector) LastChunkSize() int {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	if c := i.h.store.At(i.h.store.Back()); c != nil {
		return c.Len
	}
	return 0
}

func (i inspector) Chunks() []chunkstore.Chunk {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	return chunkstore.Collect(i.h.store)
}

func (i inspector) Check() error {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	return i.h.check()
}

func (i inspector) Fingerprint() uint64 {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	s := i.h.store
	buf := make([]byte, 0, s.Len()*17)
	for c := s.Front(); c != chunkstore.Nil; c = s.Next(c) {
		chunk := s.At(c)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(chunk.Off))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(chunk.Len))
		if chunk.Used {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return xxhash3.Hash(buf)
}

func (i inspector) Dump(w io.Writer) error {
	i.h.mu.Lock()
	defer i.h.mu.Unlock()
	h := i.h
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "heap: %d chunks, backing %s, in use %s in %d chunks\n",
		h.store.Len(), humanize.IBytes(uint64(h.stats.BackingSize)),
		humanize.IBytes(uint64(h.stats.InUseBytes)), h.stats.InUseChunks)
	for c := h.store.Front(); c != chunkstore.Nil; c = h.store.Next(c) {
		chunk := h.store.At(c)
		state := "free"
		if chunk.Used {
			state = "used"
		}
		fmt.Fprintf(bw, "  %#010x %10s %s\n", chunk.Off, humanize.IBytes(uint64(chunk.Len)), state)
	}
	return bw.Flush()
}

// check verifies the coverage invariant. Callers hold the lock.
func (h *Heap) check() error {
	s := h.store
	if s.Len() == 0 {
		if h.stats.InUseChunks != 0 {
			return errors.Wrapf(ErrCorrupted, "no chunks but %d in use", h.stats.InUseChunks)
		}
		return nil
	}
	var next, used, usedBytes int
	for c := s.Front(); c != chunkstore.Nil; c = s.Next(c) {
		chunk := s.At(c)
		if chunk.Len <= 0 {
			return errors.Wrapf(ErrCorrupted, "chunk %v has no length", *chunk)
		}
		if chunk.Off != next {
			return errors.Wrapf(ErrCorrupted, "chunk %v does not start at %d", *chunk, next)
		}
		next = chunk.End()
		if chunk.Used {
			used++
			usedBytes += chunk.Len
		}
	}
	if next != h.block.Size {
		return errors.Wrapf(ErrCorrupted, "chunks cover %d of %d bytes", next, h.block.Size)
	}
	if int64(used) != h.stats.InUseChunks || int64(usedBytes) != h.stats.InUseBytes {
		return errors.Wrapf(ErrCorrupted, "%d chunks with %d bytes in use, counters say %d with %d",
			used, usedBytes, h.stats.InUseChunks, h.stats.InUseBytes)
	}
	return nil
}

func (h *Heap) mustCheck() {
	if err := h.check(); err != nil {
		h.invariant("%v", err)
	}
}
