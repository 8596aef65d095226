package malloc

import "github.com/cloudwego/heapx/container/chunkstore"

// Splitter carves the first at bytes of the chunk at h into their own chunk.
//
// On success the chunk at h keeps its offset and has length at, h still
// addresses it, and off is its offset. ok is false when the chunk is shorter
// than at. A Splitter never changes occupancy.
type Splitter interface {
	Split(s chunkstore.Store, h chunkstore.Handle, at int) (off int, ok bool)
}

// ForwardSplitter keeps the allocation at the low end of the chunk and inserts
// the free remainder right after it.
type ForwardSplitter struct{}

// Split implements Splitter.
func (ForwardSplitter) Split(s chunkstore.Store, h chunkstore.Handle, at int) (int, bool) {
	c := s.At(h)
	if c == nil || at <= 0 || at > c.Len {
		return 0, false
	}
	off := c.Off
	if at == c.Len {
		return off, true
	}
	rest := chunkstore.Chunk{Off: off + at, Len: c.Len - at}
	c.Len = at
	s.InsertAfter(h, rest) // c is stale from here
	return off, true
}
