package malloc

import "github.com/cloudwego/heapx/container/chunkstore"

// Coalescer merges the free chunk at h with its free neighbours.
//
// It returns the handle of the chunk that now covers h's range, and whether a
// merge happened with the successor (forward) and the predecessor (backward).
type Coalescer interface {
	Merge(s chunkstore.Store, h chunkstore.Handle) (survivor chunkstore.Handle, forward, backward bool)
}

// AdjacentCoalescer absorbs a free successor first, then lets a free
// predecessor absorb the result. The leftmost chunk of the run survives, so
// the survivor's offset never changes.
type AdjacentCoalescer struct{}

// Merge implements Coalescer.
func (AdjacentCoalescer) Merge(s chunkstore.Store, h chunkstore.Handle) (chunkstore.Handle, bool, bool) {
	c := s.At(h)
	if c == nil || c.Used {
		return h, false, false
	}

	var forward, backward bool
	if next := s.Next(h); next != chunkstore.Nil {
		if n := s.At(next); !n.Used {
			c.Len += n.Len
			s.Remove(next)
			forward = true
		}
	}
	if prev := s.Prev(h); prev != chunkstore.Nil {
		if p := s.At(prev); !p.Used {
			p.Len += s.At(h).Len
			s.Remove(h)
			h = prev
			backward = true
		}
	}
	return h, forward, backward
}
