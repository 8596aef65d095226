//go:build heapdebug

package malloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/heapx/container/chunkstore"
	"github.com/cloudwego/heapx/unsafex/memsrc"
)

type refusingSplitter struct{}

func (refusingSplitter) Split(chunkstore.Store, chunkstore.Handle, int) (int, bool) {
	return 0, false
}

func TestBrokenSplitterPanics(t *testing.T) {
	p, err := memsrc.NewFixedSize(4096)
	require.NoError(t, err)
	h := NewHeap(p, &Option{Splitter: refusingSplitter{}})
	assert.Panics(t, func() { h.Alloc(10) })
}

// leakyCoalescer drops the freed chunk from the layout.
type leakyCoalescer struct{}

func (leakyCoalescer) Merge(s chunkstore.Store, h chunkstore.Handle) (chunkstore.Handle, bool, bool) {
	s.Remove(h)
	return chunkstore.Nil, false, false
}

func TestBrokenCoalescerPanics(t *testing.T) {
	p, err := memsrc.NewFixedSize(4096)
	require.NoError(t, err)
	h := NewHeap(p, &Option{Coalescer: leakyCoalescer{}})
	ptr := h.Alloc(10)
	require.NotNil(t, ptr)
	assert.Panics(t, func() { h.Free(ptr) })
}
