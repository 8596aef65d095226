package malloc

import (
	"fmt"

	"github.com/cloudwego/heapx/unsafex/memsrc"
)

func Example() {
	p, _ := memsrc.NewFixedSize(4096)
	h := NewHeap(p, nil)
	defer h.Close()

	a := h.AllocBytes(1000)
	b := h.AllocBytes(24)
	fmt.Printf("a: len=%d, b: len=%d, chunks=%d\n", len(a), len(b), h.Inspect().ChunkCount())

	h.FreeBytes(a)
	fmt.Println(h.Inspect().Chunks())

	h.FreeBytes(b)
	fmt.Println(h.Inspect().Chunks())

	// Output:
	// a: len=1000, b: len=24, chunks=3
	// [{off:0 len:1000 free} {off:1000 len:24 used} {off:1024 len:3072 free}]
	// [{off:0 len:4096 free}]
}

func ExampleHeap_TryFree() {
	p, _ := memsrc.NewFixedSize(4096)
	h := NewHeap(p, &Option{Lock: LockSpin})
	defer h.Close()

	ptr := h.Alloc(64)
	fmt.Println(h.TryFree(ptr))
	fmt.Println(h.TryFree(ptr))
	fmt.Println(h.TryFree(nil))

	// Output:
	// <nil>
	// malloc: double free
	// malloc: free of nil pointer
}
