package malloc

import (
	"testing"
	"unsafe"

	"github.com/cloudwego/heapx/concurrency/parallel"
	"github.com/cloudwego/heapx/container/chunkstore"
)

const benchElements = 4096

func benchHeaps(b *testing.B, f func(b *testing.B, newHeap func() *Heap)) {
	for _, lk := range []LockKind{LockSpin, LockMutex} {
		for _, sk := range []chunkstore.Kind{chunkstore.KindList, chunkstore.KindSlice} {
			for _, pc := range providers {
				lk, sk, pc := lk, sk, pc
				b.Run(lk.String()+"/"+sk.String()+"/"+pc.name, func(b *testing.B) {
					f(b, func() *Heap {
						return NewHeap(pc.new(b), &Option{Lock: lk, Store: sk})
					})
				})
			}
		}
	}
}

func BenchmarkAlloc(b *testing.B) {
	benchHeaps(b, func(b *testing.B, newHeap func() *Heap) {
		ptrs := make([]unsafe.Pointer, benchElements)
		for i := 0; i < b.N; i++ {
			b.StopTimer()
			h := newHeap()
			b.StartTimer()
			parallel.ForEach(benchElements, func(j int) {
				ptrs[j] = h.Alloc(1)
			})
			b.StopTimer()
			_ = h.Close()
			b.StartTimer()
		}
	})
}

func BenchmarkFree(b *testing.B) {
	benchHeaps(b, func(b *testing.B, newHeap func() *Heap) {
		ptrs := make([]unsafe.Pointer, benchElements)
		for i := 0; i < b.N; i++ {
			b.StopTimer()
			h := newHeap()
			parallel.ForEach(benchElements, func(j int) {
				ptrs[j] = h.Alloc(1)
			})
			b.StartTimer()
			parallel.ForEach(benchElements, func(j int) {
				h.Free(ptrs[j])
			})
			b.StopTimer()
			_ = h.Close()
			b.StartTimer()
		}
	})
}

func BenchmarkFreeBackwards(b *testing.B) {
	benchHeaps(b, func(b *testing.B, newHeap func() *Heap) {
		ptrs := make([]unsafe.Pointer, benchElements)
		for i := 0; i < b.N; i++ {
			b.StopTimer()
			h := newHeap()
			parallel.ForEach(benchElements, func(j int) {
				ptrs[j] = h.Alloc(1)
			})
			b.StartTimer()
			parallel.ForEach(benchElements, func(j int) {
				h.Free(ptrs[benchElements-1-j])
			})
			b.StopTimer()
			_ = h.Close()
			b.StartTimer()
		}
	})
}
