/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"io"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cloudwego/heapx/container/chunkstore"
	"github.com/cloudwego/heapx/unsafex/malloc"
	"github.com/cloudwego/heapx/unsafex/memsrc"
)

var (
	layoutCapacity int
	layoutAllocs   []int
	layoutFrees    []int
	layoutStore    string
)

func init() {
	cmd := newLayoutCmd()
	f := cmd.Flags()
	f.IntVar(&layoutCapacity, "capacity", 4096, "Capacity in bytes of the fixed backing buffer")
	f.IntSliceVar(&layoutAllocs, "alloc", []int{1}, "Sizes to allocate, in order")
	f.IntSliceVar(&layoutFrees, "free", nil, "Indices into --alloc to free afterwards, in order")
	f.StringVar(&layoutStore, "store", "slice", "Chunk store: slice or list")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Show the chunk layout after a sequence of allocs and frees",
		Long: `The layout command replays allocations and frees on a heap over a fixed
buffer and prints the resulting chunks.

Example:
  heapbench layout --alloc 100,10,200,10 --free 0,2
  heapbench layout --alloc 16,32,64 --free 0,2,1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd.OutOrStdout(), layoutCapacity, layoutStore, layoutAllocs, layoutFrees)
		},
	}
}

type layoutResult struct {
	Chunks      []chunkstore.Chunk `json:"chunks"`
	Fingerprint uint64             `json:"fingerprint"`
	Stats       malloc.Stats       `json:"stats"`
}

func runLayout(w io.Writer, capacity int, store string, allocs, frees []int) (err error) {
	sk, err := chunkstore.ParseKind(store)
	if err != nil {
		return errors.Wrap(err, "--store")
	}
	p, err := memsrc.NewFixedSize(capacity)
	if err != nil {
		return err
	}
	h := malloc.NewHeap(p, &malloc.Option{Store: sk})
	defer closeHeap(h, &err)

	ptrs := make([]unsafe.Pointer, len(allocs))
	for i, size := range allocs {
		ptrs[i] = h.Alloc(size)
	}
	for _, i := range frees {
		if i < 0 || i >= len(ptrs) {
			return errors.Errorf("--free index %d out of range [0, %d)", i, len(ptrs))
		}
		if err := h.TryFree(ptrs[i]); err != nil {
			return errors.Wrapf(err, "free #%d", i)
		}
	}

	in := h.Inspect()
	if err := in.Check(); err != nil {
		return err
	}
	if jsonOut {
		return printJSON(w, layoutResult{Chunks: in.Chunks(), Fingerprint: in.Fingerprint(), Stats: h.Stats()})
	}
	return in.Dump(w)
}
