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
	"fmt"
	"io"
	"os"
	"time"
	"unsafe"

	sigar "github.com/cloudfoundry/gosigar"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cloudwego/heapx/concurrency/parallel"
	"github.com/cloudwego/heapx/container/chunkstore"
	"github.com/cloudwego/heapx/internal/logger"
	"github.com/cloudwego/heapx/unsafex/malloc"
	"github.com/cloudwego/heapx/unsafex/memsrc"
)

type runConfig struct {
	Provider string
	Capacity int
	Lock     string
	Store    string
	N        int
	Workers  int
}

var runCfg = runConfig{
	Provider: "all",
	Capacity: 8192,
	Lock:     "all",
	Store:    "all",
	N:        4096,
}

func init() {
	cmd := newRunCmd()
	f := cmd.Flags()
	f.StringVar(&runCfg.Provider, "provider", runCfg.Provider, "Backing provider: os, fixed, pooled or all")
	f.IntVar(&runCfg.Capacity, "capacity", runCfg.Capacity, "Capacity in bytes of the fixed and pooled providers")
	f.StringVar(&runCfg.Lock, "lock", runCfg.Lock, "Lock policy: mutex, spin or all")
	f.StringVar(&runCfg.Store, "store", runCfg.Store, "Chunk store: slice, list or all")
	f.IntVarP(&runCfg.N, "count", "n", runCfg.N, "Number of one-byte allocations per batch")
	f.IntVar(&runCfg.Workers, "workers", 0, "Goroutines per parallel batch (0 = GOMAXPROCS)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Time parallel and sequential alloc/free batches",
		Long: `The run command builds one heap per selected combination and times
a parallel alloc of n one-byte blocks, a parallel free of all of them, then a
sequential alloc followed by a timed sequential free.

Example:
  heapbench run
  heapbench run --provider os --lock spin --store list -n 10000
  heapbench run --provider fixed --capacity 65536 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := runBench(runCfg)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), results)
			}
			printResults(cmd.OutOrStdout(), results)
			return nil
		},
	}
}

// benchResult is the outcome of one combination.
type benchResult struct {
	Provider string `json:"provider"`
	Lock     string `json:"lock"`
	Store    string `json:"store"`

	Alloc           time.Duration `json:"alloc_ns"`
	Free            time.Duration `json:"free_ns"`
	SequentialFree  time.Duration `json:"sequential_free_ns"`
	ChunksAfterAll  int           `json:"chunks_after_alloc"`
	ChunksAfterFree int           `json:"chunks_after_free"`
	NilAllocs       int           `json:"nil_allocs"`
	RSS             uint64        `json:"rss_bytes"`

	Stats malloc.Stats `json:"stats"`
}

func selected(flag string, all []string) ([]string, error) {
	if flag == "all" {
		return all, nil
	}
	for _, s := range all {
		if s == flag {
			return []string{flag}, nil
		}
	}
	return nil, errors.Errorf("unknown value %q, want one of %v or all", flag, all)
}

func newProvider(name string, capacity int) (memsrc.Provider, error) {
	switch name {
	case "os":
		return memsrc.NewOS(), nil
	case "fixed":
		return memsrc.NewFixedSize(capacity)
	case "pooled":
		return memsrc.NewPooled(capacity)
	}
	return nil, errors.Errorf("unknown provider %q", name)
}

func runBench(cfg runConfig) ([]benchResult, error) {
	if cfg.N <= 0 {
		return nil, errors.Errorf("n must be positive, got %d", cfg.N)
	}
	providers, err := selected(cfg.Provider, []string{"os", "fixed", "pooled"})
	if err != nil {
		return nil, errors.Wrap(err, "--provider")
	}
	locks, err := selected(cfg.Lock, []string{"spin", "mutex"})
	if err != nil {
		return nil, errors.Wrap(err, "--lock")
	}
	stores, err := selected(cfg.Store, []string{"list", "slice"})
	if err != nil {
		return nil, errors.Wrap(err, "--store")
	}

	log := logger.Component(nil, "heapbench")
	var results []benchResult
	for _, sn := range stores {
		for _, ln := range locks {
			for _, pn := range providers {
				log.Debugf("running %s/%s/%s n=%d", pn, ln, sn, cfg.N)
				r, err := runOne(cfg, pn, ln, sn)
				if err != nil {
					return results, err
				}
				results = append(results, r)
			}
		}
	}
	return results, nil
}

func runOne(cfg runConfig, providerName, lockName, storeName string) (r benchResult, err error) {
	r = benchResult{Provider: providerName, Lock: lockName, Store: storeName}

	lk, err := malloc.ParseLockKind(lockName)
	if err != nil {
		return r, err
	}
	sk, err := chunkstore.ParseKind(storeName)
	if err != nil {
		return r, err
	}
	p, err := newProvider(providerName, cfg.Capacity)
	if err != nil {
		return r, err
	}
	h := malloc.NewHeap(p, &malloc.Option{Lock: lk, Store: sk})
	defer closeHeap(h, &err)

	po := &parallel.Option{Workers: cfg.Workers}
	ptrs := make([]unsafe.Pointer, cfg.N)

	start := time.Now()
	parallel.Run(cfg.N, po, func(i int) {
		ptrs[i] = h.Alloc(1)
	})
	r.Alloc = time.Since(start)
	r.ChunksAfterAll = h.Inspect().ChunkCount()
	for _, ptr := range ptrs {
		if ptr == nil {
			r.NilAllocs++
		}
	}

	start = time.Now()
	parallel.Run(cfg.N, po, func(i int) {
		h.Free(ptrs[i])
		ptrs[i] = nil
	})
	r.Free = time.Since(start)
	r.ChunksAfterFree = h.Inspect().ChunkCount()

	for i := range ptrs {
		ptrs[i] = h.Alloc(1)
	}
	start = time.Now()
	for i := range ptrs {
		h.Free(ptrs[i])
		ptrs[i] = nil
	}
	r.SequentialFree = time.Since(start)

	if err := h.Inspect().Check(); err != nil {
		return r, err
	}
	r.Stats = h.Stats()
	r.RSS = residentMemory()
	return r, nil
}

// closeHeap releases the backing block of h and reports a release failure
// through err unless an earlier error is already set.
func closeHeap(h *malloc.Heap, err *error) {
	if cerr := h.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// residentMemory returns the resident set size of this process, or 0 if the
// platform does not report it.
func residentMemory() uint64 {
	mem := sigar.ProcMem{}
	if err := mem.Get(os.Getpid()); err != nil {
		logger.Component(nil, "heapbench").Debugf("process memory unavailable: %v", err)
		return 0
	}
	return mem.Resident
}

func printResults(w io.Writer, results []benchResult) {
	for _, r := range results {
		fmt.Fprintf(w, "Heap %s/%s/%s (backing %s)\n", r.Provider, r.Lock, r.Store,
			humanize.IBytes(uint64(r.Stats.BackingSize)))
		fmt.Fprintf(w, "  parallel alloc:   %v (%d chunks, %d nil)\n", r.Alloc, r.ChunksAfterAll, r.NilAllocs)
		fmt.Fprintf(w, "  parallel free:    %v (%d chunks)\n", r.Free, r.ChunksAfterFree)
		fmt.Fprintf(w, "  sequential free:  %v\n", r.SequentialFree)
		fmt.Fprintf(w, "  splits %s, merges %s forward %s backward, rss %s\n",
			humanize.Comma(r.Stats.Splits), humanize.Comma(r.Stats.CoalesceForward),
			humanize.Comma(r.Stats.CoalesceBackward), humanize.IBytes(r.RSS))
		fmt.Fprintln(w)
	}
}
