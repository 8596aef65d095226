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

// Package parallel runs an index-addressed batch of work on a bounded set of goroutines.
package parallel

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Option ...
type Option struct {
	// Workers is the max number of goroutines running the batch.
	// Values <= 0 mean runtime.GOMAXPROCS(0).
	Workers int

	// Chunk is the number of consecutive indices a worker claims at a time.
	// Small batches of cheap calls benefit from larger chunks. Values <= 0 mean 1.
	Chunk int
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		Workers: runtime.GOMAXPROCS(0),
		Chunk:   1,
	}
}

// PanicError carries a panic raised by a worker together with its stack.
type PanicError struct {
	Index int
	Value interface{}
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("parallel: panic at index %d: %v\n%s", e.Index, e.Value, e.Stack)
}

// ForEach calls f(i) for every i in [0, n) using the default options.
func ForEach(n int, f func(i int)) {
	Run(n, nil, f)
}

// Run calls f(i) for every i in [0, n) and returns when all calls have returned.
//
// The order of calls is unspecified. If any call panics, the remaining indices
// are skipped and Run panics on the caller's goroutine with a *PanicError
// describing the first panic.
func Run(n int, o *Option, f func(i int)) {
	if n <= 0 {
		return
	}
	if o == nil {
		o = DefaultOption()
	}
	workers, chunk := o.Workers, o.Chunk
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if chunk <= 0 {
		chunk = 1
	}
	if batches := (n + chunk - 1) / chunk; workers > batches {
		workers = batches
	}

	var (
		next    int64
		stopped int32
		first   atomic.Value // *PanicError
		wg      sync.WaitGroup
	)
	run := func() {
		defer wg.Done()
		idx := -1
		defer func() {
			if r := recover(); r != nil {
				atomic.StoreInt32(&stopped, 1)
				first.CompareAndSwap(nil, &PanicError{Index: idx, Value: r, Stack: debug.Stack()})
			}
		}()
		for atomic.LoadInt32(&stopped) == 0 {
			begin := int(atomic.AddInt64(&next, int64(chunk))) - chunk
			if begin >= n {
				return
			}
			end := begin + chunk
			if end > n {
				end = n
			}
			for idx = begin; idx < end; idx++ {
				f(idx)
			}
		}
	}
	wg.Add(workers)
	for i := 1; i < workers; i++ {
		go run()
	}
	run()
	wg.Wait()

	if p, _ := first.Load().(*PanicError); p != nil {
		panic(p)
	}
}
