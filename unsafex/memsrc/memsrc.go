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

// Package memsrc supplies the raw backing memory a heap carves allocations from.
//
// A Provider hands out one contiguous Block per Acquire. Three providers are
// available:
//
//   - OS: anonymous read/write mapping from the operating system, sized in pages.
//   - Fixed: a caller-owned buffer of fixed capacity, usable by one heap at a time.
//   - Pooled: a fixed-capacity buffer borrowed from mcache and returned on Release.
//
// Providers never hand out memory they do not own, and a failed Acquire always
// returns the zero Block together with a non-nil error.
package memsrc

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	// ErrTooLarge is returned when the requested size exceeds a fixed capacity.
	ErrTooLarge = errors.New("memsrc: requested size exceeds capacity")

	// ErrInUse is returned when a single-buffer provider is acquired twice without Release.
	ErrInUse = errors.New("memsrc: buffer already acquired")

	// ErrNotOwned is returned by Release for a block the provider did not hand out.
	ErrNotOwned = errors.New("memsrc: block not owned by provider")

	// ErrEmptyBuffer is returned when a buffer provider is built over zero bytes.
	ErrEmptyBuffer = errors.New("memsrc: empty buffer")
)

// Block is a contiguous range of backing memory.
// The zero Block means "no memory".
type Block struct {
	Base unsafe.Pointer
	Size int

	mem []byte
}

// IsZero reports whether b holds no memory.
func (b Block) IsZero() bool {
	return b.Base == nil || b.Size == 0
}

// Bytes returns the block as a byte slice. It aliases the backing memory.
func (b Block) Bytes() []byte {
	if b.IsZero() {
		return nil
	}
	return unsafe.Slice((*byte)(b.Base), b.Size)
}

func blockOf(mem []byte) Block {
	if len(mem) == 0 {
		return Block{}
	}
	return Block{Base: unsafe.Pointer(&mem[0]), Size: len(mem), mem: mem}
}

// Provider obtains backing memory for a heap.
type Provider interface {
	// Acquire returns a block of at least size bytes.
	// On failure it returns the zero Block and an error.
	Acquire(size int) (Block, error)

	// Release gives a block obtained from Acquire back to the provider.
	Release(b Block) error

	// MinimalSize is the allocation granularity: the page size for OS mappings,
	// the capacity for buffer providers.
	MinimalSize() int
}

// roundUp rounds n up to a multiple of m. n <= 0 is rounded to m.
func roundUp[T constraints.Integer](n, m T) T {
	if n <= 0 {
		return m
	}
	return (n + m - 1) / m * m
}
