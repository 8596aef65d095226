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

// Package chunkstore keeps the ordered chunk sequence of a first-fit heap.
//
// A Store holds Chunks sorted by ascending offset. The heap guarantees the chunks
// tile the backing block exactly; the store itself only keeps the order and
// hands out Handles to its entries.
//
// Two containers are provided and behave identically apart from constant factors:
//
//   - KindSlice: a contiguous []Chunk. Handles are indices and shift on insert/remove.
//   - KindList: a doubly linked list stored in an index arena. Handles stay stable
//     until the entry is removed.
package chunkstore

import "fmt"

// Chunk is one contiguous range of the backing block.
type Chunk struct {
	Off  int  // offset from the start of the backing block
	Len  int  // length in bytes
	Used bool // true while handed out to a caller
}

// End returns the offset right after the chunk.
func (c Chunk) End() int {
	return c.Off + c.Len
}

func (c Chunk) String() string {
	state := "free"
	if c.Used {
		state = "used"
	}
	return fmt.Sprintf("{off:%d len:%d %s}", c.Off, c.Len, state)
}

// Handle refers to an entry of a Store.
type Handle int

// Nil is the handle of no entry.
const Nil Handle = -1

// Store is an ordered sequence of chunks.
//
// Handles passed to a Store must come from the same Store. For KindSlice a
// handle is invalidated by any InsertAfter or Remove at or before its position.
type Store interface {
	// Len returns the number of chunks.
	Len() int

	// Front returns the lowest-offset chunk, or Nil.
	Front() Handle

	// Back returns the highest-offset chunk, or Nil.
	Back() Handle

	// Next returns the chunk after h, or Nil.
	Next(h Handle) Handle

	// Prev returns the chunk before h, or Nil.
	Prev(h Handle) Handle

	// At returns the chunk at h. The pointer is valid until the next mutation.
	At(h Handle) *Chunk

	// PushBack appends c after the last chunk.
	PushBack(c Chunk) Handle

	// InsertAfter inserts c right after h and returns its handle.
	InsertAfter(h Handle, c Chunk) Handle

	// Remove drops the chunk at h.
	Remove(h Handle)

	// Find returns the chunk starting at off, or Nil. It scans linearly.
	Find(off int) Handle

	// Reset drops all chunks.
	Reset()
}

// Kind selects a Store container.
type Kind int

const (
	// KindSlice keeps chunks in a contiguous slice.
	KindSlice Kind = iota
	// KindList keeps chunks in an index-linked list.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindSlice:
		return "slice"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "slice":
		return KindSlice, nil
	case "list":
		return KindList, nil
	}
	return 0, fmt.Errorf("chunkstore: unknown kind %q", s)
}

// New returns an empty store of the given kind.
func New(k Kind) Store {
	if k == KindList {
		return NewList()
	}
	return NewSlice()
}

// Collect copies the chunks of s in order.
func Collect(s Store) []Chunk {
	ret := make([]Chunk, 0, s.Len())
	for h := s.Front(); h != Nil; h = s.Next(h) {
		ret = append(ret, *s.At(h))
	}
	return ret
}
