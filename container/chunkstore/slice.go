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

package chunkstore

// Slice is a Store backed by a contiguous slice.
// Insert and remove move the tail of the slice; iteration is cache friendly.
type Slice struct {
	chunks []Chunk
}

var _ Store = (*Slice)(nil)

// NewSlice returns an empty slice store.
func NewSlice() *Slice {
	return &Slice{}
}

func (s *Slice) valid(h Handle) bool {
	return h >= 0 && int(h) < len(s.chunks)
}

func (s *Slice) Len() int {
	return len(s.chunks)
}

func (s *Slice) Front() Handle {
	if len(s.chunks) == 0 {
		return Nil
	}
	return 0
}

func (s *Slice) Back() Handle {
	return Handle(len(s.chunks) - 1)
}

func (s *Slice) Next(h Handle) Handle {
	if !s.valid(h) || !s.valid(h+1) {
		return Nil
	}
	return h + 1
}

func (s *Slice) Prev(h Handle) Handle {
	if !s.valid(h) || h == 0 {
		return Nil
	}
	return h - 1
}

func (s *Slice) At(h Handle) *Chunk {
	if !s.valid(h) {
		return nil
	}
	return &s.chunks[h]
}

func (s *Slice) PushBack(c Chunk) Handle {
	s.chunks = append(s.chunks, c)
	return Handle(len(s.chunks) - 1)
}

func (s *Slice) InsertAfter(h Handle, c Chunk) Handle {
	if !s.valid(h) {
		panic("chunkstore: InsertAfter on invalid handle")
	}
	i := int(h) + 1
	s.chunks = append(s.chunks, Chunk{})
	copy(s.chunks[i+1:], s.chunks[i:])
	s.chunks[i] = c
	return Handle(i)
}

func (s *Slice) Remove(h Handle) {
	if !s.valid(h) {
		return
	}
	i := int(h)
	copy(s.chunks[i:], s.chunks[i+1:])
	s.chunks[len(s.chunks)-1] = Chunk{}
	s.chunks = s.chunks[:len(s.chunks)-1]
}

func (s *Slice) Find(off int) Handle {
	for i := range s.chunks {
		if s.chunks[i].Off == off {
			return Handle(i)
		}
	}
	return Nil
}

func (s *Slice) Reset() {
	s.chunks = s.chunks[:0]
}
