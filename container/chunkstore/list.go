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

// node is an arena entry. prev and next are arena indices, not pointers, so
// splitting and merging can rewire neighbours from either side.
type node struct {
	chunk Chunk
	prev  Handle
	next  Handle
	live  bool
}

// List is a Store backed by a doubly linked list living in an index arena.
// Removed entries are recycled through a free-slot stack.
type List struct {
	nodes []node
	slots []Handle // recycled arena indices
	head  Handle
	tail  Handle
	n     int
}

var _ Store = (*List)(nil)

// NewList returns an empty list store.
func NewList() *List {
	return &List{head: Nil, tail: Nil}
}

func (l *List) valid(h Handle) bool {
	return h >= 0 && int(h) < len(l.nodes) && l.nodes[h].live
}

func (l *List) alloc(c Chunk) Handle {
	var h Handle
	if n := len(l.slots); n > 0 {
		h = l.slots[n-1]
		l.slots = l.slots[:n-1]
	} else {
		l.nodes = append(l.nodes, node{})
		h = Handle(len(l.nodes) - 1)
	}
	l.nodes[h] = node{chunk: c, prev: Nil, next: Nil, live: true}
	l.n++
	return h
}

func (l *List) Len() int {
	return l.n
}

func (l *List) Front() Handle {
	return l.head
}

func (l *List) Back() Handle {
	return l.tail
}

func (l *List) Next(h Handle) Handle {
	if !l.valid(h) {
		return Nil
	}
	return l.nodes[h].next
}

func (l *List) Prev(h Handle) Handle {
	if !l.valid(h) {
		return Nil
	}
	return l.nodes[h].prev
}

func (l *List) At(h Handle) *Chunk {
	if !l.valid(h) {
		return nil
	}
	return &l.nodes[h].chunk
}

func (l *List) PushBack(c Chunk) Handle {
	h := l.alloc(c)
	if l.tail == Nil {
		l.head, l.tail = h, h
		return h
	}
	l.nodes[h].prev = l.tail
	l.nodes[l.tail].next = h
	l.tail = h
	return h
}

func (l *List) InsertAfter(at Handle, c Chunk) Handle {
	if !l.valid(at) {
		panic("chunkstore: InsertAfter on invalid handle")
	}
	h := l.alloc(c) // may grow l.nodes, index afterwards
	next := l.nodes[at].next
	l.nodes[h].prev, l.nodes[h].next = at, next
	l.nodes[at].next = h
	if next == Nil {
		l.tail = h
	} else {
		l.nodes[next].prev = h
	}
	return h
}

func (l *List) Remove(h Handle) {
	if !l.valid(h) {
		return
	}
	nd := l.nodes[h]
	if nd.prev == Nil {
		l.head = nd.next
	} else {
		l.nodes[nd.prev].next = nd.next
	}
	if nd.next == Nil {
		l.tail = nd.prev
	} else {
		l.nodes[nd.next].prev = nd.prev
	}
	l.nodes[h] = node{prev: Nil, next: Nil}
	l.slots = append(l.slots, h)
	l.n--
}

func (l *List) Find(off int) Handle {
	for h := l.head; h != Nil; h = l.nodes[h].next {
		if l.nodes[h].chunk.Off == off {
			return h
		}
	}
	return Nil
}

func (l *List) Reset() {
	l.nodes = l.nodes[:0]
	l.slots = l.slots[:0]
	l.head, l.tail, l.n = Nil, Nil, 0
}
