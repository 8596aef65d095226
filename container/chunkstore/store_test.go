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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds() []Kind {
	return []Kind{KindSlice, KindList}
}

func TestStoreEmpty(t *testing.T) {
	for _, k := range kinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := New(k)
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, Nil, s.Front())
			assert.Equal(t, Nil, s.Back())
			assert.Equal(t, Nil, s.Find(0))
			assert.Nil(t, s.At(Nil))
			assert.Equal(t, Nil, s.Next(Nil))
			assert.Equal(t, Nil, s.Prev(Nil))
			assert.Empty(t, Collect(s))
		})
	}
}

func TestStoreInsertRemove(t *testing.T) {
	for _, k := range kinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := New(k)
			h := s.PushBack(Chunk{Off: 0, Len: 100})
			require.Equal(t, h, s.Front())
			require.Equal(t, h, s.Back())

			// split 100 into 10 + 90, then 90 into 20 + 70
			s.At(h).Len = 10
			h1 := s.InsertAfter(h, Chunk{Off: 10, Len: 90})
			s.At(h1).Len = 20
			h2 := s.InsertAfter(h1, Chunk{Off: 30, Len: 70})
			assert.Equal(t, h2, s.Back())
			assert.Equal(t, []Chunk{{Off: 0, Len: 10}, {Off: 10, Len: 20}, {Off: 30, Len: 70}}, Collect(s))

			// insert in the middle keeps order
			mid := s.Find(10)
			require.NotEqual(t, Nil, mid)
			s.At(mid).Len = 5
			s.InsertAfter(mid, Chunk{Off: 15, Len: 15, Used: true})
			assert.Equal(t, []Chunk{{Off: 0, Len: 10}, {Off: 10, Len: 5}, {Off: 15, Len: 15, Used: true}, {Off: 30, Len: 70}}, Collect(s))
			assert.Equal(t, 4, s.Len())

			// walk backwards
			var offs []int
			for h := s.Back(); h != Nil; h = s.Prev(h) {
				offs = append(offs, s.At(h).Off)
			}
			assert.Equal(t, []int{30, 15, 10, 0}, offs)

			s.Remove(s.Find(15))
			s.Remove(s.Find(0))
			assert.Equal(t, []Chunk{{Off: 10, Len: 5}, {Off: 30, Len: 70}}, Collect(s))
			assert.Equal(t, s.Find(10), s.Front())
			assert.Equal(t, s.Find(30), s.Back())

			s.Remove(s.Back())
			s.Remove(s.Front())
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, Nil, s.Front())
			assert.Equal(t, Nil, s.Back())

			// removing Nil is a no-op
			s.Remove(Nil)
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestStoreReset(t *testing.T) {
	for _, k := range kinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := New(k)
			h := s.PushBack(Chunk{Off: 0, Len: 1})
			s.InsertAfter(h, Chunk{Off: 1, Len: 1})
			s.Reset()
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, Nil, s.Front())
			h = s.PushBack(Chunk{Off: 0, Len: 2})
			assert.Equal(t, []Chunk{{Off: 0, Len: 2}}, Collect(s))
			assert.Equal(t, h, s.Back())
		})
	}
}

func TestStoreInsertAfterInvalid(t *testing.T) {
	for _, k := range kinds() {
		t.Run(k.String(), func(t *testing.T) {
			assert.Panics(t, func() { New(k).InsertAfter(Nil, Chunk{Len: 1}) })
		})
	}
}

func TestListStableHandles(t *testing.T) {
	l := NewList()
	a := l.PushBack(Chunk{Off: 0, Len: 1})
	b := l.PushBack(Chunk{Off: 1, Len: 1})
	c := l.PushBack(Chunk{Off: 2, Len: 1})

	l.Remove(a)
	// b and c keep their handles
	assert.Equal(t, 1, l.At(b).Off)
	assert.Equal(t, 2, l.At(c).Off)
	assert.Nil(t, l.At(a))

	// the freed slot is recycled
	d := l.InsertAfter(c, Chunk{Off: 3, Len: 1})
	assert.Equal(t, a, d)
	assert.Equal(t, d, l.Back())
	assert.Equal(t, c, l.Prev(d))
	assert.Equal(t, []Chunk{{Off: 1, Len: 1}, {Off: 2, Len: 1}, {Off: 3, Len: 1}}, Collect(l))
}

func TestParseKind(t *testing.T) {
	for _, k := range kinds() {
		got, err := ParseKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("tree")
	assert.Error(t, err)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestChunkString(t *testing.T) {
	assert.Equal(t, "{off:8 len:16 used}", Chunk{Off: 8, Len: 16, Used: true}.String())
	assert.Equal(t, 24, Chunk{Off: 8, Len: 16}.End())
}

func BenchmarkStoreSplitMerge(b *testing.B) {
	for _, k := range kinds() {
		b.Run(k.String(), func(b *testing.B) {
			s := New(k)
			h := s.PushBack(Chunk{Off: 0, Len: 1 << 20})
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c := s.At(h)
				c.Len = 64
				n := s.InsertAfter(h, Chunk{Off: 64, Len: 1<<20 - 64})
				s.Remove(n)
				s.At(h).Len = 1 << 20
			}
		})
	}
}
