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

package memsrc

import (
	"sync/atomic"
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/pkg/errors"
)

// Fixed hands out one caller-owned buffer of fixed capacity.
//
// Every Acquire returns the same buffer, so at most one heap may hold it at a
// time. A second Acquire before Release fails with ErrInUse.
type Fixed struct {
	buf   []byte
	inuse int32
}

var _ Provider = (*Fixed)(nil)

// NewFixed returns a provider over buf. The provider never copies or resizes buf.
func NewFixed(buf []byte) (*Fixed, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyBuffer
	}
	return &Fixed{buf: buf}, nil
}

// NewFixedSize allocates a buffer of capacity bytes and returns a provider over it.
// The buffer is not zeroed.
func NewFixedSize(capacity int) (*Fixed, error) {
	if capacity <= 0 {
		return nil, ErrEmptyBuffer
	}
	return NewFixed(dirtmake.Bytes(capacity, capacity))
}

// MinimalSize returns the buffer capacity.
func (p *Fixed) MinimalSize() int {
	return len(p.buf)
}

// Acquire returns the whole buffer if size fits in it.
func (p *Fixed) Acquire(size int) (Block, error) {
	if size > len(p.buf) {
		return Block{}, errors.Wrapf(ErrTooLarge, "want %d, capacity %d", size, len(p.buf))
	}
	if !atomic.CompareAndSwapInt32(&p.inuse, 0, 1) {
		return Block{}, ErrInUse
	}
	return blockOf(p.buf), nil
}

// Release marks the buffer available again.
func (p *Fixed) Release(b Block) error {
	if b.Base != unsafe.Pointer(&p.buf[0]) {
		return ErrNotOwned
	}
	if !atomic.CompareAndSwapInt32(&p.inuse, 1, 0) {
		return errors.Wrap(ErrNotOwned, "buffer not acquired")
	}
	return nil
}
