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
	"sync"
	"unsafe"

	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/pkg/errors"
)

// Pooled borrows a buffer of fixed capacity from mcache on Acquire and returns
// it on Release. Like Fixed it serves one heap at a time.
type Pooled struct {
	capacity int

	mu  sync.Mutex
	buf []byte // non-nil while acquired
}

var _ Provider = (*Pooled)(nil)

// NewPooled returns a provider that borrows capacity bytes per Acquire.
func NewPooled(capacity int) (*Pooled, error) {
	if capacity <= 0 {
		return nil, ErrEmptyBuffer
	}
	return &Pooled{capacity: capacity}, nil
}

// MinimalSize returns the buffer capacity.
func (p *Pooled) MinimalSize() int {
	return p.capacity
}

// Acquire borrows a buffer from mcache if size fits the capacity.
func (p *Pooled) Acquire(size int) (Block, error) {
	if size > p.capacity {
		return Block{}, errors.Wrapf(ErrTooLarge, "want %d, capacity %d", size, p.capacity)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf != nil {
		return Block{}, ErrInUse
	}
	p.buf = mcache.Malloc(p.capacity)
	return blockOf(p.buf), nil
}

// Release hands the buffer back to mcache.
func (p *Pooled) Release(b Block) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buf == nil || b.Base != unsafe.Pointer(&p.buf[0]) {
		return ErrNotOwned
	}
	mcache.Free(p.buf)
	p.buf = nil
	return nil
}
