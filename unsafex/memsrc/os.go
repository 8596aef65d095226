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
	"github.com/pkg/errors"
)

// OS maps anonymous memory from the operating system.
// Each Acquire creates a new private read/write mapping.
type OS struct {
	pagesize int
}

var _ Provider = (*OS)(nil)

// NewOS returns a provider backed by anonymous OS mappings.
func NewOS() *OS {
	return &OS{pagesize: pageSize()}
}

// MinimalSize returns the platform page size.
func (p *OS) MinimalSize() int {
	return p.pagesize
}

// Acquire maps size bytes rounded up to a whole number of pages.
func (p *OS) Acquire(size int) (Block, error) {
	n := roundUp(size, p.pagesize)
	if n < size { // overflow
		return Block{}, errors.Wrapf(ErrTooLarge, "mmap %d bytes", size)
	}
	mem, err := mapAnon(n)
	if err != nil {
		return Block{}, errors.Wrapf(err, "mmap %d bytes", n)
	}
	return blockOf(mem), nil
}

// Release unmaps a block returned by Acquire.
func (p *OS) Release(b Block) error {
	if b.IsZero() || len(b.mem) == 0 {
		return ErrNotOwned
	}
	return errors.Wrap(unmap(b.mem), "munmap")
}
