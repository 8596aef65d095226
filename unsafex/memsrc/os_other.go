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

//go:build !unix

package memsrc

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

func pageSize() int {
	return os.Getpagesize()
}

func mapAnon(n int) ([]byte, error) {
	m, err := mmap.MapRegion(nil, n, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func unmap(mem []byte) error {
	m := mmap.MMap(mem)
	return m.Unmap()
}
