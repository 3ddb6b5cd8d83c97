// Copyright 2019-2024 Xu Ruibo (hustxurb@163.com) and Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package alloc

import (
	"github.com/zuoyebang/bitalosbuf/butils/math2"
	"github.com/zuoyebang/bitalosbuf/butils/mmap"

	"github.com/cockroachdb/errors"
)

// MmapAllocator backs every non-empty region with its own anonymous mapping,
// keeping record storage off the Go heap. Regions are page aligned.
type MmapAllocator struct {
	pageSize int
}

func NewMmapAllocator() *MmapAllocator {
	return &MmapAllocator{pageSize: mmap.PageSize()}
}

func (a *MmapAllocator) Allocate(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}
	n, ok := math2.AlignUp(size, a.pageSize)
	if !ok {
		return nil, errors.Wrapf(ErrOutOfMemory, "size %d overflows page alignment", size)
	}
	m, err := mmap.MapAnon(n, mmap.RDWR)
	if err != nil {
		return nil, errors.Mark(err, ErrOutOfMemory)
	}
	return m[:size], nil
}

func (a *MmapAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	if size <= cap(b) && size >= 0 {
		return b[:size], nil
	}
	nb, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	a.Free(b)
	return nb, nil
}

func (a *MmapAllocator) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	m := mmap.Mbuf(b[:cap(b)])
	_ = m.Unmap()
}
