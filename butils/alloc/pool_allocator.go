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
	"github.com/zuoyebang/bitalosbuf/butils/bytepools"
)

// PoolAllocator recycles regions up to bytepools.MaxPoolBufSize through
// power-of-two sync.Pool tiers and falls back to the heap above that.
type PoolAllocator struct {
	pools *bytepools.BytePools
}

func NewPoolAllocator() *PoolAllocator {
	return &PoolAllocator{pools: bytepools.NewBytePools()}
}

func (a *PoolAllocator) Allocate(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return a.pools.Get(size), nil
}

func (a *PoolAllocator) Reallocate(b []byte, size int) ([]byte, error) {
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

func (a *PoolAllocator) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	a.pools.Put(b)
}
