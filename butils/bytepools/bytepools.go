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

package bytepools

import (
	"math/bits"
	"sync"
)

const (
	minPoolBufShift = 4
	poolsNum        = 13
	MaxPoolBufSize  = 1 << (minPoolBufShift + poolsNum - 1) // 64KB
)

// BytePools keeps power-of-two tiers of byte slices from 16B up to MaxPoolBufSize.
type BytePools struct {
	pools [poolsNum]sync.Pool
}

func NewBytePools() *BytePools {
	p := new(BytePools)
	for i := 0; i < poolsNum; i++ {
		size := 1 << (minPoolBufShift + i)
		p.pools[i] = sync.Pool{
			New: func() interface{} {
				b := make([]byte, size)
				return &b
			},
		}
	}
	return p
}

func (p *BytePools) getIndex(size int) int {
	if size <= 1<<minPoolBufShift {
		return 0
	}
	if size > MaxPoolBufSize {
		return -1
	}
	return bits.Len(uint(size-1)) - minPoolBufShift
}

// Get returns a slice of length size. Its contents are not zeroed.
func (p *BytePools) Get(size int) []byte {
	index := p.getIndex(size)
	if index == -1 {
		return make([]byte, size)
	}
	bp := p.pools[index].Get().(*[]byte)
	return (*bp)[:size]
}

// Put returns b to its tier. Slices whose capacity is not an exact tier are dropped.
func (p *BytePools) Put(b []byte) {
	c := cap(b)
	index := p.getIndex(c)
	if index < 0 || 1<<(minPoolBufShift+index) != c {
		return
	}
	b = b[:c]
	p.pools[index].Put(&b)
}
