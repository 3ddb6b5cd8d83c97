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

	"github.com/cockroachdb/errors"
)

const goAlignment = 8

// GoAllocator serves regions from the Go heap, rounding sizes up to 8 bytes.
type GoAllocator struct{}

func NewGoAllocator() *GoAllocator { return &GoAllocator{} }

func (a *GoAllocator) Allocate(size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	n, ok := math2.AlignUp(size, goAlignment)
	if !ok {
		return nil, errors.Wrapf(ErrOutOfMemory, "size %d overflows alignment", size)
	}
	return make([]byte, n)[:size], nil
}

func (a *GoAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	if size <= cap(b) && size >= 0 {
		return b[:size], nil
	}
	nb, err := a.Allocate(size)
	if err != nil {
		return nil, err
	}
	copy(nb, b)
	return nb, nil
}

// Free is a no-op; the garbage collector reclaims heap regions.
func (a *GoAllocator) Free(b []byte) {}
