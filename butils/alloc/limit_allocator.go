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
	"github.com/cockroachdb/errors"
	"go.uber.org/atomic"
)

// LimitAllocator caps the bytes held through an inner allocator. Regions are
// charged by capacity. A reallocation past the current capacity must fit both
// the old and the new region under the limit, since both are live while bytes
// are copied. One that fits within the current capacity reserves nothing.
type LimitAllocator struct {
	inner Allocator
	limit int64
	used  atomic.Int64
}

func NewLimitAllocator(inner Allocator, limit int64) *LimitAllocator {
	return &LimitAllocator{inner: inner, limit: limit}
}

func (a *LimitAllocator) Limit() int64 {
	return a.limit
}

func (a *LimitAllocator) Used() int64 {
	return a.used.Load()
}

func (a *LimitAllocator) reserve(size int) error {
	if size < 0 {
		return checkSize(size)
	}
	for {
		used := a.used.Load()
		if used+int64(size) > a.limit {
			return errors.Wrapf(ErrOutOfMemory, "limit %d exceeded: used %d, requested %d", a.limit, used, size)
		}
		if a.used.CAS(used, used+int64(size)) {
			return nil
		}
	}
}

func (a *LimitAllocator) Allocate(size int) ([]byte, error) {
	if err := a.reserve(size); err != nil {
		return nil, err
	}
	b, err := a.inner.Allocate(size)
	if err != nil {
		a.used.Sub(int64(size))
		return nil, err
	}
	a.used.Add(int64(cap(b) - size))
	return b, nil
}

func (a *LimitAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	oldCap := cap(b)
	reserved := 0
	if size > oldCap {
		reserved = size
	}
	if err := a.reserve(reserved); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, checkSize(size)
	}
	nb, err := a.inner.Reallocate(b, size)
	if err != nil {
		a.used.Sub(int64(reserved))
		return nil, err
	}
	a.used.Add(int64(cap(nb) - oldCap - reserved))
	return nb, nil
}

func (a *LimitAllocator) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	a.used.Sub(int64(cap(b)))
	a.inner.Free(b)
}
