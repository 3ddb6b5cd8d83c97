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
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	KindGo   = "go"
	KindPool = "pool"
	KindMmap = "mmap"
)

// ErrOutOfMemory is returned (possibly wrapped) whenever a region cannot be provided.
var ErrOutOfMemory = errors.New("alloc: out of memory")

// Allocator hands out byte regions for record storage.
//
// Allocate returns a region of length size; capacity may be larger and
// contents are unspecified. Reallocate returns a region of length size that
// holds the first min(len(b), size) bytes of b and releases b, which must not
// be used afterwards. On error b is left untouched and still owned by the
// caller. Free releases a region obtained from the same allocator.
//
// Implementations are safe for concurrent use.
type Allocator interface {
	Allocate(size int) ([]byte, error)
	Reallocate(b []byte, size int) ([]byte, error)
	Free(b []byte)
}

var DefaultAllocator Allocator = NewGoAllocator()

func CheckKind(kind string) bool {
	switch strings.ToLower(kind) {
	case KindGo, KindPool, KindMmap:
		return true
	}
	return false
}

// New builds the allocator named by kind. A positive limit caps the bytes it may hold at once.
func New(kind string, limit int64) (Allocator, error) {
	var a Allocator
	switch strings.ToLower(kind) {
	case KindGo, "":
		a = NewGoAllocator()
	case KindPool:
		a = NewPoolAllocator()
	case KindMmap:
		a = NewMmapAllocator()
	default:
		return nil, errors.Newf("alloc: unknown allocator kind %q", kind)
	}
	if limit > 0 {
		a = NewLimitAllocator(a, limit)
	}
	return a, nil
}

func checkSize(size int) error {
	if size < 0 {
		return errors.Wrapf(ErrOutOfMemory, "negative size %d", size)
	}
	return nil
}
