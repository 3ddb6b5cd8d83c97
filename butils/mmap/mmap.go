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

package mmap

import (
	"os"

	"github.com/cockroachdb/errors"
)

const (
	// RDONLY maps the memory read-only.
	RDONLY = 0
	// RDWR maps the memory read-write.
	RDWR = 1 << iota
	// EXEC if set, the mapped memory is marked as executable.
	EXEC
)

var ErrZeroLength = errors.New("anonymous mapping requires non-zero length")

// Mbuf is a region of anonymous private memory outside the Go heap.
type Mbuf []byte

// PageSize is the granularity of every mapping.
func PageSize() int {
	return os.Getpagesize()
}

// MapAnon maps length bytes of zeroed anonymous memory.
func MapAnon(length int, prot int) (Mbuf, error) {
	if length <= 0 {
		return nil, ErrZeroLength
	}
	b, err := mmapAnon(length, prot)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap anon %d bytes", length)
	}
	return Mbuf(b), nil
}

func (m *Mbuf) Unmap() error {
	if len(*m) == 0 {
		return nil
	}
	err := m.unmap()
	*m = nil
	return err
}
