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

package buffer

import (
	"github.com/zuoyebang/bitalosbuf/butils/math2"
	"github.com/zuoyebang/bitalosbuf/butils/unsafe2"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/log"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/metrics"

	"github.com/cockroachdb/errors"
)

// growCapacity over-allocates proportionally to n: about 12.5% plus a small
// constant, giving 0, 4, 8, 16, 25, 35, 46, 58, 72, 88, ... for successive
// single appends.
func growCapacity(n int) (int, bool) {
	extra := 6
	if n < 9 {
		extra = 3
	}
	c, ok := math2.AddInt(n, n>>3)
	if !ok {
		return 0, false
	}
	return math2.AddInt(c, extra)
}

// Grow makes room for at least requestedLength records. Existing records keep
// their indices. On failure the buffer is left exactly as it was.
func (b *Buffer) Grow(requestedLength int) error {
	if b.released {
		return ErrReleased
	}
	if requestedLength < 0 {
		return errors.Wrapf(ErrInvalidArgument, "requested length %d", requestedLength)
	}
	if requestedLength <= b.capacity {
		return nil
	}

	newCapacity, ok := growCapacity(requestedLength)
	if !ok {
		metrics.AllocFailTotal.Inc()
		return errors.Wrapf(ErrAllocation, "capacity for %d records overflows", requestedLength)
	}
	newSize, ok := math2.MulInt(newCapacity, b.itemSize)
	if !ok {
		metrics.AllocFailTotal.Inc()
		return errors.Wrapf(ErrAllocation, "%d records of %d bytes overflow", newCapacity, b.itemSize)
	}

	old := b.storage
	storage, err := b.allocator.Reallocate(old, newSize)
	if err != nil {
		metrics.AllocFailTotal.Inc()
		log.Warnf("dynbuf grow fail length:%d capacity:%d newCapacity:%d itemSize:%d err:%s",
			b.length, b.capacity, newCapacity, b.itemSize, err.Error())
		return allocationError(err, "grow to %d records of %d bytes", newCapacity, b.itemSize)
	}

	copied := 0
	if !unsafe2.SameBase(old, storage) {
		copied = len(old)
	}
	log.Debugf("dynbuf grow capacity:%d->%d itemSize:%d copied:%d", b.capacity, newCapacity, b.itemSize, copied)

	b.storage = storage
	b.capacity = newCapacity
	b.grows++
	b.bytesCopied += copied
	metrics.ObserveGrow(copied)
	return nil
}
