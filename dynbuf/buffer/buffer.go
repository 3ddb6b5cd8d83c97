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

// Package buffer implements a type-erased dynamic array of fixed-size records.
//
// A Buffer stores Len() records of ItemSize() bytes each in one contiguous
// region. Records are opaque; the buffer only copies them in and out. A
// Buffer is not safe for concurrent mutation.
package buffer

import (
	"github.com/zuoyebang/bitalosbuf/butils/alloc"
	"github.com/zuoyebang/bitalosbuf/butils/math2"
	"github.com/zuoyebang/bitalosbuf/butils/unsafe2"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/log"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/metrics"

	"github.com/cockroachdb/errors"
)

type Buffer struct {
	itemSize  int
	length    int
	capacity  int
	storage   []byte
	allocator alloc.Allocator
	released  bool

	grows       int
	bytesCopied int
}

type Option func(*Buffer)

// WithAllocator sets the allocator that owns the buffer's storage.
func WithAllocator(a alloc.Allocator) Option {
	return func(b *Buffer) {
		if a != nil {
			b.allocator = a
		}
	}
}

type Stats struct {
	Length      int `json:"length"`
	Capacity    int `json:"capacity"`
	ItemSize    int `json:"item_size"`
	Grows       int `json:"grows"`
	BytesCopied int `json:"bytes_copied"`
}

func New(itemSize, initialCapacity int, opts ...Option) (*Buffer, error) {
	if itemSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "item size %d", itemSize)
	}
	if initialCapacity < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "initial capacity %d", initialCapacity)
	}

	b := &Buffer{
		itemSize:  itemSize,
		allocator: alloc.DefaultAllocator,
	}
	for _, opt := range opts {
		opt(b)
	}

	size, ok := math2.MulInt(initialCapacity, itemSize)
	if !ok {
		metrics.AllocFailTotal.Inc()
		return nil, errors.Wrapf(ErrAllocation, "%d records of %d bytes overflow", initialCapacity, itemSize)
	}
	storage, err := b.allocator.Allocate(size)
	if err != nil {
		metrics.AllocFailTotal.Inc()
		log.Warnf("dynbuf new fail itemSize:%d capacity:%d err:%s", itemSize, initialCapacity, err.Error())
		return nil, allocationError(err, "allocate %d records of %d bytes", initialCapacity, itemSize)
	}

	b.storage = storage
	b.capacity = initialCapacity
	metrics.AllocatedBuffers.Inc()
	return b, nil
}

func (b *Buffer) Len() int {
	return b.length
}

func (b *Buffer) Cap() int {
	return b.capacity
}

func (b *Buffer) ItemSize() int {
	return b.itemSize
}

func (b *Buffer) Stats() Stats {
	return Stats{
		Length:      b.length,
		Capacity:    b.capacity,
		ItemSize:    b.itemSize,
		Grows:       b.grows,
		BytesCopied: b.bytesCopied,
	}
}

// Bytes returns the live records back to back. The view is invalidated by
// any call that may grow the buffer.
func (b *Buffer) Bytes() []byte {
	n := b.length * b.itemSize
	return b.storage[:n:n]
}

func (b *Buffer) slot(index int) []byte {
	off := index * b.itemSize
	return b.storage[off : off+b.itemSize : off+b.itemSize]
}

func (b *Buffer) checkIndex(index int) error {
	if b.released {
		return ErrReleased
	}
	if index < 0 || index >= b.length {
		metrics.IndexErrorTotal.Inc()
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", index, b.length)
	}
	return nil
}

func (b *Buffer) checkRecord(record []byte) error {
	if b.released {
		return ErrReleased
	}
	if len(record) != b.itemSize {
		return errors.Wrapf(ErrRecordSize, "record of %d bytes, item size %d", len(record), b.itemSize)
	}
	return nil
}

// Get returns a copy of the record at index.
func (b *Buffer) Get(index int) ([]byte, error) {
	if err := b.checkIndex(index); err != nil {
		return nil, err
	}
	out := make([]byte, b.itemSize)
	copy(out, b.slot(index))
	return out, nil
}

// GetInto copies the record at index into dst, which must hold ItemSize bytes.
func (b *Buffer) GetInto(index int, dst []byte) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if len(dst) < b.itemSize {
		return errors.Wrapf(ErrRecordSize, "destination of %d bytes, item size %d", len(dst), b.itemSize)
	}
	copy(dst, b.slot(index))
	return nil
}

func (b *Buffer) Set(index int, record []byte) error {
	if err := b.checkIndex(index); err != nil {
		return err
	}
	if err := b.checkRecord(record); err != nil {
		return err
	}
	copy(b.slot(index), record)
	return nil
}

func (b *Buffer) Append(record []byte) error {
	if err := b.checkRecord(record); err != nil {
		return err
	}
	if b.length == b.capacity {
		record = b.detach(record)
		if err := b.Grow(b.length + 1); err != nil {
			return err
		}
	}
	copy(b.slot(b.length), record)
	b.length++
	return nil
}

// detach copies p out of the buffer's storage when it points into it, since
// Grow may free the region p reads from.
func (b *Buffer) detach(p []byte) []byte {
	if !unsafe2.Overlaps(p, b.storage[:cap(b.storage)]) {
		return p
	}
	return append([]byte(nil), p...)
}

// Extend appends every record packed in records, growing at most once.
func (b *Buffer) Extend(records []byte) error {
	if b.released {
		return ErrReleased
	}
	if len(records)%b.itemSize != 0 {
		return errors.Wrapf(ErrRecordSize, "%d bytes is not a multiple of item size %d", len(records), b.itemSize)
	}
	n := len(records) / b.itemSize
	if n == 0 {
		return nil
	}
	target, ok := math2.AddInt(b.length, n)
	if !ok {
		return errors.Wrapf(ErrAllocation, "length %d + %d records overflows", b.length, n)
	}
	if target > b.capacity {
		records = b.detach(records)
		if err := b.Grow(target); err != nil {
			return err
		}
	}
	copy(b.storage[b.length*b.itemSize:], records)
	b.length = target
	return nil
}

// Release hands the storage back to its allocator. Later calls report ErrReleased.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.allocator.Free(b.storage)
	b.storage = nil
	b.length = 0
	b.capacity = 0
	b.released = true
	metrics.ReleasedBuffers.Inc()
}
