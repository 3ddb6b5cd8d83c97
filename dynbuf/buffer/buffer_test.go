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
	"encoding/binary"
	"math"
	"testing"

	"github.com/zuoyebang/bitalosbuf/butils/alloc"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func record(itemSize int, seed int) []byte {
	r := make([]byte, itemSize)
	for i := range r {
		r[i] = byte(seed*31 + i)
	}
	return r
}

// flakyAllocator fails every request while fail is set.
type flakyAllocator struct {
	alloc.Allocator
	fail bool
}

func (a *flakyAllocator) Allocate(size int) ([]byte, error) {
	if a.fail {
		return nil, errors.Wrapf(alloc.ErrOutOfMemory, "flaky allocate %d", size)
	}
	return a.Allocator.Allocate(size)
}

func (a *flakyAllocator) Reallocate(b []byte, size int) ([]byte, error) {
	if a.fail {
		return nil, errors.Wrapf(alloc.ErrOutOfMemory, "flaky reallocate %d", size)
	}
	return a.Allocator.Reallocate(b, size)
}

func TestScenario(t *testing.T) {
	b, err := New(4, 0)
	require.NoError(t, err)
	defer b.Release()

	require.NoError(t, b.Append(u32(1)))
	assert.Equal(t, 4, b.Cap())
	for _, v := range []uint32{2, 3, 4} {
		require.NoError(t, b.Append(u32(v)))
	}
	assert.Equal(t, 4, b.Len())

	v, err := b.Get(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(v))
	v, err = b.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(v))

	require.NoError(t, b.Set(2, u32(99)))
	v, err = b.Get(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(99), binary.LittleEndian.Uint32(v))
	assert.Equal(t, 4, b.Len())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 4)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = New(-8, 4)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = New(8, -1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNewAllocationFailure(t *testing.T) {
	_, err := New(math.MaxInt/2, 4)
	assert.True(t, errors.Is(err, ErrAllocation))

	fa := &flakyAllocator{Allocator: alloc.NewGoAllocator(), fail: true}
	_, err = New(8, 16, WithAllocator(fa))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.True(t, errors.Is(err, alloc.ErrOutOfMemory))
}

func TestNewInitialCapacity(t *testing.T) {
	b, err := New(16, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 10, b.Cap())
	assert.Equal(t, 16, b.ItemSize())

	for i := 0; i < 10; i++ {
		require.NoError(t, b.Append(record(16, i)))
	}
	assert.Equal(t, 10, b.Cap())
	assert.Equal(t, 0, b.Stats().Grows)

	require.NoError(t, b.Append(record(16, 10)))
	assert.Equal(t, 11+1+6, b.Cap())
}

func TestRoundTrip(t *testing.T) {
	for _, kind := range []string{alloc.KindGo, alloc.KindPool, alloc.KindMmap} {
		for _, itemSize := range []int{1, 3, 8, 24, 100} {
			a, err := alloc.New(kind, 0)
			require.NoError(t, err)
			b, err := New(itemSize, 0, WithAllocator(a))
			require.NoError(t, err)

			const k = 500
			for i := 0; i < k; i++ {
				require.NoError(t, b.Append(record(itemSize, i)))
				require.Equal(t, i+1, b.Len())
			}
			for i := 0; i < k; i += 7 {
				require.NoError(t, b.Set(i, record(itemSize, -i)))
			}
			dst := make([]byte, itemSize)
			for i := 0; i < k; i++ {
				want := record(itemSize, i)
				if i%7 == 0 {
					want = record(itemSize, -i)
				}
				got, err := b.Get(i)
				require.NoError(t, err)
				require.Equal(t, want, got, "%s itemSize:%d index:%d", kind, itemSize, i)
				require.NoError(t, b.GetInto(i, dst))
				require.Equal(t, want, dst)
			}
			b.Release()
		}
	}
}

func TestGetReturnsCopy(t *testing.T) {
	b, err := New(2, 0)
	require.NoError(t, err)
	require.NoError(t, b.Append([]byte{1, 2}))

	v, err := b.Get(0)
	require.NoError(t, err)
	v[0] = 9

	v, err = b.Get(0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, v)
}

func TestIndexOutOfRange(t *testing.T) {
	b, err := New(4, 8)
	require.NoError(t, err)
	require.NoError(t, b.Append(u32(7)))
	require.NoError(t, b.Append(u32(8)))
	before := append([]byte(nil), b.Bytes()...)

	for _, index := range []int{-1, 2, 3, 8, math.MaxInt} {
		_, err := b.Get(index)
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "get %d", index)
		err = b.GetInto(index, make([]byte, 4))
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "getinto %d", index)
		err = b.Set(index, u32(1))
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "set %d", index)
	}
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, before, b.Bytes())
}

func TestRecordSize(t *testing.T) {
	b, err := New(4, 0)
	require.NoError(t, err)

	assert.True(t, errors.Is(b.Append([]byte{1, 2, 3}), ErrRecordSize))
	assert.True(t, errors.Is(b.Append([]byte{1, 2, 3, 4, 5}), ErrRecordSize))
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())

	require.NoError(t, b.Append(u32(1)))
	assert.True(t, errors.Is(b.Set(0, nil), ErrRecordSize))
	assert.True(t, errors.Is(b.GetInto(0, make([]byte, 3)), ErrRecordSize))
	require.NoError(t, b.GetInto(0, make([]byte, 8)))
}

func TestAppendAllocationFailure(t *testing.T) {
	fa := &flakyAllocator{Allocator: alloc.NewGoAllocator()}
	b, err := New(8, 0, WithAllocator(fa))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Append(record(8, i)))
	}
	require.Equal(t, 4, b.Cap())
	before := append([]byte(nil), b.Bytes()...)

	fa.fail = true
	err = b.Append(record(8, 4))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.True(t, errors.Is(err, alloc.ErrOutOfMemory))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 4, b.Cap())
	assert.Equal(t, before, b.Bytes())

	require.NoError(t, b.Set(1, record(8, 100)))
	got, err := b.Get(1)
	require.NoError(t, err)
	assert.Equal(t, record(8, 100), got)

	fa.fail = false
	require.NoError(t, b.Append(record(8, 4)))
	assert.Equal(t, 5, b.Len())
	assert.Equal(t, 8, b.Cap())
	got, err = b.Get(0)
	require.NoError(t, err)
	assert.Equal(t, record(8, 0), got)
	got, err = b.Get(4)
	require.NoError(t, err)
	assert.Equal(t, record(8, 4), got)
}

func TestAppendLimitAllocator(t *testing.T) {
	la := alloc.NewLimitAllocator(alloc.NewGoAllocator(), 64)
	b, err := New(8, 0, WithAllocator(la))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Append(record(8, i)))
	}
	assert.Equal(t, int64(32), la.Used())

	err = b.Append(record(8, 4))
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, int64(32), la.Used())

	b.Release()
	assert.Equal(t, int64(0), la.Used())
}

func TestExtend(t *testing.T) {
	b, err := New(2, 0)
	require.NoError(t, err)

	require.NoError(t, b.Extend(nil))
	assert.Equal(t, 0, b.Cap())

	require.NoError(t, b.Extend([]byte{1, 1, 2, 2, 3, 3}))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3+0+3, b.Cap())
	assert.Equal(t, 1, b.Stats().Grows)

	require.NoError(t, b.Append([]byte{4, 4}))
	require.NoError(t, b.Extend(make([]byte, 2*20)))
	assert.Equal(t, 24, b.Len())
	assert.Equal(t, 24+3+6, b.Cap())
	assert.Equal(t, 2, b.Stats().Grows)
	assert.Equal(t, []byte{1, 1, 2, 2, 3, 3, 4, 4, 0, 0}, b.Bytes()[:10])

	assert.True(t, errors.Is(b.Extend([]byte{1, 2, 3}), ErrRecordSize))
	assert.Equal(t, 24, b.Len())
}

func TestExtendAllocationFailure(t *testing.T) {
	fa := &flakyAllocator{Allocator: alloc.NewGoAllocator()}
	b, err := New(4, 0, WithAllocator(fa))
	require.NoError(t, err)
	require.NoError(t, b.Append(u32(5)))

	fa.fail = true
	err = b.Extend(make([]byte, 4*10))
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 4, b.Cap())
	assert.Equal(t, u32(5), b.Bytes())
}

func TestRelease(t *testing.T) {
	b, err := New(4, 4, WithAllocator(alloc.NewMmapAllocator()))
	require.NoError(t, err)
	require.NoError(t, b.Append(u32(1)))

	b.Release()
	b.Release()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
	assert.Empty(t, b.Bytes())

	_, err = b.Get(0)
	assert.True(t, errors.Is(err, ErrReleased))
	assert.True(t, errors.Is(b.Set(0, u32(1)), ErrReleased))
	assert.True(t, errors.Is(b.Append(u32(1)), ErrReleased))
	assert.True(t, errors.Is(b.Extend(u32(1)), ErrReleased))
	assert.True(t, errors.Is(b.Grow(10), ErrReleased))
}

func BenchmarkAppend(b *testing.B) {
	rec := record(16, 1)
	for _, kind := range []string{alloc.KindGo, alloc.KindPool, alloc.KindMmap} {
		b.Run(kind, func(b *testing.B) {
			a, _ := alloc.New(kind, 0)
			buf, err := New(16, 0, WithAllocator(a))
			if err != nil {
				b.Fatal(err)
			}
			defer buf.Release()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := buf.Append(rec); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestExtendSelf(t *testing.T) {
	for _, kind := range []string{alloc.KindGo, alloc.KindPool, alloc.KindMmap} {
		t.Run(kind, func(t *testing.T) {
			a, err := alloc.New(kind, 0)
			require.NoError(t, err)
			b, err := New(8, 0, WithAllocator(a))
			require.NoError(t, err)
			defer b.Release()

			for b.Len() < 679 || b.Len() != b.Cap() {
				require.NoError(t, b.Append(record(8, b.Len())))
			}
			n := b.Len()
			want := append([]byte(nil), b.Bytes()...)

			require.NoError(t, b.Extend(b.Bytes()))
			require.Equal(t, 2*n, b.Len())
			assert.Equal(t, want, b.Bytes()[:n*8])
			assert.Equal(t, want, b.Bytes()[n*8:])

			require.NoError(t, b.Extend(b.Bytes()[:8]))
			got, err := b.Get(2 * n)
			require.NoError(t, err)
			assert.Equal(t, record(8, 0), got)
		})
	}
}

func TestAppendSelf(t *testing.T) {
	const itemSize = 4096
	for _, kind := range []string{alloc.KindGo, alloc.KindPool, alloc.KindMmap} {
		t.Run(kind, func(t *testing.T) {
			a, err := alloc.New(kind, 0)
			require.NoError(t, err)
			b, err := New(itemSize, 0, WithAllocator(a))
			require.NoError(t, err)
			defer b.Release()

			for i := 0; i < 4; i++ {
				require.NoError(t, b.Append(record(itemSize, i)))
			}
			require.Equal(t, b.Cap(), b.Len())

			require.NoError(t, b.Append(b.Bytes()[itemSize:2*itemSize]))
			assert.Equal(t, 5, b.Len())
			got, err := b.Get(4)
			require.NoError(t, err)
			assert.Equal(t, record(itemSize, 1), got)

			require.NoError(t, b.Set(0, b.Bytes()[3*itemSize:4*itemSize]))
			got, err = b.Get(0)
			require.NoError(t, err)
			assert.Equal(t, record(itemSize, 3), got)
		})
	}
}
