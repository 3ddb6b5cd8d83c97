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

package math2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulInt(t *testing.T) {
	tests := []struct {
		a, b int
		want int
		ok   bool
	}{
		{0, 0, 0, true},
		{4, 25, 100, true},
		{math.MaxInt, 1, math.MaxInt, true},
		{math.MaxInt, 2, 0, false},
		{math.MaxInt/8 + 1, 8, 0, false},
		{1 << 40, 1 << 30, 0, false},
		{-1, 4, 0, false},
	}
	for _, tt := range tests {
		got, ok := MulInt(tt.a, tt.b)
		assert.Equal(t, tt.ok, ok, "%d*%d", tt.a, tt.b)
		assert.Equal(t, tt.want, got, "%d*%d", tt.a, tt.b)
	}
}

func TestAddInt(t *testing.T) {
	v, ok := AddInt(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = AddInt(math.MaxInt, 1)
	assert.False(t, ok)

	_, ok = AddInt(-5, 1)
	assert.False(t, ok)
}

func TestAlignUp(t *testing.T) {
	for _, c := range [][3]int{{0, 8, 0}, {1, 8, 8}, {8, 8, 8}, {9, 8, 16}, {4097, 4096, 8192}} {
		v, ok := AlignUp(c[0], c[1])
		assert.True(t, ok)
		assert.Equal(t, c[2], v)
	}
	_, ok := AlignUp(math.MaxInt, 8)
	assert.False(t, ok)
}
