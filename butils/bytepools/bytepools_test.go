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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTiers(t *testing.T) {
	p := NewBytePools()
	tests := []struct{ size, tier int }{
		{0, 16},
		{1, 16},
		{16, 16},
		{17, 32},
		{100, 128},
		{4096, 4096},
		{4097, 8192},
		{MaxPoolBufSize, MaxPoolBufSize},
		{MaxPoolBufSize + 1, MaxPoolBufSize + 1},
	}
	for _, tt := range tests {
		b := p.Get(tt.size)
		assert.Equal(t, tt.size, len(b), "size %d", tt.size)
		assert.Equal(t, tt.tier, cap(b), "size %d", tt.size)
		p.Put(b)
	}
}

func TestPutDropsOddCapacity(t *testing.T) {
	p := NewBytePools()
	p.Put(make([]byte, 100))
	p.Put(nil)

	b := p.Get(100)
	assert.Equal(t, 128, cap(b))
}
