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

package butils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFmtSize(t *testing.T) {
	assert.Equal(t, "1023B", FmtSize(1023))
	assert.Equal(t, "1.000KB", FmtSize(1024))
	assert.Equal(t, "1.500KB", FmtSize(1536))
	assert.Equal(t, "2.500MB", FmtSize(2<<20+512<<10))
	assert.Equal(t, "3.000GB", FmtSize(3<<30))
	assert.Equal(t, "1.000TB", FmtSize(1<<40))
	assert.Equal(t, "2.000PB", FmtSize(2<<50))
}

func TestFmtDuration(t *testing.T) {
	assert.Equal(t, "500ns", FmtDuration(500))
	assert.Equal(t, "1.500us", FmtDuration(1500*time.Nanosecond))
	assert.Equal(t, "2.250ms", FmtDuration(2250*time.Microsecond))
	assert.Equal(t, "3.010s", FmtDuration(3010*time.Millisecond))
}
