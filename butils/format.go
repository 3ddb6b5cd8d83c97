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
	"fmt"
	"time"
)

var sizeUnits = []struct {
	shift uint
	name  string
}{
	{50, "PB"}, {40, "TB"}, {30, "GB"}, {20, "MB"}, {10, "KB"},
}

// FmtSize renders size with three decimals of the largest unit below it.
func FmtSize(size uint64) string {
	for _, u := range sizeUnits {
		if size >= 1<<u.shift {
			return fmt.Sprintf("%d.%03d%s", size>>u.shift, (size>>(u.shift-10))%1024*1000/1024, u.name)
		}
	}
	return fmt.Sprintf("%dB", size)
}

func FmtDuration(d time.Duration) string {
	switch {
	case d > time.Second:
		return fmt.Sprintf("%d.%03ds", d/time.Second, d/time.Millisecond%1000)
	case d > time.Millisecond:
		return fmt.Sprintf("%d.%03dms", d/time.Millisecond, d/time.Microsecond%1000)
	case d > time.Microsecond:
		return fmt.Sprintf("%d.%03dus", d/time.Microsecond, d%1000)
	default:
		return fmt.Sprintf("%dns", d)
	}
}
