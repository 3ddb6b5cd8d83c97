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

import "github.com/cockroachdb/errors"

var (
	ErrAllocation      = errors.New("dynbuf: allocation failed")
	ErrIndexOutOfRange = errors.New("dynbuf: index out of range")
	ErrRecordSize      = errors.New("dynbuf: record size mismatch")
	ErrInvalidArgument = errors.New("dynbuf: invalid argument")
	ErrReleased        = errors.New("dynbuf: buffer released")
)

// allocationError keeps the allocator's message and makes err match ErrAllocation.
func allocationError(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrAllocation)
}
