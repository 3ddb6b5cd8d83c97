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

package bytesize

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	_ = 1 << (10 * iota)
	KB
	MB
	GB
	TB
	PB
)

var (
	ErrBadByteSize     = errors.New("invalid bytesize")
	ErrBadByteSizeUnit = errors.New("invalid bytesize unit")
)

var units = []struct {
	suffix string
	size   int64
}{
	{"pb", PB}, {"tb", TB}, {"gb", GB}, {"mb", MB}, {"kb", KB},
	{"p", PB}, {"t", TB}, {"g", GB}, {"m", MB}, {"k", KB},
	{"b", 1},
}

// Int64 is a byte count that reads and writes as "64mb", "512kb" or a bare number.
type Int64 int64

func (b Int64) Int64() int64 {
	return int64(b)
}

func (b Int64) AsInt() int {
	return int(b)
}

func (b Int64) String() string {
	text, _ := b.MarshalText()
	return string(text)
}

func (b Int64) MarshalText() ([]byte, error) {
	v := int64(b)
	if v == 0 {
		return []byte("0"), nil
	}
	abs := v
	if abs < 0 {
		abs = -abs
	}
	for _, u := range units[:5] {
		if abs%u.size == 0 {
			return []byte(strconv.FormatInt(v/u.size, 10) + u.suffix), nil
		}
	}
	return []byte(strconv.FormatInt(v, 10)), nil
}

func (b *Int64) UnmarshalText(text []byte) error {
	n, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = Int64(n)
	return nil
}

func Parse(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, ErrBadByteSize
	}

	unit := int64(1)
	for _, u := range units {
		if strings.HasSuffix(s, u.suffix) {
			unit = u.size
			s = strings.TrimSpace(strings.TrimSuffix(s, u.suffix))
			break
		}
	}
	if s == "" {
		return 0, ErrBadByteSize
	}
	if c := s[len(s)-1]; c < '0' || c > '9' {
		if c != '.' {
			return 0, errors.Wrapf(ErrBadByteSizeUnit, "%q", s)
		}
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n * unit, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadByteSize, "%q", s)
	}
	return int64(f * float64(unit)), nil
}

func MustParse(s string) int64 {
	v, err := Parse(s)
	if err != nil {
		panic("parse bytesize failed, err : " + err.Error())
	}
	return v
}
