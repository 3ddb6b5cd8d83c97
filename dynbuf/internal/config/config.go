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

package config

import (
	"bytes"

	"github.com/zuoyebang/bitalosbuf/butils/alloc"
	"github.com/zuoyebang/bitalosbuf/butils/bytesize"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

type Config struct {
	Log    LogConfig    `toml:"log"`
	Buffer BufferConfig `toml:"buffer"`
	Bench  BenchConfig  `toml:"bench"`
}

var GlobalConfig = NewDefaultConfig()

func NewDefaultConfig() *Config {
	c := &Config{}
	if _, err := toml.Decode(DefaultConfig, c); err != nil {
		panic(errors.Wrap(err, "decode default config"))
	}
	return c
}

func (c *Config) LoadFromFile(configFile string) error {
	if _, err := toml.DecodeFile(configFile, c); err != nil {
		return errors.Wrapf(err, "load config %s", configFile)
	}
	return c.Validate()
}

func (c *Config) String() string {
	var b bytes.Buffer
	e := toml.NewEncoder(&b)
	e.Indent = "    "
	_ = e.Encode(c)
	return b.String()
}

type LogConfig struct {
	IsDebug      bool   `toml:"is_debug"`
	RotationTime string `toml:"rotation_time"`
	LogPath      string `toml:"log_path"`
}

type BufferConfig struct {
	ItemSize        int            `toml:"item_size"`
	InitialCapacity int            `toml:"initial_capacity"`
	Allocator       string         `toml:"allocator"`
	MaxBytes        bytesize.Int64 `toml:"max_bytes"`
}

// NewAllocator builds the configured allocator, capped by MaxBytes when it is positive.
func (bc *BufferConfig) NewAllocator() (alloc.Allocator, error) {
	return alloc.New(bc.Allocator, bc.MaxBytes.Int64())
}

const (
	ReportText = "text"
	ReportJSON = "json"
)

type BenchConfig struct {
	Appends int    `toml:"appends"`
	Buffers int    `toml:"buffers"`
	Workers int    `toml:"workers"`
	Report  string `toml:"report"`
	Metrics bool   `toml:"metrics"`
}
