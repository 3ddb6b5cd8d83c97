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
	"github.com/zuoyebang/bitalosbuf/butils/alloc"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/log"

	"github.com/cockroachdb/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) Validate() error {
	if err := c.checkLogConfig(); err != nil {
		return err
	}
	if err := c.checkBufferConfig(); err != nil {
		return err
	}
	return c.checkBenchConfig()
}

func (c *Config) checkLogConfig() error {
	if c.Log.RotationTime == "" {
		c.Log.RotationTime = log.DefaultRotate
	}
	if !log.CheckRotation(c.Log.RotationTime) {
		return errors.Wrapf(ErrInvalidConfig, "log.rotation_time %q", c.Log.RotationTime)
	}
	return nil
}

func (c *Config) checkBufferConfig() error {
	if c.Buffer.ItemSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "buffer.item_size %d must be positive", c.Buffer.ItemSize)
	}
	if c.Buffer.InitialCapacity < 0 {
		return errors.Wrapf(ErrInvalidConfig, "buffer.initial_capacity %d is negative", c.Buffer.InitialCapacity)
	}
	if c.Buffer.Allocator == "" {
		c.Buffer.Allocator = alloc.KindGo
	}
	if !alloc.CheckKind(c.Buffer.Allocator) {
		return errors.Wrapf(ErrInvalidConfig, "buffer.allocator %q", c.Buffer.Allocator)
	}
	if c.Buffer.MaxBytes < 0 {
		return errors.Wrapf(ErrInvalidConfig, "buffer.max_bytes %s is negative", c.Buffer.MaxBytes)
	}
	return nil
}

func (c *Config) checkBenchConfig() error {
	if c.Bench.Appends < 0 {
		return errors.Wrapf(ErrInvalidConfig, "bench.appends %d is negative", c.Bench.Appends)
	}
	if c.Bench.Buffers < 1 {
		c.Bench.Buffers = 1
	}
	if c.Bench.Workers < 1 {
		c.Bench.Workers = 1
	}
	switch c.Bench.Report {
	case "":
		c.Bench.Report = ReportText
	case ReportText, ReportJSON:
	default:
		return errors.Wrapf(ErrInvalidConfig, "bench.report %q", c.Bench.Report)
	}
	return nil
}
