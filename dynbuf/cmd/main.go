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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/bench"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/config"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/log"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/metrics"

	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.String("conf.file", "", "please input the dynbuf config file")
	itemSize := pflag.Int("item.size", 0, "record size in bytes")
	allocator := pflag.String("allocator", "", "allocator kind: go, pool or mmap")
	appends := pflag.Int("appends", 0, "appends per buffer")
	buffers := pflag.Int("buffers", 0, "number of buffers")
	workers := pflag.Int("workers", 0, "worker pool size")
	report := pflag.String("report", "", "report format: text or json")
	showMetrics := pflag.Bool("metrics", false, "dump prometheus metrics after the report")
	pflag.Parse()

	c := config.GlobalConfig
	if *configFile != "" {
		if err := c.LoadFromFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "load config failed err:%s\n", err.Error())
			os.Exit(1)
		}
	}

	flags := pflag.CommandLine
	if flags.Changed("item.size") {
		c.Buffer.ItemSize = *itemSize
	}
	if flags.Changed("allocator") {
		c.Buffer.Allocator = *allocator
	}
	if flags.Changed("appends") {
		c.Bench.Appends = *appends
	}
	if flags.Changed("buffers") {
		c.Bench.Buffers = *buffers
	}
	if flags.Changed("workers") {
		c.Bench.Workers = *workers
	}
	if flags.Changed("report") {
		c.Bench.Report = *report
	}
	if flags.Changed("metrics") {
		c.Bench.Metrics = *showMetrics
	}
	if err := c.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config err:%s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(run(c, os.Stdout))
}

// run executes the bench and returns the process exit code. The logger is
// flushed before it returns on every path.
func run(c *config.Config, stdout io.Writer) int {
	log.NewLogger(&log.Options{
		IsDebug:      c.Log.IsDebug,
		RotationTime: c.Log.RotationTime,
		LogPath:      c.Log.LogPath,
	})
	defer log.CloseLog()

	log.Infof("run dynbuf bench with config\n%s", c)

	a, err := c.Buffer.NewAllocator()
	if err != nil {
		log.Errorf("new allocator fail err:%s", err.Error())
		return 1
	}

	r, err := bench.Run(bench.OptionsFromConfig(c, a))
	if err != nil {
		log.Errorf("bench fail err:%s", err.Error())
		return 1
	}
	if err = r.Write(stdout, c.Bench.Report); err != nil {
		log.Errorf("write report fail err:%s", err.Error())
		return 1
	}
	if c.Bench.Metrics {
		metrics.WritePrometheus(stdout)
	}
	if r.Failed > 0 {
		log.Errorf("dynbuf bench %d of %d buffers failed", r.Failed, r.Buffers)
		return 2
	}
	return 0
}
