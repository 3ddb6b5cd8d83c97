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

package bench

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/zuoyebang/bitalosbuf/butils"
	"github.com/zuoyebang/bitalosbuf/butils/alloc"
	"github.com/zuoyebang/bitalosbuf/dynbuf/buffer"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/config"
	"github.com/zuoyebang/bitalosbuf/dynbuf/internal/log"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"
	"github.com/panjf2000/ants/v2"
)

// maxSequence bounds how many growth events a report lists.
const maxSequence = 32

type Options struct {
	ItemSize        int
	InitialCapacity int
	Appends         int
	Buffers         int
	Workers         int
	Allocator       alloc.Allocator
	AllocatorKind   string
}

func OptionsFromConfig(c *config.Config, a alloc.Allocator) Options {
	return Options{
		ItemSize:        c.Buffer.ItemSize,
		InitialCapacity: c.Buffer.InitialCapacity,
		Appends:         c.Bench.Appends,
		Buffers:         c.Bench.Buffers,
		Workers:         c.Bench.Workers,
		Allocator:       a,
		AllocatorKind:   c.Buffer.Allocator,
	}
}

type Report struct {
	Allocator        string   `json:"allocator"`
	ItemSize         int      `json:"item_size"`
	Buffers          int      `json:"buffers"`
	AppendsPerBuffer int      `json:"appends_per_buffer"`
	CapacitySequence []int    `json:"capacity_sequence"`
	Grows            int      `json:"grows"`
	BytesCopied      int      `json:"bytes_copied"`
	CopiedPerAppend  float64  `json:"copied_per_append"`
	Failed           int      `json:"failed"`
	Errors           []string `json:"errors,omitempty"`
	Elapsed          string   `json:"elapsed"`
}

type result struct {
	sequence []int
	stats    buffer.Stats
	err      error
}

type task struct {
	id   int
	opts *Options
	res  *result
	wg   *sync.WaitGroup
}

func encodeRecord(rec []byte, id, i int) {
	for j := range rec {
		rec[j] = 0
	}
	binary.LittleEndian.PutUint64(rec[:8], uint64(id)<<32|uint64(i))
}

func runOne(t *task) {
	defer t.wg.Done()
	opts := t.opts

	b, err := buffer.New(opts.ItemSize, opts.InitialCapacity, buffer.WithAllocator(opts.Allocator))
	if err != nil {
		t.res.err = err
		return
	}
	defer b.Release()

	// records shorter than 8 bytes keep only the low bytes of the tag
	rec := make([]byte, opts.ItemSize)
	wide := make([]byte, 8+opts.ItemSize)
	for i := 0; i < opts.Appends; i++ {
		encodeRecord(wide, t.id, i)
		copy(rec, wide)
		before := b.Cap()
		if err = b.Append(rec); err != nil {
			t.res.err = errors.Wrapf(err, "buffer %d append %d", t.id, i)
			t.res.stats = b.Stats()
			return
		}
		if b.Cap() != before && len(t.res.sequence) < maxSequence {
			t.res.sequence = append(t.res.sequence, b.Cap())
		}
	}

	for i := 0; i < opts.Appends; i += 1 + opts.Appends/64 {
		got, err := b.Get(i)
		if err != nil {
			t.res.err = err
			return
		}
		encodeRecord(wide, t.id, i)
		if string(got) != string(wide[:opts.ItemSize]) {
			t.res.err = errors.Newf("buffer %d record %d corrupted", t.id, i)
			return
		}
	}
	t.res.stats = b.Stats()
}

// Run fills opts.Buffers independent buffers concurrently and summarizes their growth.
func Run(opts Options) (*Report, error) {
	if opts.Allocator == nil {
		opts.Allocator = alloc.DefaultAllocator
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	defer log.Cost("dynbuf bench buffers:", opts.Buffers, " appends:", opts.Appends)()

	pool, err := ants.NewPoolWithFunc(opts.Workers, func(i interface{}) {
		runOne(i.(*task))
	}, ants.WithPreAlloc(true))
	if err != nil {
		return nil, errors.Wrap(err, "new ants pool")
	}
	defer pool.Release()

	start := time.Now()
	results := make([]result, opts.Buffers)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		t := &task{id: i, opts: &opts, res: &results[i], wg: &wg}
		if err := pool.Invoke(t); err != nil {
			wg.Done()
			results[i].err = errors.Wrapf(err, "invoke buffer %d", i)
		}
	}
	wg.Wait()

	r := &Report{
		Allocator:        opts.AllocatorKind,
		ItemSize:         opts.ItemSize,
		Buffers:          opts.Buffers,
		AppendsPerBuffer: opts.Appends,
		Elapsed:          time.Since(start).String(),
	}
	appended := 0
	for i := range results {
		res := &results[i]
		if res.err != nil {
			r.Failed++
			r.Errors = append(r.Errors, res.err.Error())
			log.Warnf("dynbuf bench buffer %d fail err:%s", i, res.err.Error())
		}
		if r.CapacitySequence == nil && res.err == nil {
			r.CapacitySequence = res.sequence
		}
		r.Grows += res.stats.Grows
		r.BytesCopied += res.stats.BytesCopied
		appended += res.stats.Length
	}
	if appended > 0 {
		r.CopiedPerAppend = float64(r.BytesCopied) / float64(appended)
	}
	return r, nil
}

func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (r *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"allocator: %s\nitem_size: %d\nbuffers: %d\nappends_per_buffer: %d\ncapacity_sequence: %v\ngrows: %d\nbytes_copied: %d (%s)\ncopied_per_append: %.3f\nfailed: %d\nelapsed: %s\n",
		r.Allocator, r.ItemSize, r.Buffers, r.AppendsPerBuffer, r.CapacitySequence,
		r.Grows, r.BytesCopied, butils.FmtSize(uint64(r.BytesCopied)), r.CopiedPerAppend, r.Failed, r.Elapsed)
	if err != nil {
		return err
	}
	for _, e := range r.Errors {
		if _, err = fmt.Fprintf(w, "error: %s\n", e); err != nil {
			return err
		}
	}
	return nil
}

func (r *Report) Write(w io.Writer, format string) error {
	if format == config.ReportJSON {
		return r.WriteJSON(w)
	}
	return r.WriteText(w)
}
