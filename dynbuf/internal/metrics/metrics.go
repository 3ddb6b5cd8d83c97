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

package metrics

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	GrowTotal        = metrics.NewCounter("dynbuf_grow_total")
	GrowBytesCopied  = metrics.NewCounter("dynbuf_grow_bytes_copied_total")
	AllocFailTotal   = metrics.NewCounter("dynbuf_alloc_fail_total")
	IndexErrorTotal  = metrics.NewCounter("dynbuf_index_error_total")
	ReleasedBuffers  = metrics.NewCounter("dynbuf_released_total")
	AllocatedBuffers = metrics.NewCounter("dynbuf_allocated_total")
)

func ObserveGrow(bytesCopied int) {
	GrowTotal.Inc()
	if bytesCopied > 0 {
		GrowBytesCopied.Add(bytesCopied)
	}
}

// WritePrometheus dumps every dynbuf counter in Prometheus text format.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, false)
}
