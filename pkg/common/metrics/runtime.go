// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"
)

// RuntimeCollector periodically reports goroutine and heap gauges.
type RuntimeCollector struct {
	interval time.Duration

	numGoRoutines tally.Gauge
	memoryHeap    tally.Gauge
	memoryStack   tally.Gauge
	numGC         tally.Counter

	lastNumGC atomic.Uint32
	running   atomic.Bool
}

// NewRuntimeCollector creates a collector reporting under scope.
func NewRuntimeCollector(scope tally.Scope, interval time.Duration) *RuntimeCollector {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	runtimeScope := scope.SubScope("runtime")
	c := &RuntimeCollector{
		interval:      interval,
		numGoRoutines: runtimeScope.Gauge("num_goroutines"),
		memoryHeap:    runtimeScope.Gauge("memory_heap"),
		memoryStack:   runtimeScope.Gauge("memory_stack"),
		numGC:         runtimeScope.Counter("memory_num_gc"),
	}
	c.lastNumGC.Store(memStats.NumGC)
	return c
}

// IsRunning returns true while Run is looping.
func (c *RuntimeCollector) IsRunning() bool {
	return c.running.Load()
}

// Run emits runtime metrics every interval until ctx is done. A second
// concurrent call returns immediately.
func (c *RuntimeCollector) Run(ctx context.Context) {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	defer c.running.Store(false)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.generate()
		case <-ctx.Done():
			return
		}
	}
}

func (c *RuntimeCollector) generate() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	c.numGoRoutines.Update(float64(runtime.NumGoroutine()))
	c.memoryHeap.Update(float64(memStats.HeapAlloc))
	c.memoryStack.Update(float64(memStats.StackInuse))

	// NumGC only ever grows, modulo wrap at 2^32.
	last := c.lastNumGC.Swap(memStats.NumGC)
	if delta := memStats.NumGC - last; delta > 0 {
		c.numGC.Inc(int64(delta))
	}
}
