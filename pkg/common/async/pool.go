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

package async

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

const (
	// DefaultMaxWorkers of a Pool.
	DefaultMaxWorkers = 4
)

// PoolOptions for constructing a new Pool.
type PoolOptions struct {
	MaxWorkers int
}

// Pool structure for running up to a maximum number of jobs concurrently.
// The pool has an internal queue, such that all jobs added will be accepted
// but not run until it reached the front of the queue and a worker is free.
type Pool struct {
	sync.Mutex
	options   PoolOptions
	queue     Queue
	jobs      sync.WaitGroup
	workers   sync.WaitGroup
	stopChan  chan struct{}
	processed atomic.Int64
}

// NewPool returns a new pool, provided the PoolOptions and the queue.
func NewPool(o PoolOptions, queue Queue) *Pool {
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = DefaultMaxWorkers
	}

	if queue == nil {
		queue = newQueue()
	}

	return &Pool{
		options: o,
		queue:   queue,
	}
}

// Enqueue a job in the pool.
func (p *Pool) Enqueue(job Job) {
	p.jobs.Add(1)
	p.queue.Enqueue(job)
}

// WaitUntilProcessed will block until both the queue is empty and all workers
// are idle. This is useful for per-request Pools and in testing.
// A job must never wait on the pool that runs it.
func (p *Pool) WaitUntilProcessed() {
	p.jobs.Wait()
}

// Processed returns the number of jobs run to completion since the pool
// was created.
func (p *Pool) Processed() int64 {
	return p.processed.Load()
}

// Start the worker pool by initializing the stop channel
// and starting all the workers.
func (p *Pool) Start() {
	p.Lock()
	defer p.Unlock()
	if p.stopChan != nil {
		return
	}

	p.stopChan = make(chan struct{})
	for i := 0; i < p.options.MaxWorkers; i++ {
		p.workers.Add(1)
		go p.runWorker(p.stopChan)
	}
}

// Stop terminates all workers once they are idle. Jobs still queued when
// Stop is called may be left unprocessed.
func (p *Pool) Stop() {
	p.Lock()
	if p.stopChan == nil {
		p.Unlock()
		return
	}
	close(p.stopChan)
	p.stopChan = nil
	p.Unlock()

	p.workers.Wait()
}

// runWorker starts a worker go routine to process jobs from FIFO queue.
func (p *Pool) runWorker(stopChan <-chan struct{}) {
	defer p.workers.Done()
	for {
		job := p.queue.Dequeue(stopChan)
		if job == nil {
			return
		}

		job.Run(context.Background())
		p.processed.Inc()
		p.jobs.Done()
	}
}
