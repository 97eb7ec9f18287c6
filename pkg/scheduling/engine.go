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

package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"

	"github.com/being-ankit/cloudisim/pkg/common/async"
	"github.com/being-ankit/cloudisim/pkg/scheduling/config"
	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	tally_metrics "github.com/being-ankit/cloudisim/pkg/scheduling/metrics"
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
	"github.com/being-ankit/cloudisim/pkg/scheduling/profiling"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

// ErrNotStarted is returned by Compare before Start.
var ErrNotStarted = errors.New("engine is not started")

// Engine runs a set of schedulers over the same batch and compares them.
type Engine interface {
	Start()
	Stop()
	// Compare schedules batch with every scheduler and evaluates the
	// results in scheduler order. The batch is never mutated.
	Compare(ctx context.Context, batch *models.Batch) (*Comparison, error)
}

// Comparison is the outcome of one Compare call.
type Comparison struct {
	Report *storage.Report
	// Schedules are keyed by scheduler type. Failed schedulers may be
	// missing.
	Schedules map[string]*plugins.Schedule
	Evaluator *evaluation.Evaluator
}

// New creates an engine running the configured schedulers. store may be
// nil, then reports are not persisted.
func New(
	parent tally.Scope,
	cfg *config.SchedulingConfig,
	store storage.Store,
) (Engine, error) {
	schedulers, err := NewSchedulers(cfg.Schedulers, cfg.ProfilingWorkers)
	if err != nil {
		return nil, err
	}
	pool := async.NewPool(async.PoolOptions{MaxWorkers: cfg.Concurrency}, nil)
	return NewEngine(cfg, schedulers, pool, store, tally_metrics.New(parent)), nil
}

// NewEngine creates a new engine.
func NewEngine(
	cfg *config.SchedulingConfig,
	schedulers []plugins.Scheduler,
	pool *async.Pool,
	store storage.Store,
	metrics *tally_metrics.Metrics,
) Engine {
	return &engine{
		config:     cfg,
		schedulers: schedulers,
		pool:       pool,
		store:      store,
		metrics:    metrics,
	}
}

type engine struct {
	config     *config.SchedulingConfig
	schedulers []plugins.Scheduler
	pool       *async.Pool
	store      storage.Store
	metrics    *tally_metrics.Metrics
	started    atomic.Bool
}

// outcome is what one scheduler produced.
type outcome struct {
	schedule *plugins.Schedule
	err      error
}

func (e *engine) Start() {
	if !e.started.CompareAndSwap(false, true) {
		return
	}
	e.pool.Start()
	e.metrics.Running.Update(1)
	log.WithField("schedulers", e.config.Schedulers).Info("Engine started")
}

func (e *engine) Stop() {
	if !e.started.CompareAndSwap(true, false) {
		return
	}
	e.pool.Stop()
	e.metrics.Running.Update(0)
	log.Info("Engine stopped")
}

func (e *engine) Compare(ctx context.Context, batch *models.Batch) (*Comparison, error) {
	if !e.started.Load() {
		return nil, ErrNotStarted
	}

	outcomes, err := e.schedule(ctx, batch)
	if err != nil {
		e.metrics.ComparisonsFail.Inc(1)
		return nil, err
	}

	comparison := &Comparison{
		Schedules: make(map[string]*plugins.Schedule, len(e.schedulers)),
		Evaluator: evaluation.New(),
	}
	report := &storage.Report{
		RunID:         uuid.New(),
		CreatedAt:     time.Now().UTC(),
		Params:        e.config.Params(),
		Tasks:         len(batch.Tasks),
		VMs:           len(batch.VMs),
		FeasibleTasks: feasibleTasks(batch),
		Reference:     e.config.Reference,
		Failures:      make(map[string]string),
	}

	referenceName := ""
	for i, s := range e.schedulers {
		report.Schedulers = append(report.Schedulers, s.Type())
		if s.Type() == e.config.Reference {
			referenceName = s.Name()
		}

		o := outcomes[i]
		if o.err != nil {
			report.Failures[s.Type()] = o.err.Error()
		}
		if o.schedule == nil {
			continue
		}
		comparison.Schedules[s.Type()] = o.schedule
		comparison.Evaluator.Evaluate(s.Name(), o.schedule.Results)
	}

	report.ReferenceName = referenceName
	report.Metrics = comparison.Evaluator.All()
	if improvements, err := comparison.Evaluator.Improvements(referenceName); err == nil {
		report.Improvements = improvements
	} else {
		log.WithError(err).
			WithField("reference", e.config.Reference).
			Warn("No improvements for the reference scheduler")
	}
	comparison.Report = report

	if e.store != nil {
		if err := e.store.CreateReport(ctx, report); err != nil {
			e.metrics.ComparisonsFail.Inc(1)
			return comparison, errors.Wrap(err, "failed to persist report")
		}
	}

	e.metrics.Comparisons.Inc(1)
	log.WithFields(log.Fields{
		"run_id":   report.RunID,
		"tasks":    report.Tasks,
		"vms":      report.VMs,
		"failures": len(report.Failures),
	}).Info("Comparison finished")
	return comparison, nil
}

// schedule runs every scheduler on its own copy of batch through the pool
// and returns the outcomes in scheduler order.
func (e *engine) schedule(ctx context.Context, batch *models.Batch) ([]outcome, error) {
	outcomes := make([]outcome, len(e.schedulers))
	params := e.config.Params()

	var wg sync.WaitGroup
	for i, s := range e.schedulers {
		i, s := i, s
		wg.Add(1)
		e.pool.Enqueue(async.JobFunc(func(context.Context) {
			defer wg.Done()
			own := batch.Copy()

			start := time.Now()
			schedule, err := s.Schedule(own.Tasks, own.VMs, params)
			e.metrics.Scheduler(s.Type()).Record(schedule, err, time.Since(start))
			if err != nil {
				log.WithError(err).
					WithField("scheduler", s.Type()).
					Warn("Scheduler failed")
			}
			outcomes[i] = outcome{schedule: schedule, err: err}
		}))
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return outcomes, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// feasibleTasks counts the tasks of batch with at least one VM meeting
// both limits. An empty batch has none.
func feasibleTasks(batch *models.Batch) int {
	profile, err := profiling.New(batch.Tasks, batch.VMs)
	if err != nil {
		return 0
	}
	profile.ProfileAll()
	return profiling.FeasibleTasks(profile.Summary())
}
