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
	"sync"
	"time"

	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
)

// Metrics is the struct containing all the counters that track the
// comparison engine.
type Metrics struct {
	scope tally.Scope

	// Running is 1 while a comparison is in progress.
	Running tally.Gauge
	// Comparisons counts completed comparisons.
	Comparisons tally.Counter
	// ComparisonsFail counts comparisons that could not be evaluated.
	ComparisonsFail tally.Counter

	mu         sync.Mutex
	schedulers map[string]*SchedulerMetrics
}

// SchedulerMetrics tracks the runs of one scheduler type.
type SchedulerMetrics struct {
	Runs     tally.Counter
	RunsFail tally.Counter

	TasksScheduled       tally.Counter
	TasksFailed          tally.Counter
	ConstraintRelaxation tally.Counter
	QoSSatisfied         tally.Counter
	DeadlineMisses       tally.Counter
	BudgetViolations     tally.Counter

	Makespan tally.Gauge
	QoSRate  tally.Gauge

	Schedule tally.Timer
}

// New returns a new Metrics struct with all metrics initialized and rooted
// below the given tally scope.
func New(scope tally.Scope) *Metrics {
	engineScope := scope.SubScope("engine")
	return &Metrics{
		scope:           scope,
		Running:         engineScope.Gauge("running"),
		Comparisons:     engineScope.Counter("comparisons"),
		ComparisonsFail: engineScope.Counter("comparisons_fail"),
		schedulers:      make(map[string]*SchedulerMetrics),
	}
}

// Scheduler returns the metrics of a scheduler type, tagged with it.
func (m *Metrics) Scheduler(schedulerType string) *SchedulerMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sm, ok := m.schedulers[schedulerType]; ok {
		return sm
	}
	scope := m.scope.SubScope("scheduler").Tagged(map[string]string{
		"scheduler": schedulerType,
	})
	sm := &SchedulerMetrics{
		Runs:                 scope.Counter("runs"),
		RunsFail:             scope.Counter("run_fail"),
		TasksScheduled:       scope.Counter("tasks_scheduled"),
		TasksFailed:          scope.Counter("tasks_failed"),
		ConstraintRelaxation: scope.Counter("constraint_relaxations"),
		QoSSatisfied:         scope.Counter("qos_satisfied"),
		DeadlineMisses:       scope.Counter("deadline_misses"),
		BudgetViolations:     scope.Counter("budget_violations"),
		Makespan:             scope.Gauge("makespan"),
		QoSRate:              scope.Gauge("qos_rate"),
		Schedule:             scope.Timer("schedule"),
	}
	m.schedulers[schedulerType] = sm
	return sm
}

// Record reports a finished run. A nil schedule only counts the failure.
func (sm *SchedulerMetrics) Record(schedule *plugins.Schedule, err error, took time.Duration) {
	sm.Runs.Inc(1)
	sm.Schedule.Record(took)
	if err != nil {
		sm.RunsFail.Inc(1)
	}
	if schedule == nil {
		return
	}

	stats := schedule.Stats
	sm.TasksScheduled.Inc(int64(stats.Scheduled))
	sm.TasksFailed.Inc(int64(stats.Failed))
	sm.ConstraintRelaxation.Inc(int64(stats.Relaxations))
	sm.QoSSatisfied.Inc(int64(stats.QoSSatisfied))
	sm.DeadlineMisses.Inc(int64(stats.Scheduled - stats.DeadlinesMet))
	sm.BudgetViolations.Inc(int64(stats.Scheduled - stats.BudgetsMet))
	sm.QoSRate.Update(stats.QoSSatisfactionRate())

	makespan := 0.0
	for _, r := range schedule.Results {
		if r.FinishTime > makespan {
			makespan = r.FinishTime
		}
	}
	sm.Makespan.Update(makespan)
}
