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

package evaluation

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// ErrUnknownScheduler is returned for a scheduler that was never evaluated.
var ErrUnknownScheduler = errors.New("scheduler was not evaluated")

// Evaluator keeps the metrics of every evaluated scheduler in the order
// they were first evaluated. It is not safe for concurrent use.
type Evaluator struct {
	order   []string
	metrics map[string]*PerformanceMetrics
}

// New returns an empty Evaluator.
func New() *Evaluator {
	return &Evaluator{
		metrics: make(map[string]*PerformanceMetrics),
	}
}

// FromMetrics rebuilds an Evaluator from stored metrics records, keeping
// their order.
func FromMetrics(all []*PerformanceMetrics) *Evaluator {
	e := New()
	for _, m := range all {
		if _, ok := e.metrics[m.Scheduler]; !ok {
			e.order = append(e.order, m.Scheduler)
		}
		e.metrics[m.Scheduler] = m
	}
	return e
}

// Evaluate computes and stores the metrics of a scheduler. Evaluating the
// same scheduler again replaces its metrics but keeps its position.
func (e *Evaluator) Evaluate(scheduler string, results []*models.AssignmentResult) *PerformanceMetrics {
	m := Calculate(scheduler, results)
	if _, ok := e.metrics[scheduler]; !ok {
		e.order = append(e.order, scheduler)
	}
	e.metrics[scheduler] = m

	log.WithFields(log.Fields{
		"scheduler": scheduler,
		"tasks":     m.TaskCount,
		"makespan":  m.Makespan,
		"qos_rate":  m.QoSSatisfactionRate,
	}).Debug("Evaluated scheduler")
	return m
}

// Metrics returns the metrics of scheduler.
func (e *Evaluator) Metrics(scheduler string) (*PerformanceMetrics, error) {
	m, ok := e.metrics[scheduler]
	if !ok {
		return nil, errors.Wrap(ErrUnknownScheduler, scheduler)
	}
	return m, nil
}

// Names returns the evaluated schedulers in evaluation order.
func (e *Evaluator) Names() []string {
	return append([]string(nil), e.order...)
}

// All returns every stored metrics record in evaluation order.
func (e *Evaluator) All() []*PerformanceMetrics {
	out := make([]*PerformanceMetrics, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.metrics[name])
	}
	return out
}

// Reset drops every stored metrics record.
func (e *Evaluator) Reset() {
	e.order = nil
	e.metrics = make(map[string]*PerformanceMetrics)
}

// Improvements compares reference against every other evaluated scheduler,
// in evaluation order.
func (e *Evaluator) Improvements(reference string) ([]Improvement, error) {
	ref, err := e.Metrics(reference)
	if err != nil {
		return nil, err
	}
	var out []Improvement
	for _, name := range e.order {
		if name == reference {
			continue
		}
		out = append(out, Compare(ref, e.metrics[name]))
	}
	return out, nil
}
