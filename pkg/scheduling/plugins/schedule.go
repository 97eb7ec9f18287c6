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

package plugins

import (
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// Failure is a task a scheduler could not place.
type Failure struct {
	TaskID int    `json:"task_id"`
	Reason string `json:"reason"`
}

// Stats are the running counters of a scheduling run.
type Stats struct {
	Scheduled    int `json:"scheduled"`
	QoSSatisfied int `json:"qos_satisfied"`
	DeadlinesMet int `json:"deadlines_met"`
	BudgetsMet   int `json:"budgets_met"`
	Relaxations  int `json:"relaxations"`
	Failed       int `json:"failed"`
}

func (s *Stats) record(r *models.AssignmentResult) {
	s.Scheduled++
	if r.QoSSatisfied {
		s.QoSSatisfied++
	}
	if r.DeadlineSatisfied {
		s.DeadlinesMet++
	}
	if r.BudgetSatisfied {
		s.BudgetsMet++
	}
}

// QoSSatisfactionRate is the percentage of scheduled tasks meeting both
// limits.
func (s Stats) QoSSatisfactionRate() float64 {
	return percent(s.QoSSatisfied, s.Scheduled)
}

// DeadlineMissRate is the percentage of scheduled tasks missing their
// deadline.
func (s Stats) DeadlineMissRate() float64 {
	return percent(s.Scheduled-s.DeadlinesMet, s.Scheduled)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Schedule is the outcome of one Scheduler run.
type Schedule struct {
	Scheduler string                     `json:"scheduler"`
	Results   []*models.AssignmentResult `json:"results"`
	Failures  []Failure                  `json:"failures,omitempty"`
	Stats     Stats                      `json:"stats"`

	// Tasks are the scheduler's own copies carrying the estimates.
	Tasks []*models.Task `json:"-"`

	session *Session
}

// NewSchedule returns an empty schedule over tasks. session may be nil
// when no VM is available.
func NewSchedule(name string, tasks []*models.Task, session *Session) *Schedule {
	return &Schedule{
		Scheduler: name,
		Results:   make([]*models.AssignmentResult, 0, len(tasks)),
		Tasks:     tasks,
		session:   session,
	}
}

// Add appends a result.
func (s *Schedule) Add(r *models.AssignmentResult) {
	s.Results = append(s.Results, r)
	s.Stats.record(r)
}

// Relaxed counts a task placed with its constraints ignored.
func (s *Schedule) Relaxed() {
	s.Stats.Relaxations++
}

// Fail records a task that could not be placed.
func (s *Schedule) Fail(taskID int, reason string) {
	s.Failures = append(s.Failures, Failure{TaskID: taskID, Reason: reason})
	s.Stats.Failed++
}

// Utilization returns the per VM load at the end of the run.
func (s *Schedule) Utilization() []VMUtilization {
	if s.session == nil {
		return nil
	}
	return s.session.Utilization()
}

// ResultsByTask indexes the results by task id.
func (s *Schedule) ResultsByTask() map[int]*models.AssignmentResult {
	out := make(map[int]*models.AssignmentResult, len(s.Results))
	for _, r := range s.Results {
		out[r.TaskID] = r
	}
	return out
}
