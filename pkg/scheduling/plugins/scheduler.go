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
	"github.com/pkg/errors"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// Scheduler types, used as configuration keys.
const (
	TypeQoS    = "qos"
	TypeFCFS   = "fcfs"
	TypeRandom = "random"
	TypeMinMin = "minmin"
)

// ErrNoVMs is returned by a Scheduler given an empty VM list. The returned
// Schedule still lists every task as failed.
var ErrNoVMs = errors.New("no vms to schedule on")

//go:generate mockgen -destination=mocks/mock_scheduler.go -package=mocks github.com/being-ankit/cloudisim/pkg/scheduling/plugins Scheduler

// Scheduler is a strategy that assigns every task of a batch to a VM.
type Scheduler interface {
	// Name is the display name, also used as the evaluation key.
	Name() string

	// Description is a one line summary of the strategy.
	Description() string

	// Type returns the configuration key of the strategy.
	Type() string

	// Schedule assigns tasks to vms. Implementations work on their own
	// copy of the batch, so the arguments are never mutated, and keep no
	// state between calls. The returned Schedule holds one result per
	// assigned task, in assignment order.
	Schedule(tasks []*models.Task, vms []*models.VM, params Params) (*Schedule, error)
}

// Params are the knobs shared by all schedulers. Alpha and Beta are
// expected to be validated to [0, 1] by the caller.
type Params struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`

	EnableDeadlineConstraint bool `json:"enable_deadline_constraint"`
	EnableBudgetConstraint   bool `json:"enable_budget_constraint"`

	// Seed of the random baseline.
	Seed int64 `json:"seed"`
}

// DefaultParams weighs time and cost equally with both constraints on.
func DefaultParams() Params {
	return Params{
		Alpha:                    0.5,
		Beta:                     0.5,
		EnableDeadlineConstraint: true,
		EnableBudgetConstraint:   true,
		Seed:                     42,
	}
}

// Copy returns fresh unassigned copies of the batch for one scheduling run.
func Copy(tasks []*models.Task, vms []*models.VM) ([]*models.Task, []*models.VM) {
	tasksCopy := models.CopyTasks(tasks)
	for _, t := range tasksCopy {
		t.ResetAssignment()
	}
	return tasksCopy, models.CopyVMs(vms)
}

// FailAll returns the schedule of a batch that has no VM to run on.
func FailAll(name string, tasks []*models.Task) (*Schedule, error) {
	s := NewSchedule(name, tasks, nil)
	for _, t := range tasks {
		s.Fail(t.ID, ErrNoVMs.Error())
	}
	return s, ErrNoVMs
}
