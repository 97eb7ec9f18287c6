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

package models

const (
	// MinPriority is the lowest task priority.
	MinPriority = 1
	// MaxPriority is the highest task priority.
	MaxPriority = 10
	// DefaultPriority is given to tasks that do not set one.
	DefaultPriority = 5
	// Unassigned is the AssignedVMID of a task no scheduler has placed.
	Unassigned = -1
)

// Task is a unit of work to be placed on a VM.
type Task struct {
	ID          int     `yaml:"id" json:"id"`
	LengthMI    float64 `yaml:"length_mi" json:"length_mi"`
	DeadlineSec float64 `yaml:"deadline_sec" json:"deadline_sec"`
	Budget      float64 `yaml:"budget" json:"budget"`
	Priority    int     `yaml:"priority" json:"priority"`
	ArrivalTime float64 `yaml:"arrival_time" json:"arrival_time"`

	// Estimates written by the scheduler that placed the task.
	AssignedVMID  int     `yaml:"-" json:"assigned_vm_id"`
	EstimatedTime float64 `yaml:"-" json:"estimated_time"`
	EstimatedCost float64 `yaml:"-" json:"estimated_cost"`
	DeadlineMet   bool    `yaml:"-" json:"deadline_met"`
	BudgetMet     bool    `yaml:"-" json:"budget_met"`
}

// NewTask returns an unassigned task with its priority clamped to
// [MinPriority, MaxPriority].
func NewTask(id int, lengthMI, deadlineSec, budget float64, priority int) *Task {
	return &Task{
		ID:           id,
		LengthMI:     lengthMI,
		DeadlineSec:  deadlineSec,
		Budget:       budget,
		Priority:     ClampPriority(priority),
		AssignedVMID: Unassigned,
	}
}

// ClampPriority bounds p to [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Normalize fills the defaults of a task decoded from a file: a zero
// priority becomes DefaultPriority and the assignment is cleared.
func (t *Task) Normalize() {
	if t.Priority == 0 {
		t.Priority = DefaultPriority
	}
	t.Priority = ClampPriority(t.Priority)
	t.ResetAssignment()
}

// ResetAssignment clears the estimate fields.
func (t *Task) ResetAssignment() {
	t.AssignedVMID = Unassigned
	t.EstimatedTime = 0
	t.EstimatedCost = 0
	t.DeadlineMet = false
	t.BudgetMet = false
}

// IsAssigned returns true once a scheduler placed the task.
func (t *Task) IsAssigned() bool {
	return t.AssignedVMID != Unassigned
}

// Apply writes the estimates of result onto the task.
func (t *Task) Apply(result *AssignmentResult) {
	t.AssignedVMID = result.VMID
	t.EstimatedTime = result.TotalTime
	t.EstimatedCost = result.Cost
	t.DeadlineMet = result.DeadlineSatisfied
	t.BudgetMet = result.BudgetSatisfied
}

// Copy returns a deep copy of the task.
func (t *Task) Copy() *Task {
	c := *t
	return &c
}
