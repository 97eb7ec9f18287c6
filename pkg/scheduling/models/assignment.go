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

// _violationWeight scales the relative overshoot of a violated limit.
const _violationWeight = 10.0

// AssignmentResult is a snapshot of a task placed on a VM. The fields are
// computed once by NewAssignmentResult and must not be changed afterwards.
type AssignmentResult struct {
	TaskID            int     `json:"task_id"`
	VMID              int     `json:"vm_id"`
	Priority          int     `json:"priority"`
	DeadlineSec       float64 `json:"deadline_sec"`
	Budget            float64 `json:"budget"`
	NetworkLatencySec float64 `json:"network_latency_sec"`

	ExecutionTime float64 `json:"execution_time"`
	TotalTime     float64 `json:"total_time"`
	Cost          float64 `json:"cost"`

	DeadlineSatisfied bool `json:"deadline_satisfied"`
	BudgetSatisfied   bool `json:"budget_satisfied"`
	QoSSatisfied      bool `json:"qos_satisfied"`

	// StartTime and FinishTime delimit the VM busy window of the task.
	StartTime  float64 `json:"start_time"`
	FinishTime float64 `json:"finish_time"`
}

// NewAssignmentResult pairs task with vm, starting at startTime.
func NewAssignmentResult(task *Task, vm *VM, startTime float64) *AssignmentResult {
	execTime := vm.ExecTime(task.LengthMI)
	totalTime := vm.TotalTime(task.LengthMI)
	cost := vm.ExecCost(task.LengthMI)

	deadlineOK := totalTime <= task.DeadlineSec
	budgetOK := cost <= task.Budget

	return &AssignmentResult{
		TaskID:            task.ID,
		VMID:              vm.ID,
		Priority:          task.Priority,
		DeadlineSec:       task.DeadlineSec,
		Budget:            task.Budget,
		NetworkLatencySec: vm.NetworkLatencySec,
		ExecutionTime:     execTime,
		TotalTime:         totalTime,
		Cost:              cost,
		DeadlineSatisfied: deadlineOK,
		BudgetSatisfied:   budgetOK,
		QoSSatisfied:      deadlineOK && budgetOK,
		StartTime:         startTime,
		FinishTime:        startTime + totalTime,
	}
}

// QoSScore weighs the time and cost of the assignment against the task
// limits, plus a penalty for each violated limit. Lower is better.
func (r *AssignmentResult) QoSScore(alpha, beta float64) float64 {
	score := alpha*(r.TotalTime/r.DeadlineSec) + beta*(r.Cost/r.Budget)
	if !r.DeadlineSatisfied {
		score += ViolationPenalty(r.TotalTime, r.DeadlineSec)
	}
	if !r.BudgetSatisfied {
		score += ViolationPenalty(r.Cost, r.Budget)
	}
	return score
}

// ViolationPenalty is the relative overshoot of actual over limit, scaled
// by ten. It is zero when actual is within limit.
func ViolationPenalty(actual, limit float64) float64 {
	if actual <= limit {
		return 0
	}
	return (actual - limit) / limit * _violationWeight
}
