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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Three tasks on one 1000 MIPS VM against a one second deadline: only the
// first fits.
func TestAssignmentResultDeadlines(t *testing.T) {
	vm := NewVM(1, 1000, 0.1, 0)
	lengths := []float64{1000, 2000, 3000}
	expectedExec := []float64{1, 2, 3}
	expectedDeadline := []bool{true, false, false}

	for i, l := range lengths {
		task := NewTask(i+1, l, 1, 10, 5)
		r := NewAssignmentResult(task, vm, 0)
		assert.InDelta(t, expectedExec[i], r.ExecutionTime, 1e-9)
		assert.Equal(t, expectedDeadline[i], r.DeadlineSatisfied)
		assert.True(t, r.BudgetSatisfied)
		assert.Equal(t, expectedDeadline[i], r.QoSSatisfied)
	}
}

func TestAssignmentResultWindow(t *testing.T) {
	vm := NewVM(2, 500, 0.2, 1)
	task := NewTask(1, 1000, 10, 1, 5)
	r := NewAssignmentResult(task, vm, 4)

	assert.Equal(t, 1, r.TaskID)
	assert.Equal(t, 2, r.VMID)
	assert.InDelta(t, 3, r.TotalTime, 1e-9)
	assert.InDelta(t, 4, r.StartTime, 1e-9)
	assert.InDelta(t, 7, r.FinishTime, 1e-9)
	assert.InDelta(t, 0.4, r.Cost, 1e-9)
}

func TestAssignmentResultQoSScore(t *testing.T) {
	vm := NewVM(1, 1000, 1, 0)

	// Within both limits: 0.5*(2/4) + 0.5*(2/4).
	r := NewAssignmentResult(NewTask(1, 2000, 4, 4, 5), vm, 0)
	assert.InDelta(t, 0.5, r.QoSScore(0.5, 0.5), 1e-9)

	// Deadline of 1s overshot by 1s and budget of 1 overshot by 1.
	r = NewAssignmentResult(NewTask(2, 2000, 1, 1, 5), vm, 0)
	expected := 0.5*2 + 0.5*2 + 10 + 10
	assert.InDelta(t, expected, r.QoSScore(0.5, 0.5), 1e-9)
}

func TestViolationPenalty(t *testing.T) {
	assert.Equal(t, 0.0, ViolationPenalty(1, 2))
	assert.Equal(t, 0.0, ViolationPenalty(2, 2))
	assert.InDelta(t, 5, ViolationPenalty(3, 2), 1e-9)
}
