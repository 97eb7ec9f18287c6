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

// Session tracks the VM load of a single scheduling run. A new Session is
// created for every Schedule call and never shared.
type Session struct {
	vms       []*models.VM
	load      []float64
	taskCount []int
}

// NewSession returns a session with every VM idle.
func NewSession(vms []*models.VM) *Session {
	return &Session{
		vms:       vms,
		load:      make([]float64, len(vms)),
		taskCount: make([]int, len(vms)),
	}
}

// NumVMs returns the number of VMs tracked.
func (s *Session) NumVMs() int {
	return len(s.vms)
}

// VM returns the VM at index j.
func (s *Session) VM(j int) *models.VM {
	return s.vms[j]
}

// Load is the time at which VM j becomes free.
func (s *Session) Load(j int) float64 {
	return s.load[j]
}

// TaskCount is the number of tasks placed on VM j.
func (s *Session) TaskCount(j int) int {
	return s.taskCount[j]
}

// Assign places task on VM j right after the work already placed there,
// records the estimates on the task and returns the result.
func (s *Session) Assign(task *models.Task, j int) *models.AssignmentResult {
	result := models.NewAssignmentResult(task, s.vms[j], s.load[j])
	s.load[j] = result.FinishTime
	s.taskCount[j]++
	task.Apply(result)
	return result
}

// VMUtilization is the share of a run one VM carried.
type VMUtilization struct {
	VMID      int     `json:"vm_id"`
	TaskCount int     `json:"task_count"`
	BusyTime  float64 `json:"busy_time"`
}

// Utilization returns the per VM load, in VM order.
func (s *Session) Utilization() []VMUtilization {
	out := make([]VMUtilization, len(s.vms))
	for j, vm := range s.vms {
		out[j] = VMUtilization{
			VMID:      vm.ID,
			TaskCount: s.taskCount[j],
			BusyTime:  s.load[j],
		}
	}
	return out
}
