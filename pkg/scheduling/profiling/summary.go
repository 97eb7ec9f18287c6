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

package profiling

// VMProfile is one cell of a task row.
type VMProfile struct {
	VMIndex          int
	VMID             int
	ExecTime         float64
	TotalTime        float64
	Cost             float64
	QoSScore         float64
	DeadlineFeasible bool
	BudgetFeasible   bool
}

// TaskSummary condenses the feasibility of a task row.
type TaskSummary struct {
	TaskID        int
	FeasibleVMs   int
	BestVMIndex   int
	BestVMID      int
	BestQoSScore  float64
	HasFeasibleVM bool
}

// TaskProfile returns the full row of task i.
func (p *Profile) TaskProfile(i int) []VMProfile {
	row := make([]VMProfile, len(p.vms))
	for j, vm := range p.vms {
		row[j] = VMProfile{
			VMIndex:          j,
			VMID:             vm.ID,
			ExecTime:         p.execTime[i][j],
			TotalTime:        p.totalTime[i][j],
			Cost:             p.execCost[i][j],
			QoSScore:         p.qosScore[i][j],
			DeadlineFeasible: p.deadlineFeasible[i][j],
			BudgetFeasible:   p.budgetFeasible[i][j],
		}
	}
	return row
}

// Summary returns, per task, how many VMs are feasible and which feasible
// VM scores best. Tasks without a feasible VM have BestVMIndex NoVM.
func (p *Profile) Summary() []TaskSummary {
	out := make([]TaskSummary, len(p.tasks))
	for i, task := range p.tasks {
		s := TaskSummary{
			TaskID:      task.ID,
			FeasibleVMs: len(p.FindFeasibleVMs(i)),
			BestVMIndex: p.FindBestVM(i, true),
			BestVMID:    NoVM,
		}
		if s.BestVMIndex != NoVM {
			s.HasFeasibleVM = true
			s.BestVMID = p.vms[s.BestVMIndex].ID
			s.BestQoSScore = p.qosScore[i][s.BestVMIndex]
		}
		out[i] = s
	}
	return out
}

// FeasibleTasks counts the tasks with at least one feasible VM.
func FeasibleTasks(summary []TaskSummary) int {
	count := 0
	for _, s := range summary {
		if s.HasFeasibleVM {
			count++
		}
	}
	return count
}
