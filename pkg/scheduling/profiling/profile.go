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

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/being-ankit/cloudisim/pkg/common/async"
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// NoVM is returned by FindBestVM when no VM qualifies.
const NoVM = -1

// ErrEmptyBatch is returned when profiling is asked for zero tasks or VMs.
var ErrEmptyBatch = errors.New("profiling needs at least one task and one vm")

// Option configures a Profile.
type Option func(*Profile)

// WithWorkers fills the matrices with up to n rows in parallel.
func WithWorkers(n int) Option {
	return func(p *Profile) {
		p.workers = n
	}
}

// Profile holds the task by VM matrices of a batch. Row i belongs to
// tasks[i] and column j to vms[j].
type Profile struct {
	tasks   []*models.Task
	vms     []*models.VM
	workers int

	execTime  [][]float64
	totalTime [][]float64
	execCost  [][]float64
	qosScore  [][]float64

	deadlineFeasible [][]bool
	budgetFeasible   [][]bool
}

// New allocates the matrices for tasks and vms. Nothing is computed until
// ProfileAll is called.
func New(tasks []*models.Task, vms []*models.VM, opts ...Option) (*Profile, error) {
	if len(tasks) == 0 || len(vms) == 0 {
		return nil, errors.Wrapf(ErrEmptyBatch, "tasks=%d vms=%d", len(tasks), len(vms))
	}

	p := &Profile{
		tasks:   tasks,
		vms:     vms,
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}

	n, m := len(tasks), len(vms)
	p.execTime = newMatrix(n, m)
	p.totalTime = newMatrix(n, m)
	p.execCost = newMatrix(n, m)
	p.qosScore = newMatrix(n, m)
	p.deadlineFeasible = newBoolMatrix(n, m)
	p.budgetFeasible = newBoolMatrix(n, m)
	return p, nil
}

func newMatrix(n, m int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
	}
	return out
}

func newBoolMatrix(n, m int) [][]bool {
	out := make([][]bool, n)
	for i := range out {
		out[i] = make([]bool, m)
	}
	return out
}

// NumTasks is the number of rows.
func (p *Profile) NumTasks() int {
	return len(p.tasks)
}

// NumVMs is the number of columns.
func (p *Profile) NumVMs() int {
	return len(p.vms)
}

// ProfileAll computes times, costs and feasibility for every task and VM
// pair. It returns once every row is filled.
func (p *Profile) ProfileAll() {
	if p.workers <= 1 || len(p.tasks) == 1 {
		for i := range p.tasks {
			p.profileRow(i)
		}
	} else {
		// Rows are disjoint so no locking is needed. The pool is private to
		// this call, WaitUntilProcessed is the barrier before scoring.
		pool := async.NewPool(async.PoolOptions{MaxWorkers: p.workers}, nil)
		pool.Start()
		for i := range p.tasks {
			row := i
			pool.Enqueue(async.JobFunc(func(context.Context) {
				p.profileRow(row)
			}))
		}
		pool.WaitUntilProcessed()
		pool.Stop()
	}

	log.WithFields(log.Fields{
		"tasks":   len(p.tasks),
		"vms":     len(p.vms),
		"workers": p.workers,
	}).Debug("Profiled task vm matrix")
}

func (p *Profile) profileRow(i int) {
	task := p.tasks[i]
	for j, vm := range p.vms {
		p.execTime[i][j] = vm.ExecTime(task.LengthMI)
		p.totalTime[i][j] = vm.TotalTime(task.LengthMI)
		p.execCost[i][j] = vm.ExecCost(task.LengthMI)
		p.deadlineFeasible[i][j] = p.totalTime[i][j] <= task.DeadlineSec
		p.budgetFeasible[i][j] = p.execCost[i][j] <= task.Budget
	}
}

// ComputeQoSScores scores every pair from the profiled matrices. Time and
// cost are normalized by their matrix wide maximum, weighted by alpha and
// beta, penalized for each violated limit and scaled by the task priority
// so that important tasks score lower. Must run after ProfileAll.
func (p *Profile) ComputeQoSScores(alpha, beta float64) {
	maxTime := matrixMax(p.totalTime)
	maxCost := matrixMax(p.execCost)

	for i, task := range p.tasks {
		modifier := PriorityModifier(task.Priority)
		for j := range p.vms {
			totalTime := p.totalTime[i][j]
			cost := p.execCost[i][j]

			score := alpha*(totalTime/maxTime) + beta*(cost/maxCost)
			if !p.deadlineFeasible[i][j] {
				score += models.ViolationPenalty(totalTime, task.DeadlineSec)
			}
			if !p.budgetFeasible[i][j] {
				score += models.ViolationPenalty(cost, task.Budget)
			}
			p.qosScore[i][j] = score * modifier
		}
	}
}

// PriorityModifier maps priority 10 to 0.1 and priority 1 to 1.0.
func PriorityModifier(priority int) float64 {
	return float64(11-priority) / 10
}

// matrixMax returns the largest cell, or 1 when that is zero.
func matrixMax(matrix [][]float64) float64 {
	max := floats.Max(matrix[0])
	for _, row := range matrix[1:] {
		if m := floats.Max(row); m > max {
			max = m
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// FindBestVM returns the column with the lowest QoS score for the task,
// skipping infeasible VMs when requireFeasible is set. The first VM wins
// ties. Returns NoVM when no VM qualifies.
func (p *Profile) FindBestVM(taskIndex int, requireFeasible bool) int {
	best := NoVM
	for j := range p.vms {
		if requireFeasible && !p.Feasible(taskIndex, j) {
			continue
		}
		if best == NoVM || p.qosScore[taskIndex][j] < p.qosScore[taskIndex][best] {
			best = j
		}
	}
	return best
}

// FindFeasibleVMs returns the columns meeting both limits of the task, in
// VM order.
func (p *Profile) FindFeasibleVMs(taskIndex int) []int {
	var out []int
	for j := range p.vms {
		if p.Feasible(taskIndex, j) {
			out = append(out, j)
		}
	}
	return out
}

// ExecTime of task i on VM j.
func (p *Profile) ExecTime(i, j int) float64 { return p.execTime[i][j] }

// TotalTime of task i on VM j, network latency included.
func (p *Profile) TotalTime(i, j int) float64 { return p.totalTime[i][j] }

// ExecCost of task i on VM j.
func (p *Profile) ExecCost(i, j int) float64 { return p.execCost[i][j] }

// QoSScore of task i on VM j. Zero until ComputeQoSScores ran.
func (p *Profile) QoSScore(i, j int) float64 { return p.qosScore[i][j] }

// DeadlineFeasible reports whether task i meets its deadline on VM j.
func (p *Profile) DeadlineFeasible(i, j int) bool { return p.deadlineFeasible[i][j] }

// BudgetFeasible reports whether task i stays within budget on VM j.
func (p *Profile) BudgetFeasible(i, j int) bool { return p.budgetFeasible[i][j] }

// Feasible reports whether task i meets both limits on VM j.
func (p *Profile) Feasible(i, j int) bool {
	return p.deadlineFeasible[i][j] && p.budgetFeasible[i][j]
}
