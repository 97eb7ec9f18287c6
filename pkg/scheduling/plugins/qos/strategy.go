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

package qos

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/common/sorter"
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
	"github.com/being-ankit/cloudisim/pkg/scheduling/profiling"
)

const (
	_name        = "QoS-Aware Scheduler"
	_description = "Greedy multi-objective assignment over profiled time and cost, " +
		"ordered by priority and deadline, with a load balancing penalty"

	// _loadScale is the busy time in seconds that doubles a VM's score.
	_loadScale = 100.0
)

// New creates the QoS aware scheduler. profilingWorkers bounds the number
// of task rows profiled in parallel.
func New(profilingWorkers int) plugins.Scheduler {
	return &qos{profilingWorkers: profilingWorkers}
}

// qos assigns each task, most important first, to the VM with the lowest
// load adjusted QoS score among the VMs meeting the enabled constraints.
type qos struct {
	profilingWorkers int
}

func (q *qos) Name() string        { return _name }
func (q *qos) Description() string { return _description }
func (q *qos) Type() string        { return plugins.TypeQoS }

// Schedule is an implementation of the plugins.Scheduler interface.
func (q *qos) Schedule(
	tasks []*models.Task,
	vms []*models.VM,
	params plugins.Params,
) (*plugins.Schedule, error) {
	start := time.Now()
	tasks, vms = plugins.Copy(tasks, vms)
	r := &run{phase: phaseReady, tasks: tasks, params: params}

	if len(vms) == 0 {
		log.WithField("tasks", len(tasks)).
			Warn("No vms available, every task fails to schedule")
		return plugins.FailAll(_name, tasks)
	}
	session := plugins.NewSession(vms)
	schedule := plugins.NewSchedule(_name, tasks, session)
	if len(tasks) == 0 {
		return schedule, nil
	}

	profile, err := profiling.New(tasks, vms, profiling.WithWorkers(q.profilingWorkers))
	if err != nil {
		return nil, err
	}
	profile.ProfileAll()
	profile.ComputeQoSScores(params.Alpha, params.Beta)
	r.advance(phaseProfiled)

	order := r.order()
	r.advance(phaseOrdered)

	r.advance(phaseAssigning)
	for _, i := range order {
		task := tasks[i]
		j, relaxed := r.selectVM(profile, session, i)
		if relaxed {
			schedule.Relaxed()
			log.WithField("task_id", task.ID).
				Debug("No vm meets the constraints, relaxing")
		}

		result := session.Assign(task, j)
		schedule.Add(result)

		log.WithFields(log.Fields{
			"task_id":       task.ID,
			"vm_id":         result.VMID,
			"total_time":    result.TotalTime,
			"cost":          result.Cost,
			"qos_satisfied": result.QoSSatisfied,
		}).Debug("Assigned task")
	}
	r.advance(phaseDone)

	log.WithFields(log.Fields{
		"scheduler":     plugins.TypeQoS,
		"tasks":         len(tasks),
		"vms":           len(vms),
		"qos_satisfied": schedule.Stats.QoSSatisfied,
		"relaxations":   schedule.Stats.Relaxations,
		"duration":      time.Since(start),
	}).Info("Schedule qos strategy returned")
	return schedule, nil
}

// run is the state of a single Schedule call.
type run struct {
	phase  phase
	tasks  []*models.Task
	params plugins.Params
}

func (r *run) advance(next phase) {
	log.WithFields(log.Fields{
		"from": r.phase.String(),
		"to":   next.String(),
	}).Debug("Scheduling phase changed")
	r.phase = next
}

// order returns the task indices by priority descending, then deadline
// ascending. Equal tasks keep their input order.
func (r *run) order() []int {
	order := make([]int, len(r.tasks))
	for i := range order {
		order[i] = i
	}
	byPriority := func(a, b int) bool {
		return r.tasks[a].Priority > r.tasks[b].Priority
	}
	byDeadline := func(a, b int) bool {
		return r.tasks[a].DeadlineSec < r.tasks[b].DeadlineSec
	}
	sorter.OrderedBy[int](byPriority, byDeadline).Sort(order)
	return order
}

// selectVM returns the VM for task i and whether the constraints had to be
// dropped to find one. The session must hold at least one VM.
func (r *run) selectVM(
	profile *profiling.Profile,
	session *plugins.Session,
	i int,
) (int, bool) {
	allowed := func(j int) bool {
		if r.params.EnableDeadlineConstraint && !profile.DeadlineFeasible(i, j) {
			return false
		}
		if r.params.EnableBudgetConstraint && !profile.BudgetFeasible(i, j) {
			return false
		}
		return true
	}
	if best := bestVM(profile, session, i, allowed); best != profiling.NoVM {
		return best, false
	}
	return bestVM(profile, session, i, nil), true
}

// bestVM returns the allowed VM with the lowest combined score. The first
// VM wins ties. A nil allowed accepts every VM.
func bestVM(
	profile *profiling.Profile,
	session *plugins.Session,
	i int,
	allowed func(j int) bool,
) int {
	best := profiling.NoVM
	bestScore := 0.0
	for j := 0; j < session.NumVMs(); j++ {
		if allowed != nil && !allowed(j) {
			continue
		}
		score := CombinedScore(profile.QoSScore(i, j), session.Load(j))
		if best == profiling.NoVM || score < bestScore {
			best, bestScore = j, score
		}
	}
	return best
}

// CombinedScore penalizes a QoS score by the busy time of the VM.
func CombinedScore(qosScore, load float64) float64 {
	return qosScore * (1 + load/_loadScale)
}
