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

package minmin

import (
	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
)

const (
	_name        = "Min-Min Scheduler"
	_description = "Repeatedly commits the task and vm pair with the earliest completion time"
)

// New creates the Min-Min scheduler.
func New() plugins.Scheduler {
	return &minMin{}
}

// minMin selects, every round, the unscheduled task and VM pair with the
// lowest completion time over all remaining pairs.
type minMin struct{}

func (m *minMin) Name() string        { return _name }
func (m *minMin) Description() string { return _description }
func (m *minMin) Type() string        { return plugins.TypeMinMin }

// Schedule is an implementation of the plugins.Scheduler interface.
func (m *minMin) Schedule(
	tasks []*models.Task,
	vms []*models.VM,
	_ plugins.Params,
) (*plugins.Schedule, error) {
	tasks, vms = plugins.Copy(tasks, vms)
	if len(vms) == 0 {
		return plugins.FailAll(_name, tasks)
	}

	session := plugins.NewSession(vms)
	schedule := plugins.NewSchedule(_name, tasks, session)

	unscheduled := make([]int, len(tasks))
	for i := range unscheduled {
		unscheduled[i] = i
	}
	for len(unscheduled) > 0 {
		k, j := earliestCompletion(tasks, session, unscheduled)
		schedule.Add(session.Assign(tasks[unscheduled[k]], j))
		unscheduled = append(unscheduled[:k], unscheduled[k+1:]...)
	}

	log.WithFields(log.Fields{
		"scheduler":     plugins.TypeMinMin,
		"tasks":         len(tasks),
		"vms":           len(vms),
		"qos_satisfied": schedule.Stats.QoSSatisfied,
	}).Info("Schedule minmin strategy returned")
	return schedule, nil
}

// earliestCompletion returns the position in unscheduled and the VM index
// of the pair finishing first. The first pair scanned wins ties.
func earliestCompletion(
	tasks []*models.Task,
	session *plugins.Session,
	unscheduled []int,
) (int, int) {
	bestK, bestJ := -1, -1
	bestTime := 0.0
	for k, i := range unscheduled {
		for j := 0; j < session.NumVMs(); j++ {
			completion := CompletionTime(tasks[i], session, j)
			if bestK == -1 || completion < bestTime {
				bestK, bestJ, bestTime = k, j, completion
			}
		}
	}
	return bestK, bestJ
}

// CompletionTime is when task would finish if placed on VM j now.
func CompletionTime(task *models.Task, session *plugins.Session, j int) float64 {
	return session.Load(j) + session.VM(j).TotalTime(task.LengthMI)
}
