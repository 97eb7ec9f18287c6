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

package fcfs

import (
	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
)

const (
	_name        = "FCFS Scheduler"
	_description = "First come first served, tasks in input order on round robin vms"
)

// New creates the first come first served scheduler.
func New() plugins.Scheduler {
	return &fcfs{}
}

// fcfs assigns task i to VM i mod M, ignoring load and constraints.
type fcfs struct{}

func (f *fcfs) Name() string        { return _name }
func (f *fcfs) Description() string { return _description }
func (f *fcfs) Type() string        { return plugins.TypeFCFS }

// Schedule is an implementation of the plugins.Scheduler interface.
func (f *fcfs) Schedule(
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
	for i, task := range tasks {
		schedule.Add(session.Assign(task, i%len(vms)))
	}

	log.WithFields(log.Fields{
		"scheduler":     plugins.TypeFCFS,
		"tasks":         len(tasks),
		"vms":           len(vms),
		"qos_satisfied": schedule.Stats.QoSSatisfied,
	}).Info("Schedule fcfs strategy returned")
	return schedule, nil
}
