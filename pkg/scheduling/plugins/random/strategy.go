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

package random

import (
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
)

const (
	_name        = "Random Scheduler"
	_description = "Uniformly random vm per task from a seeded generator"
)

// New creates the random scheduler.
func New() plugins.Scheduler {
	return &random{}
}

// random picks a VM uniformly per task. The generator is seeded from
// Params.Seed on every call, so equal seeds give equal schedules.
type random struct{}

func (r *random) Name() string        { return _name }
func (r *random) Description() string { return _description }
func (r *random) Type() string        { return plugins.TypeRandom }

// Schedule is an implementation of the plugins.Scheduler interface.
func (r *random) Schedule(
	tasks []*models.Task,
	vms []*models.VM,
	params plugins.Params,
) (*plugins.Schedule, error) {
	tasks, vms = plugins.Copy(tasks, vms)
	if len(vms) == 0 {
		return plugins.FailAll(_name, tasks)
	}

	rng := rand.New(rand.NewSource(params.Seed))
	session := plugins.NewSession(vms)
	schedule := plugins.NewSchedule(_name, tasks, session)
	for _, task := range tasks {
		schedule.Add(session.Assign(task, rng.Intn(len(vms))))
	}

	log.WithFields(log.Fields{
		"scheduler":     plugins.TypeRandom,
		"tasks":         len(tasks),
		"vms":           len(vms),
		"seed":          params.Seed,
		"qos_satisfied": schedule.Stats.QoSSatisfied,
	}).Info("Schedule random strategy returned")
	return schedule, nil
}
