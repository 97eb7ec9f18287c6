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

package scheduling

import (
	"github.com/pkg/errors"

	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins/fcfs"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins/minmin"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins/qos"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins/random"
)

// NewScheduler creates the scheduler of the given type.
func NewScheduler(schedulerType string, profilingWorkers int) (plugins.Scheduler, error) {
	switch schedulerType {
	case plugins.TypeQoS:
		return qos.New(profilingWorkers), nil
	case plugins.TypeFCFS:
		return fcfs.New(), nil
	case plugins.TypeRandom:
		return random.New(), nil
	case plugins.TypeMinMin:
		return minmin.New(), nil
	}
	return nil, errors.Errorf("unknown scheduler type %q", schedulerType)
}

// NewSchedulers creates the schedulers of the given types, in order.
func NewSchedulers(schedulerTypes []string, profilingWorkers int) ([]plugins.Scheduler, error) {
	schedulers := make([]plugins.Scheduler, 0, len(schedulerTypes))
	for _, t := range schedulerTypes {
		s, err := NewScheduler(t, profilingWorkers)
		if err != nil {
			return nil, err
		}
		schedulers = append(schedulers, s)
	}
	return schedulers, nil
}
