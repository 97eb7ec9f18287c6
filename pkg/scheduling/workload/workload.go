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

package workload

import (
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// ErrInvalidWorkload is the cause of every record validation failure.
var ErrInvalidWorkload = errors.New("invalid workload")

// Load reads a YAML workload file, fills defaults and validates it.
func Load(path string) (*models.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read workload file %s", path)
	}

	var batch models.Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal workload file %s", path)
	}
	for _, t := range batch.Tasks {
		t.Normalize()
	}
	for _, v := range batch.VMs {
		v.Normalize()
	}

	if err := Validate(&batch); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"path":  path,
		"tasks": len(batch.Tasks),
		"vms":   len(batch.VMs),
	}).Info("Loaded workload")
	return &batch, nil
}

// Save writes batch to path as YAML.
func Save(path string, batch *models.Batch) error {
	data, err := yaml.Marshal(batch)
	if err != nil {
		return errors.Wrap(err, "failed to marshal workload")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write workload file %s", path)
	}
	return nil
}

// Validate checks every record of the batch and reports all failures at
// once. Each reported error has ErrInvalidWorkload as its cause.
func Validate(batch *models.Batch) error {
	var result *multierror.Error
	invalid := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidWorkload, format, args...))
	}

	if len(batch.Tasks) == 0 {
		invalid("no tasks")
	}
	if len(batch.VMs) == 0 {
		invalid("no vms")
	}

	taskIDs := make(map[int]bool, len(batch.Tasks))
	for _, t := range batch.Tasks {
		if t.ID <= 0 {
			invalid("task %d: id must be positive", t.ID)
		}
		if taskIDs[t.ID] {
			invalid("task %d: duplicate id", t.ID)
		}
		taskIDs[t.ID] = true
		if t.LengthMI <= 0 {
			invalid("task %d: length must be positive", t.ID)
		}
		if t.DeadlineSec <= 0 {
			invalid("task %d: deadline must be positive", t.ID)
		}
		if t.Budget <= 0 {
			invalid("task %d: budget must be positive", t.ID)
		}
		if t.ArrivalTime < 0 {
			invalid("task %d: arrival time must not be negative", t.ID)
		}
	}

	vmIDs := make(map[int]bool, len(batch.VMs))
	for _, v := range batch.VMs {
		if vmIDs[v.ID] {
			invalid("vm %d: duplicate id", v.ID)
		}
		vmIDs[v.ID] = true
		if v.MIPS <= 0 {
			invalid("vm %d: mips must be positive", v.ID)
		}
		if v.CostPerSecond <= 0 {
			invalid("vm %d: cost per second must be positive", v.ID)
		}
		if v.NetworkLatencySec < 0 {
			invalid("vm %d: network latency must not be negative", v.ID)
		}
	}
	return result.ErrorOrNil()
}
