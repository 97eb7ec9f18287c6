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

package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/scheduling/config"
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/workload"
)

// generate writes a sample workload to path.
func generate(path string, tasks, vms int, seed int64) error {
	if tasks <= 0 || vms <= 0 {
		return errors.Errorf("need at least one task and one vm, got %d tasks and %d vms", tasks, vms)
	}
	batch := workload.Generate(tasks, vms, seed)
	if err := workload.Save(path, batch); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":  path,
		"tasks": tasks,
		"vms":   vms,
		"seed":  seed,
	}).Info("Sample workload written")
	return nil
}

// loadBatch reads the workload file, or generates one when none is set.
func loadBatch(cfg *config.WorkloadConfig) (*models.Batch, error) {
	if cfg.File != "" {
		log.WithField("file", cfg.File).Info("Loading workload")
		return workload.Load(cfg.File)
	}
	log.WithFields(log.Fields{
		"tasks": cfg.Generate.Tasks,
		"vms":   cfg.Generate.VMs,
		"seed":  cfg.Generate.Seed,
	}).Info("Generating sample workload")
	return workload.Generate(cfg.Generate.Tasks, cfg.Generate.VMs, cfg.Generate.Seed), nil
}
