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
	log "github.com/sirupsen/logrus"

	"github.com/being-ankit/cloudisim/pkg/common/metrics"
	"github.com/being-ankit/cloudisim/pkg/scheduling/config"
)

// overrides are the command line values that win over the config files.
// Zero values and nil pointers leave the loaded value alone.
type overrides struct {
	historyBackend string
	boltPath       string
	redisAddr      string
	redisPassword  string
	metricsListen  string

	workloadFile string
	tasks        int
	vms          int
	workloadSeed *int64

	alpha           *float64
	beta            *float64
	seed            *int64
	disableDeadline bool
	disableBudget   bool
	schedulers      []string
	reference       string
}

// flagOverrides collects the parsed flags.
func flagOverrides() overrides {
	return overrides{
		historyBackend:  *historyBackend,
		boltPath:        *boltPath,
		redisAddr:       *redisAddr,
		redisPassword:   *redisPassword,
		metricsListen:   *metricsListen,
		workloadFile:    *workloadFile,
		tasks:           *runTasks,
		vms:             *runVMs,
		workloadSeed:    runWorkloadSeed.get(),
		alpha:           alpha.get(),
		beta:            beta.get(),
		seed:            seed.get(),
		disableDeadline: *disableDeadline,
		disableBudget:   *disableBudget,
		schedulers:      *schedulers,
		reference:       *reference,
	}
}

func (o overrides) apply(cfg *config.Config) {
	if o.historyBackend != "" {
		cfg.History.Backend = config.HistoryBackend(o.historyBackend)
	}
	if o.boltPath != "" {
		cfg.History.Bolt.Path = o.boltPath
	}
	if o.redisAddr != "" {
		cfg.History.Redis.Addr = o.redisAddr
	}
	if o.redisPassword != "" {
		cfg.History.Redis.Password = o.redisPassword
	}
	if o.metricsListen != "" {
		cfg.Metrics.Prometheus = &metrics.PrometheusConfig{
			Enable: true,
			Listen: o.metricsListen,
		}
	}

	if o.workloadFile != "" {
		cfg.Workload.File = o.workloadFile
	}
	if o.tasks != 0 {
		cfg.Workload.Generate.Tasks = o.tasks
	}
	if o.vms != 0 {
		cfg.Workload.Generate.VMs = o.vms
	}
	if o.workloadSeed != nil {
		cfg.Workload.Generate.Seed = *o.workloadSeed
	}

	if o.alpha != nil {
		cfg.Scheduling.Alpha = *o.alpha
	}
	if o.beta != nil {
		cfg.Scheduling.Beta = *o.beta
	}
	if o.seed != nil {
		cfg.Scheduling.Seed = *o.seed
	}
	if o.disableDeadline {
		cfg.Scheduling.EnableDeadlineConstraint = false
	}
	if o.disableBudget {
		cfg.Scheduling.EnableBudgetConstraint = false
	}
	if len(o.schedulers) > 0 {
		cfg.Scheduling.Schedulers = o.schedulers
	}
	if o.reference != "" {
		cfg.Scheduling.Reference = o.reference
	}
}

// loadConfig loads the config files, applies the overrides and validates
// the result.
func loadConfig(files []string, o overrides) (*config.Config, error) {
	log.WithField("files", files).Info("Loading cloudisim config")
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.WithField("config", cfg).Debug("Completed loading cloudisim config")
	return cfg, nil
}
