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

package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/being-ankit/cloudisim/pkg/common/config"
	"github.com/being-ankit/cloudisim/pkg/common/metrics"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
)

// History backends.
const (
	HistoryNone  = HistoryBackend("none")
	HistoryBolt  = HistoryBackend("bolt")
	HistoryRedis = HistoryBackend("redis")
)

// HistoryBackend selects where comparison reports are kept.
type HistoryBackend string

// Config holds all configs to run the scheduling engine.
type Config struct {
	Metrics    metrics.Config   `yaml:"metrics"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	Workload   WorkloadConfig   `yaml:"workload"`
	History    HistoryConfig    `yaml:"history"`
}

// SchedulingConfig is the scheduling engine specific config.
type SchedulingConfig struct {
	// Alpha weighs the normalized time of a placement.
	Alpha float64 `yaml:"alpha" validate:"min=0,max=1"`

	// Beta weighs the normalized cost of a placement.
	Beta float64 `yaml:"beta" validate:"min=0,max=1"`

	EnableDeadlineConstraint bool `yaml:"enable_deadline_constraint"`
	EnableBudgetConstraint   bool `yaml:"enable_budget_constraint"`

	// Seed of the random scheduler.
	Seed int64 `yaml:"seed"`

	// Schedulers lists the scheduler types to compare, in report order.
	Schedulers []string `yaml:"schedulers" validate:"nonzero"`

	// Reference is the scheduler the others are compared against.
	Reference string `yaml:"reference" validate:"nonzero"`

	// Concurrency is the maximal number of schedulers run at once.
	Concurrency int `yaml:"concurrency" validate:"min=1"`

	// ProfilingWorkers bounds the parallel profiling of task rows.
	ProfilingWorkers int `yaml:"profiling_workers" validate:"min=1"`
}

// Params returns the scheduler parameters of the config.
func (c SchedulingConfig) Params() plugins.Params {
	return plugins.Params{
		Alpha:                    c.Alpha,
		Beta:                     c.Beta,
		EnableDeadlineConstraint: c.EnableDeadlineConstraint,
		EnableBudgetConstraint:   c.EnableBudgetConstraint,
		Seed:                     c.Seed,
	}
}

// WorkloadConfig tells where the batch comes from. A file wins over the
// generator.
type WorkloadConfig struct {
	File     string          `yaml:"file"`
	Generate GeneratorConfig `yaml:"generate"`
}

// GeneratorConfig sizes a generated sample workload.
type GeneratorConfig struct {
	Tasks int   `yaml:"tasks" validate:"min=1"`
	VMs   int   `yaml:"vms" validate:"min=1"`
	Seed  int64 `yaml:"seed"`
}

// HistoryConfig configures the run history store.
type HistoryConfig struct {
	Backend HistoryBackend `yaml:"backend"`
	Bolt    BoltConfig     `yaml:"bolt"`
	Redis   RedisConfig    `yaml:"redis"`
}

// BoltConfig is the embedded history database.
type BoltConfig struct {
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig is the shared history database.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`

	ConnectAttempts int           `yaml:"connect_attempts"`
	RetryInterval   time.Duration `yaml:"retry_interval"`
}

// DefaultConfig returns the config used when no file overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Scheduling: SchedulingConfig{
			Alpha:                    0.5,
			Beta:                     0.5,
			EnableDeadlineConstraint: true,
			EnableBudgetConstraint:   true,
			Seed:                     42,
			Schedulers: []string{
				plugins.TypeQoS,
				plugins.TypeFCFS,
				plugins.TypeRandom,
				plugins.TypeMinMin,
			},
			Reference:        plugins.TypeQoS,
			Concurrency:      4,
			ProfilingWorkers: 4,
		},
		Workload: WorkloadConfig{
			Generate: GeneratorConfig{
				Tasks: 50,
				VMs:   5,
				Seed:  42,
			},
		},
		History: HistoryConfig{
			Backend: HistoryNone,
			Bolt: BoltConfig{
				Path:    "cloudisim.db",
				Timeout: time.Second,
			},
			Redis: RedisConfig{
				Addr:            "localhost:6379",
				KeyPrefix:       "cloudisim",
				ConnectAttempts: 3,
				RetryInterval:   200 * time.Millisecond,
			},
		},
	}
}

// Load parses the config files over the defaults and validates the result.
func Load(files ...string) (*Config, error) {
	cfg := DefaultConfig()
	if err := config.Parse(cfg, files...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cross field constraints the struct tags can not
// express.
func (c *Config) Validate() error {
	if err := config.Validate(c); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, s := range c.Scheduling.Schedulers {
		if !KnownScheduler(s) {
			return errors.Errorf("unknown scheduler %q", s)
		}
		if seen[s] {
			return errors.Errorf("scheduler %q listed twice", s)
		}
		seen[s] = true
	}
	if !seen[c.Scheduling.Reference] {
		return errors.Errorf("reference scheduler %q is not in the schedulers list",
			c.Scheduling.Reference)
	}

	switch c.History.Backend {
	case "", HistoryNone, HistoryBolt, HistoryRedis:
	default:
		return errors.Errorf("unknown history backend %q", c.History.Backend)
	}
	return nil
}

// KnownScheduler returns true for the supported scheduler types.
func KnownScheduler(schedulerType string) bool {
	switch schedulerType {
	case plugins.TypeQoS, plugins.TypeFCFS, plugins.TypeRandom, plugins.TypeMinMin:
		return true
	}
	return false
}
