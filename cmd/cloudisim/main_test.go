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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/being-ankit/cloudisim/pkg/scheduling/config"
	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

func float64Ptr(v float64) *float64 { return &v }

func int64Ptr(v int64) *int64 { return &v }

func TestOverridesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	overrides{}.apply(cfg)
	assert.Equal(t, config.DefaultConfig(), cfg)

	o := overrides{
		historyBackend:  "bolt",
		boltPath:        "/tmp/h.db",
		redisAddr:       "redis:6379",
		metricsListen:   ":9090",
		workloadFile:    "w.yaml",
		tasks:           7,
		vms:             3,
		workloadSeed:    int64Ptr(0),
		alpha:           float64Ptr(0),
		beta:            float64Ptr(1),
		seed:            int64Ptr(9),
		disableDeadline: true,
		disableBudget:   true,
		schedulers:      []string{"fcfs", "minmin"},
		reference:       "minmin",
	}
	o.apply(cfg)
	assert.Equal(t, config.HistoryBolt, cfg.History.Backend)
	assert.Equal(t, "/tmp/h.db", cfg.History.Bolt.Path)
	assert.Equal(t, "redis:6379", cfg.History.Redis.Addr)
	require.NotNil(t, cfg.Metrics.Prometheus)
	assert.True(t, cfg.Metrics.Prometheus.Enable)
	assert.Equal(t, ":9090", cfg.Metrics.Prometheus.Listen)
	assert.Equal(t, "w.yaml", cfg.Workload.File)
	assert.Equal(t, 7, cfg.Workload.Generate.Tasks)
	assert.Equal(t, 3, cfg.Workload.Generate.VMs)
	assert.Equal(t, int64(0), cfg.Workload.Generate.Seed)
	assert.Equal(t, 0.0, cfg.Scheduling.Alpha)
	assert.Equal(t, 1.0, cfg.Scheduling.Beta)
	assert.Equal(t, int64(9), cfg.Scheduling.Seed)
	assert.False(t, cfg.Scheduling.EnableDeadlineConstraint)
	assert.False(t, cfg.Scheduling.EnableBudgetConstraint)
	assert.Equal(t, []string{"fcfs", "minmin"}, cfg.Scheduling.Schedulers)
	assert.Equal(t, "minmin", cfg.Scheduling.Reference)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cloudisim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduling:
  alpha: 0.7
  beta: 0.3
`), 0644))

	cfg, err := loadConfig([]string{path}, overrides{beta: float64Ptr(0.2)})
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Scheduling.Alpha)
	assert.Equal(t, 0.2, cfg.Scheduling.Beta)

	_, err = loadConfig([]string{path}, overrides{alpha: float64Ptr(2)})
	assert.Error(t, err)

	_, err = loadConfig(nil, overrides{schedulers: []string{"fcfs"}})
	assert.Error(t, err, "reference qos is no longer compared")
}

func TestExplicitZeroSeedOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloudisim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduling:
  seed: 7
workload:
  generate:
    seed: 11
`), 0644))

	a := kingpin.New("test", "")
	var schedulingSeed, workloadSeed optionalInt64
	var weight optionalFloat64
	a.Flag("seed", "").SetValue(&schedulingSeed)
	a.Flag("workload-seed", "").SetValue(&workloadSeed)
	a.Flag("alpha", "").SetValue(&weight)
	_, err := a.Parse([]string{"--seed", "0", "--workload-seed", "0"})
	require.NoError(t, err)
	assert.Equal(t, "0", schedulingSeed.String())
	assert.Nil(t, weight.get())

	cfg, err := loadConfig([]string{path}, overrides{
		seed:         schedulingSeed.get(),
		workloadSeed: workloadSeed.get(),
		alpha:        weight.get(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.Scheduling.Seed)
	assert.Equal(t, int64(0), cfg.Workload.Generate.Seed)
	assert.Equal(t, 0.5, cfg.Scheduling.Alpha)

	cfg, err = loadConfig([]string{path}, overrides{})
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Scheduling.Seed)
	assert.Equal(t, int64(11), cfg.Workload.Generate.Seed)
}

func TestOptionalFlagValues(t *testing.T) {
	var f optionalFloat64
	assert.Equal(t, "", f.String())
	assert.Error(t, f.Set("x"))
	assert.Nil(t, f.get())
	require.NoError(t, f.Set("0.25"))
	assert.Equal(t, 0.25, *f.get())

	var i optionalInt64
	assert.Error(t, i.Set("1.5"))
	require.NoError(t, i.Set("-3"))
	assert.Equal(t, int64(-3), *i.get())
}

func TestOpenStore(t *testing.T) {
	cfg := config.DefaultConfig()
	store, err := openStore(&cfg.History, tally.NoopScope)
	require.NoError(t, err)
	assert.Nil(t, store)

	cfg.History.Backend = config.HistoryBolt
	cfg.History.Bolt.Path = filepath.Join(t.TempDir(), "history.db")
	store, err = openStore(&cfg.History, tally.NoopScope)
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())

	cfg.History.Backend = "etcd"
	_, err = openStore(&cfg.History, tally.NoopScope)
	assert.Error(t, err)
}

func TestGenerateAndLoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, generate(path, 6, 4, 7))

	batch, err := loadBatch(&config.WorkloadConfig{File: path})
	require.NoError(t, err)
	assert.Len(t, batch.Tasks, 6)
	assert.Len(t, batch.VMs, 4)

	generated, err := loadBatch(&config.WorkloadConfig{
		Generate: config.GeneratorConfig{Tasks: 6, VMs: 4, Seed: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, batch.Tasks, generated.Tasks)

	assert.Error(t, generate(path, 0, 4, 7))
	_, err = loadBatch(&config.WorkloadConfig{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestCompareAndHistory(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.History.Backend = config.HistoryBolt
	cfg.History.Bolt.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.Workload.Generate.Tasks = 8

	store, err := openStore(&cfg.History, tally.NoopScope)
	require.NoError(t, err)
	defer store.Close()

	batch, err := loadBatch(&cfg.Workload)
	require.NoError(t, err)

	comparison, err := compare(context.Background(), cfg, batch, tally.NoopScope, store)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeComparison(&out, comparison))
	assert.Contains(t, out.String(), comparison.Report.RunID)
	assert.Contains(t, out.String(), "Min-Min Scheduler")
	assert.Contains(t, out.String(), "VM utilization of QoS-Aware Scheduler")

	reports, err := store.ListReports(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	out.Reset()
	require.NoError(t, writeReportList(&out, reports))
	assert.Contains(t, out.String(), comparison.Report.RunID)

	stored, err := store.GetReport(context.Background(), comparison.Report.RunID)
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, writeReport(&out, stored, evaluation.FromMetrics(stored.Metrics)))
	assert.Contains(t, out.String(), "IMPROVEMENT OF QOS-AWARE SCHEDULER")
}

func TestWriteReportFailures(t *testing.T) {
	report := &storage.Report{
		RunID:     "run",
		CreatedAt: time.Now(),
		Failures:  map[string]string{"random": "no vms", "fcfs": "no vms"},
	}
	var out bytes.Buffer
	require.NoError(t, writeReport(&out, report, evaluation.New()))
	assert.Contains(t, out.String(), "fcfs: no vms\n  random: no vms")
}

func TestWriteEmptyReportList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeReportList(&out, nil))
	assert.Equal(t, "No runs found\n", out.String())
}
