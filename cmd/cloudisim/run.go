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
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/common/logging"
	"github.com/being-ankit/cloudisim/pkg/common/metrics"
	"github.com/being-ankit/cloudisim/pkg/scheduling"
	"github.com/being-ankit/cloudisim/pkg/scheduling/config"
	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

const (
	_rootMetricScope = "cloudisim"
	_runtimeInterval = time.Second
)

// run compares the configured schedulers and prints the reports.
func run(ctx context.Context, initialLevel log.Level) error {
	cfg, err := loadConfig(*cfgFiles, flagOverrides())
	if err != nil {
		return err
	}

	rootScope, scopeCloser, mux := metrics.InitMetricScope(&cfg.Metrics, _rootMetricScope)
	defer scopeCloser.Close()

	mux.HandleFunc(logging.LevelOverwrite, logging.LevelOverwriteHandler(initialLevel))
	if p := cfg.Metrics.Prometheus; p != nil && p.Enable && p.Listen != "" {
		server := &http.Server{Addr: p.Listen, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Metrics server failed")
			}
		}()
		defer server.Close()
		log.WithField("listen", p.Listen).Info("Serving metrics")
	}

	collectorCtx, stopCollector := context.WithCancel(ctx)
	defer stopCollector()
	go metrics.NewRuntimeCollector(rootScope, _runtimeInterval).Run(collectorCtx)

	store, err := openStore(&cfg.History, rootScope)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	batch, err := loadBatch(&cfg.Workload)
	if err != nil {
		return err
	}

	comparison, err := compare(ctx, cfg, batch, rootScope, store)
	if comparison != nil {
		if werr := writeComparison(os.Stdout, comparison); werr != nil {
			return werr
		}
	}
	return err
}

// compare runs one comparison with a short lived engine.
func compare(
	ctx context.Context,
	cfg *config.Config,
	batch *models.Batch,
	scope tally.Scope,
	store storage.Store,
) (*scheduling.Comparison, error) {
	engine, err := scheduling.New(scope, &cfg.Scheduling, store)
	if err != nil {
		return nil, err
	}
	engine.Start()
	defer engine.Stop()
	return engine.Compare(ctx, batch)
}

// writeComparison prints the report of a comparison followed by the VM
// utilization of the reference schedule.
func writeComparison(w io.Writer, comparison *scheduling.Comparison) error {
	if err := writeReport(w, comparison.Report, comparison.Evaluator); err != nil {
		return err
	}
	if s, ok := comparison.Schedules[comparison.Report.Reference]; ok {
		return writeUtilization(w, s)
	}
	return nil
}

// writeReport prints the tables of a report.
func writeReport(w io.Writer, report *storage.Report, evaluator *evaluation.Evaluator) error {
	fmt.Fprintf(w, "Run %s at %s\n", report.RunID, report.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "%d tasks on %d VMs, %d tasks have a feasible VM\n",
		report.Tasks, report.VMs, report.FeasibleTasks)
	fmt.Fprintf(w, "alpha=%.2f beta=%.2f deadline constraint=%t budget constraint=%t seed=%d\n\n",
		report.Params.Alpha,
		report.Params.Beta,
		report.Params.EnableDeadlineConstraint,
		report.Params.EnableBudgetConstraint,
		report.Params.Seed,
	)

	if err := evaluator.WriteComparisonTable(w); err != nil {
		return err
	}
	if err := evaluator.WriteDetailedReport(w); err != nil {
		return err
	}
	if len(report.Improvements) > 0 {
		if err := evaluator.WriteImprovementAnalysis(w, report.ReferenceName); err != nil {
			return err
		}
	}

	if len(report.Failures) > 0 {
		types := make([]string, 0, len(report.Failures))
		for t := range report.Failures {
			types = append(types, t)
		}
		sort.Strings(types)
		fmt.Fprintln(w, "\nFailures:")
		for _, t := range types {
			fmt.Fprintf(w, "  %s: %s\n", t, report.Failures[t])
		}
	}
	return nil
}

// writeUtilization prints the per VM load of a schedule.
func writeUtilization(w io.Writer, s *plugins.Schedule) error {
	fmt.Fprintf(w, "\nVM utilization of %s\n", s.Scheduler)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VM\tTasks\tBusy Time (s)\t")
	for _, u := range s.Utilization() {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t\n", u.VMID, u.TaskCount, u.BusyTime)
	}
	return tw.Flush()
}
