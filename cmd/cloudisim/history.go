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
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

// openHistory opens the configured store, failing when history is
// disabled.
func openHistory() (storage.Store, error) {
	cfg, err := loadConfig(*cfgFiles, flagOverrides())
	if err != nil {
		return nil, err
	}
	store, err := openStore(&cfg.History, tally.NoopScope)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errNoHistory
	}
	return store, nil
}

func historyList(ctx context.Context, limit int) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	reports, err := store.ListReports(ctx, limit)
	if err != nil {
		return err
	}
	return writeReportList(os.Stdout, reports)
}

func historyShow(ctx context.Context, runID string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.GetReport(ctx, runID)
	if err != nil {
		return err
	}
	return writeReport(os.Stdout, report, evaluation.FromMetrics(report.Metrics))
}

// writeReportList prints one line per report.
func writeReportList(w io.Writer, reports []*storage.Report) error {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No runs found")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Run ID\tCreated\tTasks\tVMs\tReference\tSchedulers\tFailures\t")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%d\t\n",
			r.RunID,
			r.CreatedAt.Format(time.RFC3339),
			r.Tasks,
			r.VMs,
			r.Reference,
			strings.Join(r.Schedulers, ","),
			len(r.Failures),
		)
	}
	return tw.Flush()
}
