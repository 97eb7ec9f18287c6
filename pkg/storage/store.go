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

package storage

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
)

// ErrNotFound is returned for a run id that is not stored.
var ErrNotFound = errors.New("report not found")

// Report is the persisted outcome of one comparison run.
type Report struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	Params plugins.Params `json:"params"`
	Tasks  int            `json:"tasks"`
	VMs    int            `json:"vms"`
	// FeasibleTasks counts tasks with at least one VM meeting both limits.
	FeasibleTasks int `json:"feasible_tasks"`

	// Reference is the type of the scheduler the others are compared
	// against and ReferenceName its display name.
	Reference     string   `json:"reference"`
	ReferenceName string   `json:"reference_name"`
	Schedulers    []string `json:"schedulers"`

	Metrics      []*evaluation.PerformanceMetrics `json:"metrics"`
	Improvements []evaluation.Improvement         `json:"improvements,omitempty"`
	Failures     map[string]string                `json:"failures,omitempty"`
}

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks github.com/being-ankit/cloudisim/pkg/storage Store

// Store keeps the history of comparison reports.
type Store interface {
	// CreateReport persists a report under its run id.
	CreateReport(ctx context.Context, report *Report) error
	// GetReport returns the report of a run, or ErrNotFound.
	GetReport(ctx context.Context, runID string) (*Report, error)
	// ListReports returns up to limit reports, newest first. A limit of
	// zero or less returns every report.
	ListReports(ctx context.Context, limit int) ([]*Report, error)
	// Close releases the backend.
	Close() error
}

// SortNewestFirst orders reports by creation time, newest first, and
// truncates them to limit when limit is positive.
func SortNewestFirst(reports []*Report, limit int) []*Report {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports
}
