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

package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

type BoltStoreTestSuite struct {
	suite.Suite

	path  string
	scope tally.TestScope
	store *Store
}

func TestBoltStoreTestSuite(t *testing.T) {
	suite.Run(t, new(BoltStoreTestSuite))
}

func (s *BoltStoreTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "history.db")
	s.scope = tally.NewTestScope("", map[string]string{})

	var err error
	s.store, err = New(s.path, time.Second, s.scope)
	s.Require().NoError(err)
}

func (s *BoltStoreTestSuite) TearDownTest() {
	s.store.Close()
}

func report(runID string, createdAt time.Time) *storage.Report {
	return &storage.Report{
		RunID:      runID,
		CreatedAt:  createdAt.UTC(),
		Params:     plugins.DefaultParams(),
		Tasks:      10,
		VMs:        5,
		Reference:  plugins.TypeQoS,
		Schedulers: []string{plugins.TypeQoS, plugins.TypeFCFS},
		Metrics: []*evaluation.PerformanceMetrics{
			{Scheduler: "QoS-Aware Scheduler", TaskCount: 10, Makespan: 12.5},
			{Scheduler: "FCFS Scheduler", TaskCount: 10, Makespan: 20},
		},
		Improvements: []evaluation.Improvement{
			{Reference: "QoS-Aware Scheduler", Baseline: "FCFS Scheduler", Makespan: 37.5},
		},
	}
}

func (s *BoltStoreTestSuite) TestCreateAndGet() {
	ctx := context.Background()
	r := report("run-1", time.Now())
	s.Require().NoError(s.store.CreateReport(ctx, r))

	got, err := s.store.GetReport(ctx, "run-1")
	s.Require().NoError(err)
	s.Equal(r.RunID, got.RunID)
	s.True(r.CreatedAt.Equal(got.CreatedAt))
	s.Equal(r.Metrics, got.Metrics)
	s.Equal(r.Improvements, got.Improvements)
	s.Equal(r.Params, got.Params)

	counters := s.scope.Snapshot().Counters()
	s.Equal(int64(1), counters["bolt.report.create+result=success"].Value())
	s.Equal(int64(1), counters["bolt.report.get+result=success"].Value())
}

func (s *BoltStoreTestSuite) TestGetNotFound() {
	_, err := s.store.GetReport(context.Background(), "missing")
	s.Equal(storage.ErrNotFound, errors.Cause(err))
}

func (s *BoltStoreTestSuite) TestListNewestFirst() {
	ctx := context.Background()
	now := time.Now()
	s.Require().NoError(s.store.CreateReport(ctx, report("old", now.Add(-time.Hour))))
	s.Require().NoError(s.store.CreateReport(ctx, report("new", now)))
	s.Require().NoError(s.store.CreateReport(ctx, report("mid", now.Add(-time.Minute))))

	reports, err := s.store.ListReports(ctx, 0)
	s.Require().NoError(err)
	s.Len(reports, 3)
	s.Equal("new", reports[0].RunID)
	s.Equal("mid", reports[1].RunID)
	s.Equal("old", reports[2].RunID)

	reports, err = s.store.ListReports(ctx, 1)
	s.Require().NoError(err)
	s.Len(reports, 1)
}

func (s *BoltStoreTestSuite) TestReopenKeepsReports() {
	ctx := context.Background()
	s.Require().NoError(s.store.CreateReport(ctx, report("kept", time.Now())))
	s.Require().NoError(s.store.Close())

	var err error
	s.store, err = New(s.path, time.Second, tally.NoopScope)
	s.Require().NoError(err)

	got, err := s.store.GetReport(ctx, "kept")
	s.Require().NoError(err)
	s.Equal("kept", got.RunID)
}

func (s *BoltStoreTestSuite) TestConcurrentWritesAndReads() {
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			runID := fmt.Sprintf("run-%d", i)
			s.NoError(s.store.CreateReport(ctx, report(runID, now.Add(time.Duration(i)*time.Second))))
			_, err := s.store.GetReport(ctx, runID)
			s.NoError(err)
			_, err = s.store.ListReports(ctx, 3)
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	reports, err := s.store.ListReports(ctx, 0)
	s.Require().NoError(err)
	s.Len(reports, 8)
	s.Equal("run-7", reports[0].RunID)
}

func (s *BoltStoreTestSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Error(s.store.CreateReport(ctx, report("x", time.Now())))
	_, err := s.store.ListReports(ctx, 0)
	s.Error(err)
}
