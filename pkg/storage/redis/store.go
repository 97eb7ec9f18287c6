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

package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/common/backoff"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

const (
	_pingTimeout      = 5 * time.Second
	_maxRetryInterval = 5 * time.Second
)

// Options of the redis history store.
type Options struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key of the store.
	KeyPrefix string

	// ConnectAttempts bounds the pings made before giving up. Values
	// below one mean a single attempt.
	ConnectAttempts int
	// RetryInterval is the wait after the first failed ping. It doubles
	// for every further attempt.
	RetryInterval time.Duration
}

// Store is a storage.Store kept in redis. Each report is a JSON string and
// a sorted set indexes the run ids by creation time.
type Store struct {
	client  *goredis.Client
	prefix  string
	metrics *storage.Metrics
}

// New connects to redis and verifies the connection.
func New(opts Options, scope tally.Scope) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	policy := backoff.NewRetryPolicy(opts.ConnectAttempts, opts.RetryInterval, _maxRetryInterval)
	err := backoff.Retry(context.Background(), policy, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, _pingTimeout)
		defer cancel()
		err := client.Ping(ctx).Err()
		if err != nil {
			log.WithError(err).WithField("addr", opts.Addr).Debug("Redis ping failed")
		}
		return err
	})
	if err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "unable to reach redis at %s", opts.Addr)
	}

	log.WithField("addr", opts.Addr).Debug("Connected redis history store")
	return &Store{
		client:  client,
		prefix:  opts.KeyPrefix,
		metrics: storage.NewMetrics(scope.SubScope("redis")),
	}, nil
}

func (s *Store) reportKey(runID string) string {
	return s.prefix + ":report:" + runID
}

func (s *Store) indexKey() string {
	return s.prefix + ":reports"
}

// CreateReport is an implementation of the storage.Store interface.
func (s *Store) CreateReport(ctx context.Context, report *storage.Report) error {
	buf, err := json.Marshal(report)
	if err != nil {
		s.metrics.ReportCreateFail.Inc(1)
		return errors.Wrap(err, "failed to marshal report")
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.reportKey(report.RunID), buf, 0)
		pipe.ZAdd(ctx, s.indexKey(), goredis.Z{
			Score:  float64(report.CreatedAt.UnixNano()),
			Member: report.RunID,
		})
		return nil
	})
	if err != nil {
		s.metrics.ReportCreateFail.Inc(1)
		return errors.Wrapf(err, "failed to store report %s", report.RunID)
	}
	s.metrics.ReportCreate.Inc(1)
	return nil
}

// GetReport is an implementation of the storage.Store interface.
func (s *Store) GetReport(ctx context.Context, runID string) (*storage.Report, error) {
	report, err := s.get(ctx, runID)
	s.metrics.ObserveGet(err)
	return report, err
}

func (s *Store) get(ctx context.Context, runID string) (*storage.Report, error) {
	buf, err := s.client.Get(ctx, s.reportKey(runID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, errors.Wrap(storage.ErrNotFound, runID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get report %s", runID)
	}

	var report storage.Report
	if err := json.Unmarshal(buf, &report); err != nil {
		return nil, errors.Wrapf(err, "corrupt report %s", runID)
	}
	return &report, nil
}

// ListReports is an implementation of the storage.Store interface.
func (s *Store) ListReports(ctx context.Context, limit int) ([]*storage.Report, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	runIDs, err := s.client.ZRevRange(ctx, s.indexKey(), 0, stop).Result()
	if err != nil {
		s.metrics.ReportListFail.Inc(1)
		return nil, errors.Wrap(err, "failed to list reports")
	}

	reports := make([]*storage.Report, 0, len(runIDs))
	for _, runID := range runIDs {
		report, err := s.get(ctx, runID)
		if errors.Cause(err) == storage.ErrNotFound {
			// Index entry outlived its report.
			continue
		}
		if err != nil {
			s.metrics.ReportListFail.Inc(1)
			return nil, err
		}
		reports = append(reports, report)
	}
	s.metrics.ReportList.Inc(1)
	return reports, nil
}

// Close is an implementation of the storage.Store interface.
func (s *Store) Close() error {
	return s.client.Close()
}
