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
	"encoding/json"
	"time"

	boltdb "go.etcd.io/bbolt"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/storage"
)

const _reportsBucket = "reports"

// Store is a storage.Store kept in a local bolt file.
type Store struct {
	db      *boltdb.DB
	path    string
	metrics *storage.Metrics
}

// New opens or creates the bolt file at path. timeout bounds the wait for
// the file lock held by another process.
func New(path string, timeout time.Duration, scope tally.Scope) (*Store, error) {
	db, err := boltdb.Open(path, 0600, &boltdb.Options{Timeout: timeout})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}

	err = db.Update(func(tx *boltdb.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(_reportsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "unable to create reports bucket")
	}

	log.WithField("path", path).Debug("Opened bolt history store")
	return &Store{
		db:      db,
		path:    path,
		metrics: storage.NewMetrics(scope.SubScope("bolt")),
	}, nil
}

// CreateReport is an implementation of the storage.Store interface.
func (s *Store) CreateReport(ctx context.Context, report *storage.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf, err := json.Marshal(report)
	if err != nil {
		s.metrics.ReportCreateFail.Inc(1)
		return errors.Wrap(err, "failed to marshal report")
	}

	err = s.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket([]byte(_reportsBucket)).Put([]byte(report.RunID), buf)
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
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var report storage.Report
	err := s.db.View(func(tx *boltdb.Tx) error {
		value := tx.Bucket([]byte(_reportsBucket)).Get([]byte(runID))
		if value == nil {
			return errors.Wrap(storage.ErrNotFound, runID)
		}
		return json.Unmarshal(value, &report)
	})
	s.metrics.ObserveGet(err)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports is an implementation of the storage.Store interface.
func (s *Store) ListReports(ctx context.Context, limit int) ([]*storage.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reports []*storage.Report
	err := s.db.View(func(tx *boltdb.Tx) error {
		return tx.Bucket([]byte(_reportsBucket)).ForEach(func(k, v []byte) error {
			var report storage.Report
			if err := json.Unmarshal(v, &report); err != nil {
				return errors.Wrapf(err, "corrupt report %s", k)
			}
			reports = append(reports, &report)
			return nil
		})
	})
	if err != nil {
		s.metrics.ReportListFail.Inc(1)
		return nil, err
	}
	s.metrics.ReportList.Inc(1)
	return storage.SortNewestFirst(reports, limit), nil
}

// Close is an implementation of the storage.Store interface.
func (s *Store) Close() error {
	return s.db.Close()
}
