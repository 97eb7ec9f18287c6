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
	"os"
	"testing"
	"time"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/scheduling/evaluation"
	"github.com/being-ankit/cloudisim/pkg/storage"
)

// newTestStore connects to REDIS_ADDR under a random key prefix, or skips.
func newTestStore(t *testing.T) *Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	store, err := New(Options{Addr: addr, KeyPrefix: "cloudisim-test-" + uuid.New()}, tally.NoopScope)
	require.NoError(t, err)
	return store
}

func TestNewUnreachable(t *testing.T) {
	_, err := New(Options{Addr: "127.0.0.1:1"}, tally.NoopScope)
	assert.Error(t, err)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	now := time.Now().UTC()
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.CreateReport(ctx, &storage.Report{
			RunID:     id,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			Metrics:   []*evaluation.PerformanceMetrics{{Scheduler: "qos", TaskCount: i}},
		}))
	}

	got, err := store.GetReport(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Metrics[0].TaskCount)

	reports, err := store.ListReports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "c", reports[0].RunID)
	assert.Equal(t, "b", reports[1].RunID)

	_, err = store.GetReport(ctx, "missing")
	assert.Equal(t, storage.ErrNotFound, errors.Cause(err))
}

func TestKeys(t *testing.T) {
	s := &Store{prefix: "p"}
	assert.Equal(t, "p:report:x", s.reportKey("x"))
	assert.Equal(t, "p:reports", s.indexKey())
}
