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

package fcfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/being-ankit/cloudisim/pkg/scheduling/plugins"
	"github.com/being-ankit/cloudisim/pkg/scheduling/testutil"
)

func TestFCFSRoundRobin(t *testing.T) {
	batch := testutil.SetupBatch(12)
	schedule, err := New().Schedule(batch.Tasks, batch.VMs, plugins.DefaultParams())
	require.NoError(t, err)
	require.Len(t, schedule.Results, 12)

	for i, r := range schedule.Results {
		assert.Equal(t, batch.Tasks[i].ID, r.TaskID)
		assert.Equal(t, batch.VMs[i%len(batch.VMs)].ID, r.VMID)
	}
}

func TestFCFSCumulativeStart(t *testing.T) {
	batch := testutil.SetupBatch(7)
	schedule, err := New().Schedule(batch.Tasks, batch.VMs, plugins.DefaultParams())
	require.NoError(t, err)

	// Task 6 (index 5) is the second task on the first vm.
	assert.InDelta(t, schedule.Results[0].FinishTime, schedule.Results[5].StartTime, 1e-12)
	assert.Equal(t, 0.0, schedule.Results[4].StartTime)
	assert.Equal(t, 2, schedule.Utilization()[0].TaskCount)
	assert.Equal(t, 2, schedule.Utilization()[1].TaskCount)
	assert.Equal(t, 1, schedule.Utilization()[2].TaskCount)
}

func TestFCFSDeterministicAndPure(t *testing.T) {
	batch := testutil.SetupBatch(9)
	first, err := New().Schedule(batch.Tasks, batch.VMs, plugins.DefaultParams())
	require.NoError(t, err)
	second, err := New().Schedule(batch.Tasks, batch.VMs, plugins.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, first.Results, second.Results)
	assert.False(t, batch.Tasks[0].IsAssigned())
	assert.True(t, first.Tasks[0].IsAssigned())
}

func TestFCFSNoVMs(t *testing.T) {
	schedule, err := New().Schedule(testutil.SetupTasks(2), nil, plugins.DefaultParams())
	assert.Equal(t, plugins.ErrNoVMs, err)
	assert.Len(t, schedule.Failures, 2)
	assert.Equal(t, plugins.TypeFCFS, New().Type())
	assert.Equal(t, "FCFS Scheduler", New().Name())
}
