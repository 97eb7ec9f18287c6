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

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVMDerivedFunctions(t *testing.T) {
	vm := NewVM(1, 2000, 0.08, 0.25)
	assert.InDelta(t, 2.5, vm.ExecTime(5000), 1e-9)
	assert.InDelta(t, 2.75, vm.TotalTime(5000), 1e-9)
	assert.InDelta(t, 0.2, vm.ExecCost(5000), 1e-9)
}

func TestNewVMDefaults(t *testing.T) {
	vm := NewVM(1, 1000, 0.05, 0.1)
	assert.Equal(t, DefaultCores, vm.NumberOfCores)
	assert.Equal(t, DefaultRAMMB, vm.RAMMB)
	assert.Equal(t, DefaultBandwidthMbps, vm.BandwidthMbps)
	assert.Equal(t, DefaultStorageMB, vm.StorageMB)
}

func TestVMNormalize(t *testing.T) {
	vm := &VM{ID: 1, MIPS: 1000, CostPerSecond: 0.1, RAMMB: 4096}
	vm.Normalize()
	assert.Equal(t, DefaultCores, vm.NumberOfCores)
	assert.Equal(t, 4096, vm.RAMMB)
	assert.Equal(t, DefaultStorageMB, vm.StorageMB)
}

func TestBatchCopyIsDeep(t *testing.T) {
	b := &Batch{
		Tasks: []*Task{NewTask(1, 1000, 5, 1, 5)},
		VMs:   []*VM{NewVM(1, 1000, 0.1, 0)},
	}
	c := b.Copy()
	c.Tasks[0].AssignedVMID = 1
	c.VMs[0].MIPS = 1

	assert.Equal(t, Unassigned, b.Tasks[0].AssignedVMID)
	assert.Equal(t, 1000.0, b.VMs[0].MIPS)
	assert.Equal(t, c.VMs[0], c.VMByID(1))
	assert.Nil(t, c.VMByID(2))
}
