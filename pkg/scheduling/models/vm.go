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

// Defaults of the descriptive VM capacity attributes.
const (
	DefaultCores         = 1
	DefaultRAMMB         = 2048
	DefaultBandwidthMbps = 1000
	DefaultStorageMB     = 10000
)

// VM is a virtual machine tasks can be placed on. Capacity attributes are
// descriptive only and never constrain placement.
type VM struct {
	ID                int     `yaml:"id" json:"id"`
	MIPS              float64 `yaml:"mips" json:"mips"`
	CostPerSecond     float64 `yaml:"cost_per_second" json:"cost_per_second"`
	NetworkLatencySec float64 `yaml:"network_latency_sec" json:"network_latency_sec"`
	NumberOfCores     int     `yaml:"cores" json:"cores"`
	RAMMB             int     `yaml:"ram_mb" json:"ram_mb"`
	BandwidthMbps     int     `yaml:"bandwidth_mbps" json:"bandwidth_mbps"`
	StorageMB         int     `yaml:"storage_mb" json:"storage_mb"`
}

// NewVM returns a VM with default capacity attributes.
func NewVM(id int, mips, costPerSecond, networkLatencySec float64) *VM {
	return &VM{
		ID:                id,
		MIPS:              mips,
		CostPerSecond:     costPerSecond,
		NetworkLatencySec: networkLatencySec,
		NumberOfCores:     DefaultCores,
		RAMMB:             DefaultRAMMB,
		BandwidthMbps:     DefaultBandwidthMbps,
		StorageMB:         DefaultStorageMB,
	}
}

// Normalize fills unset capacity attributes with their defaults.
func (v *VM) Normalize() {
	if v.NumberOfCores < 1 {
		v.NumberOfCores = DefaultCores
	}
	if v.RAMMB == 0 {
		v.RAMMB = DefaultRAMMB
	}
	if v.BandwidthMbps == 0 {
		v.BandwidthMbps = DefaultBandwidthMbps
	}
	if v.StorageMB == 0 {
		v.StorageMB = DefaultStorageMB
	}
}

// ExecTime is the time in seconds to run lengthMI instructions.
func (v *VM) ExecTime(lengthMI float64) float64 {
	return lengthMI / v.MIPS
}

// TotalTime is ExecTime plus the network latency.
func (v *VM) TotalTime(lengthMI float64) float64 {
	return v.ExecTime(lengthMI) + v.NetworkLatencySec
}

// ExecCost is the price of running lengthMI instructions.
func (v *VM) ExecCost(lengthMI float64) float64 {
	return v.ExecTime(lengthMI) * v.CostPerSecond
}

// Copy returns a deep copy of the VM.
func (v *VM) Copy() *VM {
	c := *v
	return &c
}
