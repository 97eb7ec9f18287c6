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

// Batch is a set of tasks and the VMs they may run on.
type Batch struct {
	Tasks []*Task `yaml:"tasks" json:"tasks"`
	VMs   []*VM   `yaml:"vms" json:"vms"`
}

// Copy returns a deep copy of the batch. Schedulers mutate tasks, so every
// scheduling run gets its own copy.
func (b *Batch) Copy() *Batch {
	return &Batch{
		Tasks: CopyTasks(b.Tasks),
		VMs:   CopyVMs(b.VMs),
	}
}

// CopyTasks deep copies tasks.
func CopyTasks(tasks []*Task) []*Task {
	out := make([]*Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Copy()
	}
	return out
}

// CopyVMs deep copies vms.
func CopyVMs(vms []*VM) []*VM {
	out := make([]*VM, len(vms))
	for i, v := range vms {
		out[i] = v.Copy()
	}
	return out
}

// VMByID returns the VM with the given id, or nil.
func (b *Batch) VMByID(id int) *VM {
	for _, v := range b.VMs {
		if v.ID == id {
			return v
		}
	}
	return nil
}
