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

package testutil

import (
	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// SetupTasks creates n tasks with lengths growing by 1000 MI, deadlines
// alternating between tight and loose, and priorities cycling 1..10.
func SetupTasks(n int) []*models.Task {
	tasks := make([]*models.Task, n)
	for i := 0; i < n; i++ {
		deadline := 4.0
		if i%2 == 1 {
			deadline = 12
		}
		tasks[i] = models.NewTask(
			i+1,
			float64(1000*(i+1)),
			deadline,
			1.5,
			i%models.MaxPriority+1,
		)
	}
	return tasks
}

// SetupVMs creates the five standard VM types: slow and cheap through fast
// and expensive, plus a balanced one.
func SetupVMs() []*models.VM {
	return []*models.VM{
		models.NewVM(1, 1000, 0.05, 0.1),
		models.NewVM(2, 2000, 0.08, 0.08),
		models.NewVM(3, 3000, 0.12, 0.05),
		models.NewVM(4, 4000, 0.15, 0.03),
		models.NewVM(5, 1500, 0.06, 0.12),
	}
}

// SetupBatch creates a batch of n tasks on the standard VMs.
func SetupBatch(n int) *models.Batch {
	return &models.Batch{
		Tasks: SetupTasks(n),
		VMs:   SetupVMs(),
	}
}
