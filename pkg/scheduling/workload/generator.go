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

package workload

import (
	"math"
	"math/rand"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// Ranges of generated tasks.
const (
	MinTaskLengthMI = 1000
	MaxTaskLengthMI = 10000
	MinDeadlineSec  = 5.0
	MaxDeadlineSec  = 20.0
	MinBudget       = 0.5
	MaxBudget       = 2.5
)

// vmType is a template for generated VMs.
type vmType struct {
	mips          float64
	costPerSecond float64
	latencySec    float64
}

// _vmTypes range from slow and cheap to fast and expensive, with a
// balanced type last. Generated VMs cycle through them.
var _vmTypes = []vmType{
	{mips: 1000, costPerSecond: 0.05, latencySec: 0.1},
	{mips: 2000, costPerSecond: 0.08, latencySec: 0.08},
	{mips: 3000, costPerSecond: 0.12, latencySec: 0.05},
	{mips: 4000, costPerSecond: 0.15, latencySec: 0.03},
	{mips: 1500, costPerSecond: 0.06, latencySec: 0.12},
}

// Generate returns a sample batch. Equal seeds give equal batches.
func Generate(numTasks, numVMs int, seed int64) *models.Batch {
	rng := rand.New(rand.NewSource(seed))

	batch := &models.Batch{
		Tasks: make([]*models.Task, numTasks),
		VMs:   make([]*models.VM, numVMs),
	}
	for i := range batch.Tasks {
		batch.Tasks[i] = models.NewTask(
			i+1,
			float64(MinTaskLengthMI+rng.Intn(MaxTaskLengthMI-MinTaskLengthMI+1)),
			round2(uniform(rng, MinDeadlineSec, MaxDeadlineSec)),
			round2(uniform(rng, MinBudget, MaxBudget)),
			models.MinPriority+rng.Intn(models.MaxPriority),
		)
	}
	for j := range batch.VMs {
		t := _vmTypes[j%len(_vmTypes)]
		batch.VMs[j] = models.NewVM(j+1, t.mips, t.costPerSecond, t.latencySec)
	}
	return batch
}

func uniform(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
