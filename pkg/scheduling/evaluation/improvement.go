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

package evaluation

// Improvement is how much better a reference scheduler did than a baseline.
// Positive values are improvements. Time, cost and makespan are relative
// percentages of the baseline, the rates are percentage point differences.
type Improvement struct {
	Reference string `json:"reference"`
	Baseline  string `json:"baseline"`

	AverageExecutionTime float64 `json:"average_execution_time"`
	TotalCost            float64 `json:"total_cost"`
	Makespan             float64 `json:"makespan"`
	DeadlineMissRate     float64 `json:"deadline_miss_rate"`
	QoSSatisfactionRate  float64 `json:"qos_satisfaction_rate"`
}

// Compare computes the improvement of ref over base.
func Compare(ref, base *PerformanceMetrics) Improvement {
	return Improvement{
		Reference:            ref.Scheduler,
		Baseline:             base.Scheduler,
		AverageExecutionTime: relativeDecrease(base.AverageExecutionTime, ref.AverageExecutionTime),
		TotalCost:            relativeDecrease(base.TotalCost, ref.TotalCost),
		Makespan:             relativeDecrease(base.Makespan, ref.Makespan),
		DeadlineMissRate:     base.DeadlineMissRate - ref.DeadlineMissRate,
		QoSSatisfactionRate:  ref.QoSSatisfactionRate - base.QoSSatisfactionRate,
	}
}

// relativeDecrease is the percentage by which value is below base. A zero
// base gives zero.
func relativeDecrease(base, value float64) float64 {
	if base == 0 {
		return 0
	}
	return (base - value) / base * 100
}
