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

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

// PerformanceMetrics aggregates the results of one scheduling run.
// Execution time means the total time of a task, latency included.
type PerformanceMetrics struct {
	Scheduler string `json:"scheduler"`
	TaskCount int    `json:"task_count"`

	TotalExecutionTime   float64 `json:"total_execution_time"`
	AverageExecutionTime float64 `json:"average_execution_time"`
	StdDevExecutionTime  float64 `json:"stddev_execution_time"`
	Makespan             float64 `json:"makespan"`
	AverageLatency       float64 `json:"average_latency"`

	TotalCost   float64 `json:"total_cost"`
	AverageCost float64 `json:"average_cost"`
	StdDevCost  float64 `json:"stddev_cost"`

	DeadlinesMet        int     `json:"deadlines_met"`
	DeadlineMissRate    float64 `json:"deadline_miss_rate"`
	BudgetsMet          int     `json:"budgets_met"`
	BudgetViolationRate float64 `json:"budget_violation_rate"`
	QoSSatisfied        int     `json:"qos_satisfied"`
	QoSSatisfactionRate float64 `json:"qos_satisfaction_rate"`

	Throughput float64 `json:"throughput"`
}

// Calculate computes the metrics of results. Rates are percentages of the
// result count. An empty result list gives zero metrics.
func Calculate(scheduler string, results []*models.AssignmentResult) *PerformanceMetrics {
	m := &PerformanceMetrics{Scheduler: scheduler}
	n := len(results)
	if n == 0 {
		return m
	}

	times := make([]float64, n)
	costs := make([]float64, n)
	latencies := make([]float64, n)
	finishes := make([]float64, n)
	for i, r := range results {
		times[i] = r.TotalTime
		costs[i] = r.Cost
		latencies[i] = r.NetworkLatencySec
		finishes[i] = r.FinishTime

		if r.DeadlineSatisfied {
			m.DeadlinesMet++
		}
		if r.BudgetSatisfied {
			m.BudgetsMet++
		}
		if r.QoSSatisfied {
			m.QoSSatisfied++
		}
	}

	m.TaskCount = n
	m.TotalExecutionTime = floats.Sum(times)
	m.AverageExecutionTime, m.StdDevExecutionTime = stat.PopMeanStdDev(times, nil)
	m.TotalCost = floats.Sum(costs)
	m.AverageCost, m.StdDevCost = stat.PopMeanStdDev(costs, nil)
	m.AverageLatency = stat.Mean(latencies, nil)
	m.Makespan = floats.Max(finishes)

	m.DeadlineMissRate = percent(n-m.DeadlinesMet, n)
	m.BudgetViolationRate = percent(n-m.BudgetsMet, n)
	m.QoSSatisfactionRate = percent(m.QoSSatisfied, n)

	if m.Makespan > 0 {
		m.Throughput = float64(n) / m.Makespan
	}
	return m
}

func percent(part, total int) float64 {
	return float64(part) * 100 / float64(total)
}

// ToMap flattens the metrics for exporters that need plain key values.
func (m *PerformanceMetrics) ToMap() map[string]float64 {
	return map[string]float64{
		"totalTasks":          float64(m.TaskCount),
		"totalExecutionTime":  m.TotalExecutionTime,
		"avgExecutionTime":    m.AverageExecutionTime,
		"stdDevTime":          m.StdDevExecutionTime,
		"makespan":            m.Makespan,
		"avgLatency":          m.AverageLatency,
		"totalCost":           m.TotalCost,
		"avgCost":             m.AverageCost,
		"stdDevCost":          m.StdDevCost,
		"deadlinesMet":        float64(m.DeadlinesMet),
		"deadlineMissRate":    m.DeadlineMissRate,
		"budgetsMet":          float64(m.BudgetsMet),
		"budgetViolationRate": m.BudgetViolationRate,
		"qosSatisfied":        float64(m.QoSSatisfied),
		"qosSatisfactionRate": m.QoSSatisfactionRate,
		"throughput":          m.Throughput,
	}
}

func (m *PerformanceMetrics) String() string {
	return fmt.Sprintf("Metrics[scheduler=%s, tasks=%d, avgTime=%.4f, totalCost=%.4f, qos=%.2f%%]",
		m.Scheduler, m.TaskCount, m.AverageExecutionTime, m.TotalCost, m.QoSSatisfactionRate)
}
