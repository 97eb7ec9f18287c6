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
	"io"
	"strings"
	"text/tabwriter"
)

const _ruleWidth = 100

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func rule(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", _ruleWidth))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", _ruleWidth))
}

// WriteComparisonTable writes one row per evaluated scheduler.
func (e *Evaluator) WriteComparisonTable(w io.Writer) error {
	rule(w, "PERFORMANCE COMPARISON")
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Scheduler\tAvg Time(s)\tTotal Cost\tMakespan\tDL Miss%\tBudget Vio%\tQoS Sat%\tThroughput\t")
	for _, m := range e.All() {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.2f\t%.2f\t%.2f\t%.4f\t\n",
			m.Scheduler,
			m.AverageExecutionTime,
			m.TotalCost,
			m.Makespan,
			m.DeadlineMissRate,
			m.BudgetViolationRate,
			m.QoSSatisfactionRate,
			m.Throughput,
		)
	}
	return tw.Flush()
}

// WriteDetailedReport writes every metric of every evaluated scheduler.
func (e *Evaluator) WriteDetailedReport(w io.Writer) error {
	rule(w, "DETAILED PERFORMANCE REPORT")
	tw := newTabWriter(w)
	for _, m := range e.All() {
		fmt.Fprintf(tw, "\n[%s]\t\n", m.Scheduler)
		fmt.Fprintf(tw, "Tasks\t%d\t\n", m.TaskCount)
		fmt.Fprintf(tw, "Total Execution Time\t%.4f s\t\n", m.TotalExecutionTime)
		fmt.Fprintf(tw, "Average Execution Time\t%.4f s\t\n", m.AverageExecutionTime)
		fmt.Fprintf(tw, "Std Dev (Time)\t%.4f s\t\n", m.StdDevExecutionTime)
		fmt.Fprintf(tw, "Makespan\t%.4f s\t\n", m.Makespan)
		fmt.Fprintf(tw, "Average Latency\t%.4f s\t\n", m.AverageLatency)
		fmt.Fprintf(tw, "Total Cost\t$%.4f\t\n", m.TotalCost)
		fmt.Fprintf(tw, "Average Cost\t$%.4f\t\n", m.AverageCost)
		fmt.Fprintf(tw, "Std Dev (Cost)\t$%.4f\t\n", m.StdDevCost)
		fmt.Fprintf(tw, "Deadlines Met\t%d/%d (%.2f%% miss)\t\n", m.DeadlinesMet, m.TaskCount, m.DeadlineMissRate)
		fmt.Fprintf(tw, "Budgets Met\t%d/%d (%.2f%% violation)\t\n", m.BudgetsMet, m.TaskCount, m.BudgetViolationRate)
		fmt.Fprintf(tw, "QoS Satisfied\t%d/%d (%.2f%%)\t\n", m.QoSSatisfied, m.TaskCount, m.QoSSatisfactionRate)
		fmt.Fprintf(tw, "Throughput\t%.4f tasks/s\t\n", m.Throughput)
	}
	return tw.Flush()
}

// WriteImprovementAnalysis writes the improvement of reference over every
// other evaluated scheduler.
func (e *Evaluator) WriteImprovementAnalysis(w io.Writer, reference string) error {
	improvements, err := e.Improvements(reference)
	if err != nil {
		return err
	}

	rule(w, fmt.Sprintf("IMPROVEMENT OF %s", strings.ToUpper(reference)))
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Baseline\tAvg Time\tTotal Cost\tMakespan\tDL Miss (pts)\tQoS Sat (pts)\t")
	for _, imp := range improvements {
		fmt.Fprintf(tw, "%s\t%+.2f%%\t%+.2f%%\t%+.2f%%\t%+.2f\t%+.2f\t\n",
			imp.Baseline,
			imp.AverageExecutionTime,
			imp.TotalCost,
			imp.Makespan,
			imp.DeadlineMissRate,
			imp.QoSSatisfactionRate,
		)
	}
	return tw.Flush()
}
