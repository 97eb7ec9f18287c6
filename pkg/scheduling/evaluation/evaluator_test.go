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
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"github.com/being-ankit/cloudisim/pkg/scheduling/models"
)

type EvaluatorTestSuite struct {
	suite.Suite

	evaluator *Evaluator
	results   []*models.AssignmentResult
}

func TestEvaluatorTestSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func (s *EvaluatorTestSuite) SetupTest() {
	s.evaluator = New()

	vm := models.NewVM(1, 1000, 1, 0.5)
	first := models.NewAssignmentResult(models.NewTask(1, 1000, 2, 2, 5), vm, 0)
	second := models.NewAssignmentResult(models.NewTask(2, 2000, 2, 1, 5), vm, first.FinishTime)
	s.results = []*models.AssignmentResult{first, second}
}

func (s *EvaluatorTestSuite) TestCalculate() {
	m := Calculate("qos", s.results)

	s.Equal("qos", m.Scheduler)
	s.Equal(2, m.TaskCount)
	s.InDelta(4, m.TotalExecutionTime, 1e-12)
	s.InDelta(2, m.AverageExecutionTime, 1e-12)
	s.InDelta(0.5, m.StdDevExecutionTime, 1e-12)
	s.InDelta(3, m.TotalCost, 1e-12)
	s.InDelta(1.5, m.AverageCost, 1e-12)
	s.InDelta(0.5, m.StdDevCost, 1e-12)
	s.InDelta(0.5, m.AverageLatency, 1e-12)
	s.InDelta(4, m.Makespan, 1e-12)
	s.InDelta(0.5, m.Throughput, 1e-12)
	s.Equal(1, m.DeadlinesMet)
	s.InDelta(50, m.DeadlineMissRate, 1e-12)
	s.InDelta(50, m.BudgetViolationRate, 1e-12)
	s.InDelta(50, m.QoSSatisfactionRate, 1e-12)
}

func (s *EvaluatorTestSuite) TestCalculateEmpty() {
	m := Calculate("none", nil)
	s.Equal(0, m.TaskCount)
	s.Equal(0.0, m.Throughput)
	s.Equal(0.0, m.DeadlineMissRate)
}

func (s *EvaluatorTestSuite) TestZeroMakespanThroughput() {
	vm := models.NewVM(1, 1000, 0, 0)
	r := models.NewAssignmentResult(models.NewTask(1, 0, 1, 1, 5), vm, 0)
	m := Calculate("zero", []*models.AssignmentResult{r})
	s.Equal(0.0, m.Makespan)
	s.Equal(0.0, m.Throughput)
}

func (s *EvaluatorTestSuite) TestInsertionOrder() {
	s.evaluator.Evaluate("qos", s.results)
	s.evaluator.Evaluate("fcfs", s.results[:1])
	s.evaluator.Evaluate("minmin", s.results)
	s.evaluator.Evaluate("fcfs", s.results)

	s.Equal([]string{"qos", "fcfs", "minmin"}, s.evaluator.Names())
	all := s.evaluator.All()
	s.Len(all, 3)
	s.Equal(2, all[1].TaskCount)
}

func (s *EvaluatorTestSuite) TestFromMetrics() {
	s.evaluator.Evaluate("b", s.results)
	s.evaluator.Evaluate("a", s.results[:1])

	restored := FromMetrics(s.evaluator.All())
	s.Equal([]string{"b", "a"}, restored.Names())
	s.Equal(s.evaluator.All(), restored.All())

	improvements, err := restored.Improvements("a")
	s.NoError(err)
	s.Len(improvements, 1)
}

func (s *EvaluatorTestSuite) TestUnknownScheduler() {
	_, err := s.evaluator.Metrics("missing")
	s.Equal(ErrUnknownScheduler, errors.Cause(err))

	_, err = s.evaluator.Improvements("missing")
	s.Equal(ErrUnknownScheduler, errors.Cause(err))
}

func (s *EvaluatorTestSuite) TestReset() {
	s.evaluator.Evaluate("qos", s.results)
	s.evaluator.Reset()
	s.Empty(s.evaluator.Names())
	s.Empty(s.evaluator.All())
}

func (s *EvaluatorTestSuite) TestImprovements() {
	s.evaluator.Evaluate("qos", s.results[:1])
	s.evaluator.Evaluate("fcfs", s.results)

	improvements, err := s.evaluator.Improvements("qos")
	s.Require().NoError(err)
	s.Require().Len(improvements, 1)

	imp := improvements[0]
	s.Equal("qos", imp.Reference)
	s.Equal("fcfs", imp.Baseline)
	// avg time 1.5 against 2, cost 1 against 3, makespan 1.5 against 4.
	s.InDelta(25, imp.AverageExecutionTime, 1e-9)
	s.InDelta(200.0/3, imp.TotalCost, 1e-9)
	s.InDelta(62.5, imp.Makespan, 1e-9)
	s.InDelta(50, imp.DeadlineMissRate, 1e-9)
	s.InDelta(50, imp.QoSSatisfactionRate, 1e-9)
}

func (s *EvaluatorTestSuite) TestCompareZeroBaseline() {
	imp := Compare(Calculate("qos", s.results), Calculate("empty", nil))
	s.Equal(0.0, imp.AverageExecutionTime)
	s.Equal(0.0, imp.TotalCost)
	s.Equal(0.0, imp.Makespan)
}

func (s *EvaluatorTestSuite) TestReports() {
	s.evaluator.Evaluate("qos", s.results[:1])
	s.evaluator.Evaluate("fcfs", s.results)

	var buf bytes.Buffer
	s.NoError(s.evaluator.WriteComparisonTable(&buf))
	s.Contains(buf.String(), "PERFORMANCE COMPARISON")
	s.Contains(buf.String(), "fcfs")

	buf.Reset()
	s.NoError(s.evaluator.WriteDetailedReport(&buf))
	s.Contains(buf.String(), "[qos]")
	s.Contains(buf.String(), "Throughput")

	buf.Reset()
	s.NoError(s.evaluator.WriteImprovementAnalysis(&buf, "qos"))
	s.Contains(buf.String(), "+62.50%")

	s.Error(s.evaluator.WriteImprovementAnalysis(&buf, "missing"))
}

func (s *EvaluatorTestSuite) TestToMap() {
	m := Calculate("qos", s.results).ToMap()
	s.Equal(2.0, m["totalTasks"])
	s.InDelta(4, m["makespan"], 1e-12)
	s.InDelta(50, m["qosSatisfactionRate"], 1e-12)
	s.Len(m, 16)
	s.Contains(Calculate("qos", s.results).String(), "scheduler=qos")
}
