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

package storage

import (
	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
)

// Metrics is a struct for tracking the report counters of the storage layer
type Metrics struct {
	ReportCreate     tally.Counter
	ReportCreateFail tally.Counter

	ReportGet      tally.Counter
	ReportGetFail  tally.Counter
	ReportNotFound tally.Counter

	ReportList     tally.Counter
	ReportListFail tally.Counter
}

// NewMetrics returns a new Metrics struct, with all metrics initialized and
// rooted at the given tally.Scope
func NewMetrics(scope tally.Scope) *Metrics {
	reportScope := scope.SubScope("report")
	reportSuccessScope := reportScope.Tagged(map[string]string{"result": "success"})
	reportFailScope := reportScope.Tagged(map[string]string{"result": "fail"})
	reportNotFoundScope := reportScope.Tagged(map[string]string{"result": "not_found"})

	return &Metrics{
		ReportCreate:     reportSuccessScope.Counter("create"),
		ReportCreateFail: reportFailScope.Counter("create"),

		ReportGet:      reportSuccessScope.Counter("get"),
		ReportGetFail:  reportFailScope.Counter("get"),
		ReportNotFound: reportNotFoundScope.Counter("get"),

		ReportList:     reportSuccessScope.Counter("list"),
		ReportListFail: reportFailScope.Counter("list"),
	}
}

// ObserveGet counts a get by its outcome.
func (m *Metrics) ObserveGet(err error) {
	switch {
	case err == nil:
		m.ReportGet.Inc(1)
	case errors.Cause(err) == ErrNotFound:
		m.ReportNotFound.Inc(1)
	default:
		m.ReportGetFail.Inc(1)
	}
}
