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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
)

func TestInitMetricScopeNoop(t *testing.T) {
	scope, closer, mux := InitMetricScope(&Config{}, "cloudisim")
	assert.Equal(t, tally.NoopScope, scope)
	assert.NoError(t, closer.Close())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInitMetricScopeNilConfig(t *testing.T) {
	scope, closer, _ := InitMetricScope(nil, "cloudisim")
	assert.Equal(t, tally.NoopScope, scope)
	assert.NoError(t, closer.Close())
}

func TestInitMetricScopePrometheus(t *testing.T) {
	cfg := &Config{Prometheus: &PrometheusConfig{Enable: true}}
	scope, closer, mux := InitMetricScope(cfg, "cloud-sim")
	require.NotEqual(t, tally.NoopScope, scope)

	scope.Counter("runs").Inc(1)
	// closing flushes the pending report
	require.NoError(t, closer.Close())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cloud_sim_runs 1")
	assert.NotContains(t, w.Body.String(), "cardinality")
}
