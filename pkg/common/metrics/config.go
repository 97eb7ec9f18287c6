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
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"
	tallyprom "github.com/uber-go/tally/v4/prometheus"
)

// Config holds the metrics configuration
type Config struct {
	Prometheus *PrometheusConfig `yaml:"prometheus"`
	// FlushInterval controls how often the root scope reports.
	FlushInterval time.Duration `yaml:"flush_interval"`
}

// PrometheusConfig enables the prometheus reporter and its listen address.
type PrometheusConfig struct {
	Enable bool   `yaml:"enable"`
	Listen string `yaml:"listen"`
}

const _defaultFlushInterval = time.Second

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitMetricScope initialize a root scope and its closer, with a http server mux.
// Without a configured backend the returned scope is tally.NoopScope.
func InitMetricScope(
	cfg *Config,
	rootMetricScope string,
) (tally.Scope, io.Closer, *nethttp.ServeMux) {
	// mux is used to mux together other non-metric handlers, like logging level
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		fmt.Fprintln(w, `\(★ω★)/`)
	})

	if cfg == nil || cfg.Prometheus == nil || !cfg.Prometheus.Enable {
		log.Debug("No metrics backends configured, using the noop scope")
		return tally.NoopScope, nopCloser{}, mux
	}

	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = _defaultFlushInterval
	}

	// tally panics if scope name contains "-", hence force convert to "_"
	rootMetricScope = strings.Replace(rootMetricScope, "-", "_", -1)
	reporter := tallyprom.NewReporter(tallyprom.Options{})

	log.Infof("Setting up prometheus metrics handler at /metrics")
	mux.Handle("/metrics", reporter.HTTPHandler())

	// prometheus rejects the dotted names of tally's cardinality gauges
	metricScope, scopeCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:                 rootMetricScope,
		Tags:                   map[string]string{},
		CachedReporter:         reporter,
		Separator:              tallyprom.DefaultSeparator,
		OmitCardinalityMetrics: true,
	}, interval)
	return metricScope, scopeCloser, mux
}
