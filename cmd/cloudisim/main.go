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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/being-ankit/cloudisim/pkg/common/logging"
)

const _appLogField = "app"

var (
	version string
	app     = kingpin.New("cloudisim", "QoS-aware cloud task scheduling simulator")

	debug = app.Flag(
		"debug", "enable debug logging").
		Short('d').
		Default("false").
		Envar("ENABLE_DEBUG_LOGGING").
		Bool()

	textLogs = app.Flag(
		"text-logs", "log as text instead of JSON").
		Default("false").
		Envar("TEXT_LOGS").
		Bool()

	cfgFiles = app.Flag(
		"config",
		"YAML config files (can be provided multiple times to merge configs)").
		Short('c').
		Envar("CLOUDISIM_CONFIG").
		ExistingFiles()

	historyBackend = app.Flag(
		"history-backend",
		"Run history backend (history.backend override) (set $HISTORY_BACKEND to override)").
		Envar("HISTORY_BACKEND").
		Enum("none", "bolt", "redis")

	boltPath = app.Flag(
		"bolt-path",
		"Bolt history file (history.bolt.path override) (set $BOLT_PATH to override)").
		Envar("BOLT_PATH").
		String()

	redisAddr = app.Flag(
		"redis-addr",
		"Redis address (history.redis.addr override) (set $REDIS_ADDR to override)").
		Envar("REDIS_ADDR").
		String()

	redisPassword = app.Flag(
		"redis-password", "Redis password").
		Envar("REDIS_PASSWORD").
		String()

	runCmd = app.Command("run", "Compare the configured schedulers on a workload").Default()

	runWorkloadSeed optionalInt64
	alpha           optionalFloat64
	beta            optionalFloat64
	seed            optionalInt64

	metricsListen = runCmd.Flag(
		"metrics-listen",
		"Serve prometheus metrics on this address while running "+
			"(metrics.prometheus.listen override) (set $METRICS_LISTEN to override)").
		Envar("METRICS_LISTEN").
		String()

	workloadFile = runCmd.Flag(
		"workload", "YAML workload file (workload.file override)").
		Short('w').
		Envar("WORKLOAD_FILE").
		String()

	runTasks = runCmd.Flag(
		"tasks", "Number of generated tasks when no workload file is given").
		Default("0").
		Int()

	runVMs = runCmd.Flag(
		"vms", "Number of generated VMs when no workload file is given").
		Default("0").
		Int()

	disableDeadline = runCmd.Flag(
		"disable-deadline-constraint", "Ignore deadlines when selecting VMs").
		Default("false").
		Bool()

	disableBudget = runCmd.Flag(
		"disable-budget-constraint", "Ignore budgets when selecting VMs").
		Default("false").
		Bool()

	schedulers = runCmd.Flag(
		"scheduler",
		"Scheduler type to compare, repeat for several (scheduling.schedulers override)").
		Short('s').
		Enums("qos", "fcfs", "random", "minmin")

	reference = runCmd.Flag(
		"reference", "Scheduler the others are compared against").
		Enum("qos", "fcfs", "random", "minmin")

	generateCmd = app.Command("generate", "Write a sample workload file")

	generateOutput = generateCmd.Flag(
		"output", "Workload file to write").
		Short('o').
		Required().
		String()

	generateTasks = generateCmd.Flag(
		"tasks", "Number of tasks").
		Default("50").
		Int()

	generateVMs = generateCmd.Flag(
		"vms", "Number of VMs").
		Default("5").
		Int()

	generateSeed = generateCmd.Flag(
		"seed", "Seed of the generator").
		Default("42").
		Int64()

	historyCmd = app.Command("history", "Inspect stored comparison runs")

	historyListCmd = historyCmd.Command("list", "List recent runs")

	historyLimit = historyListCmd.Flag(
		"limit", "Maximal number of runs to list").
		Short('n').
		Default("10").
		Int()

	historyShowCmd = historyCmd.Command("show", "Show one run")

	historyRunID = historyShowCmd.Arg("run-id", "Run id").Required().String()
)

func init() {
	runCmd.Flag(
		"workload-seed", "Seed of the workload generator (workload.generate.seed override)").
		SetValue(&runWorkloadSeed)

	runCmd.Flag(
		"alpha", "Weight of the normalized time in the QoS score (scheduling.alpha override)").
		SetValue(&alpha)

	runCmd.Flag(
		"beta", "Weight of the normalized cost in the QoS score (scheduling.beta override)").
		SetValue(&beta)

	runCmd.Flag(
		"seed", "Seed of the random scheduler (scheduling.seed override)").
		SetValue(&seed)
}

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	var formatter log.Formatter = &log.JSONFormatter{}
	if *textLogs {
		formatter = &log.TextFormatter{FullTimestamp: true}
	}
	log.SetFormatter(
		&logging.LogFieldFormatter{
			Formatter: formatter,
			Fields: log.Fields{
				_appLogField: app.Name,
			},
		},
	)

	initialLevel := log.InfoLevel
	if *debug {
		initialLevel = log.DebugLevel
	}
	log.SetLevel(initialLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	switch cmd {
	case runCmd.FullCommand():
		err = run(ctx, initialLevel)
	case generateCmd.FullCommand():
		err = generate(*generateOutput, *generateTasks, *generateVMs, *generateSeed)
	case historyListCmd.FullCommand():
		err = historyList(ctx, *historyLimit)
	case historyShowCmd.FullCommand():
		err = historyShow(ctx, *historyRunID)
	}
	if err != nil {
		log.WithError(err).WithField("command", cmd).Fatal("Command failed")
	}
}
