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
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally/v4"

	"github.com/being-ankit/cloudisim/pkg/scheduling/config"
	"github.com/being-ankit/cloudisim/pkg/storage"
	"github.com/being-ankit/cloudisim/pkg/storage/bolt"
	"github.com/being-ankit/cloudisim/pkg/storage/redis"
)

// errNoHistory is returned by the history commands without a backend.
var errNoHistory = errors.New("no history backend configured, use --history-backend")

// openStore opens the configured history store. It returns nil when the
// history is disabled.
func openStore(cfg *config.HistoryConfig, scope tally.Scope) (storage.Store, error) {
	switch cfg.Backend {
	case config.HistoryBolt:
		log.WithField("path", cfg.Bolt.Path).Info("Opening bolt history")
		store, err := bolt.New(cfg.Bolt.Path, cfg.Bolt.Timeout, scope)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.HistoryRedis:
		log.WithField("addr", cfg.Redis.Addr).Info("Connecting to redis history")
		store, err := redis.New(redis.Options{
			Addr:            cfg.Redis.Addr,
			Password:        cfg.Redis.Password,
			DB:              cfg.Redis.DB,
			KeyPrefix:       cfg.Redis.KeyPrefix,
			ConnectAttempts: cfg.Redis.ConnectAttempts,
			RetryInterval:   cfg.Redis.RetryInterval,
		}, scope)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "", config.HistoryNone:
		return nil, nil
	}
	return nil, errors.Errorf("unknown history backend %q", cfg.Backend)
}
