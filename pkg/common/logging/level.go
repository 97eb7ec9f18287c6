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

package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const (
	// LevelOverwrite is the default endpoint for the level overwrite handler.
	LevelOverwrite = "/logging-level"

	_defaultOverwriteDuration = time.Minute
	_usage                    = "usage: GET `/logging-level?level=<level>[&duration=<duration>]`"
)

// LevelOverwriteHandler returns a handler that raises the log verbosity
// for a bounded duration. Only the timer of the latest overwrite resets the
// level back to initialLevel.
func LevelOverwriteHandler(initialLevel log.Level) http.HandlerFunc {
	var generation atomic.Int64
	log.SetLevel(initialLevel)

	return func(w http.ResponseWriter, r *http.Request) {
		newLevel, duration, err := parseOverwrite(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, err.Error())
			fmt.Fprintln(w, _usage)
			return
		}

		log.WithFields(log.Fields{
			"new_level": newLevel,
			"duration":  duration,
		}).Info("Setting log level to new level")
		current := generation.Inc()
		log.SetLevel(newLevel)

		time.AfterFunc(duration, func() {
			if generation.Load() != current {
				return
			}
			log.WithField("initial_level", initialLevel).Info("Resetting log level after timer")
			log.SetLevel(initialLevel)
		})

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Level changed to %s for the next %v.\n", newLevel, duration)
	}
}

func parseOverwrite(r *http.Request) (log.Level, time.Duration, error) {
	values := r.URL.Query()

	raw := values.Get("level")
	if raw == "" {
		return 0, 0, errors.New("required param not set: level")
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		return 0, 0, err
	}
	if level < log.InfoLevel {
		return 0, 0, errors.Errorf("level %s is less verbose than info", raw)
	}

	duration := _defaultOverwriteDuration
	if d := values.Get("duration"); d != "" {
		duration, err = time.ParseDuration(d)
		if err != nil {
			return 0, 0, errors.Wrap(err, "bad duration")
		}
		if duration <= 0 {
			return 0, 0, errors.Errorf("duration %s must be positive", d)
		}
	}
	return level, duration, nil
}
