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

package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/validator.v2"
	"gopkg.in/yaml.v2"
)

// ValidationError is the returned when a configuration fails to pass validation
type ValidationError struct {
	errorMap validator.ErrorMap
}

// ErrForField returns the validation error for the given field
func (e ValidationError) ErrForField(name string) error {
	if errs, ok := e.errorMap[name]; ok {
		return errs
	}
	return nil
}

// Error returns the error string from a ValidationError
func (e ValidationError) Error() string {
	var w bytes.Buffer

	fields := make([]string, 0, len(e.errorMap))
	for f := range e.errorMap {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Fprintf(&w, "validation failed")
	for _, f := range fields {
		fmt.Fprintf(&w, "   %s: %v\n", f, e.errorMap[f])
	}

	return w.String()
}

// Parse loads the given configFiles in order, merges them together, and parse into given
// config interface. Values already set on config act as defaults.
func Parse(config interface{}, configFiles ...string) error {
	if len(configFiles) == 0 {
		return errors.New("no files to load")
	}
	for _, fname := range configFiles {
		data, err := os.ReadFile(fname)
		if err != nil {
			return errors.Wrapf(err, "failed to read config file %s", fname)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return errors.Wrapf(err, "failed to unmarshal config file %s", fname)
		}
	}

	return Validate(config)
}

// Validate runs the struct tag validators on the given config.
func Validate(config interface{}) error {
	if err := validator.Validate(config); err != nil {
		errMap, ok := err.(validator.ErrorMap)
		if !ok {
			return err
		}
		return ValidationError{
			errorMap: errMap,
		}
	}
	return nil
}
