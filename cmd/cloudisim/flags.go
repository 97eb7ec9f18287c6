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
	"strconv"
)

// optionalFloat64 is a float flag value that remembers whether it was
// given on the command line.
type optionalFloat64 struct {
	value float64
	set   bool
}

func (f *optionalFloat64) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

func (f *optionalFloat64) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

// get returns nil when the flag was not given.
func (f *optionalFloat64) get() *float64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// optionalInt64 is an integer flag value that remembers whether it was
// given on the command line.
type optionalInt64 struct {
	value int64
	set   bool
}

func (f *optionalInt64) Set(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	f.value, f.set = v, true
	return nil
}

func (f *optionalInt64) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatInt(f.value, 10)
}

// get returns nil when the flag was not given.
func (f *optionalInt64) get() *int64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}
