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

package qos

type phase int

const (
	phaseReady phase = iota
	phaseProfiled
	phaseOrdered
	phaseAssigning
	phaseDone
)

var _phaseNames = map[phase]string{
	phaseReady:     "ready",
	phaseProfiled:  "profiled",
	phaseOrdered:   "ordered",
	phaseAssigning: "assigning",
	phaseDone:      "done",
}

func (p phase) String() string {
	if name, ok := _phaseNames[p]; ok {
		return name
	}
	return "unknown"
}
