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

package sorter

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// elements struct with 4 values which will be sorted
type elements struct {
	value1 int
	value2 int
	value3 int
	value4 int
}

type MultiKeySorterTestSuite struct {
	suite.Suite
}

func TestSorterTestSuite(t *testing.T) {
	suite.Run(t, new(MultiKeySorterTestSuite))
}

// TestSorting tests the sorting based on the order specified
func (suite *MultiKeySorterTestSuite) TestSorting() {
	elementList := []elements{
		{1, 1, 1, 1},
		{1, 1, 1, 4},
		{2, 2, 2, 4},
		{3, 3, 3, 2},
		{3, 3, 3, 2},
	}

	value1 := func(c1, c2 elements) bool { return c1.value1 < c2.value1 }
	value2 := func(c1, c2 elements) bool { return c1.value2 < c2.value2 }
	value3 := func(c1, c2 elements) bool { return c1.value3 < c2.value3 }
	value4 := func(c1, c2 elements) bool { return c1.value4 < c2.value4 }

	OrderedBy(value4, value1, value2, value3).Sort(elementList)

	suite.EqualValues(elements{1, 1, 1, 1}, elementList[0])
	suite.EqualValues(elements{3, 3, 3, 2}, elementList[1])
	suite.EqualValues(elements{3, 3, 3, 2}, elementList[2])
	suite.EqualValues(elements{1, 1, 1, 4}, elementList[3])
	suite.EqualValues(elements{2, 2, 2, 4}, elementList[4])
}

// TestSortingIsStable checks that elements equal on every key keep
// their input order.
func (suite *MultiKeySorterTestSuite) TestSortingIsStable() {
	type item struct {
		key int
		tag string
	}
	list := []item{
		{2, "a"}, {1, "b"}, {2, "c"}, {1, "d"}, {2, "e"}, {1, "f"},
	}

	OrderedBy(func(p, q item) bool { return p.key < q.key }).Sort(list)

	var tags []string
	for _, i := range list {
		tags = append(tags, i.tag)
	}
	suite.Equal([]string{"b", "d", "f", "a", "c", "e"}, tags)
}

func (suite *MultiKeySorterTestSuite) TestSortingDescendingThenAscending() {
	type pair struct {
		priority int
		deadline float64
	}
	list := []pair{{5, 3}, {9, 8}, {5, 1}, {9, 2}}

	OrderedBy(
		func(p, q pair) bool { return p.priority > q.priority },
		func(p, q pair) bool { return p.deadline < q.deadline },
	).Sort(list)

	suite.Equal([]pair{{9, 2}, {9, 8}, {5, 1}, {5, 3}}, list)
}

func (suite *MultiKeySorterTestSuite) TestSortingWithoutKeysKeepsOrder() {
	list := []int{3, 1, 2}
	OrderedBy[int]().Sort(list)
	suite.Equal([]int{3, 1, 2}, list)
}
