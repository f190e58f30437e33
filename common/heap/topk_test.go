// Copyright 2026 fairrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKFilter(t *testing.T) {
	a := NewTopKFilter[int, float64](3)
	a.Push(10, 2)
	a.Push(20, 8)
	a.Push(30, 1)
	values, weights := a.PopAll()
	assert.Equal(t, []int{20, 10, 30}, values)
	assert.Equal(t, []float64{8, 2, 1}, weights)

	a = NewTopKFilter[int, float64](3)
	for i, w := range []float64{2, 8, 1, 2, 5, 10, 7, 9} {
		a.Push(i, w)
	}
	values, weights = a.PopAll()
	assert.Equal(t, []int{5, 7, 1}, values)
	assert.Equal(t, []float64{10, 9, 8}, weights)
	assert.Zero(t, a.Len())
}

func TestTopKFilterTies(t *testing.T) {
	a := NewTopKFilter[string, int](2)
	a.Push("a", 1)
	a.Push("b", 3)
	a.Push("c", 1)
	a.Push("d", 3)
	a.Push("e", 3)
	values, _ := a.PopAll()
	assert.Equal(t, []string{"b", "d"}, values)

	a = NewTopKFilter[string, int](4)
	a.Push("a", 1)
	a.Push("b", 1)
	a.Push("c", 2)
	a.Push("d", 1)
	values, _ = a.PopAll()
	assert.Equal(t, []string{"c", "a", "b", "d"}, values)
}

func TestTopKFilterEmpty(t *testing.T) {
	a := NewTopKFilter[int, float64](0)
	a.Push(1, 1)
	values, weights := a.PopAll()
	assert.Empty(t, values)
	assert.Empty(t, weights)
}
