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
	"container/heap"

	"golang.org/x/exp/constraints"
)

type Elem[T any, W constraints.Ordered] struct {
	Value  T
	Weight W
	seq    int
}

// _heap is a min-heap whose root is the element to drop first: the lowest
// weight, and among equal weights the one pushed last.
type _heap[T any, W constraints.Ordered] []Elem[T, W]

func (h _heap[T, W]) Len() int { return len(h) }

func (h _heap[T, W]) Less(i, j int) bool {
	if h[i].Weight != h[j].Weight {
		return h[i].Weight < h[j].Weight
	}
	return h[i].seq > h[j].seq
}

func (h _heap[T, W]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *_heap[T, W]) Push(x any) { *h = append(*h, x.(Elem[T, W])) }

func (h *_heap[T, W]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopKFilter keeps the k elements with maximum weights. Ties are broken in
// favor of the element pushed first.
type TopKFilter[T any, W constraints.Ordered] struct {
	_heap[T, W]
	k     int
	count int
}

// NewTopKFilter creates a top k filter.
func NewTopKFilter[T any, W constraints.Ordered](k int) *TopKFilter[T, W] {
	return &TopKFilter[T, W]{k: k}
}

// Push adds an element in O(log k).
func (filter *TopKFilter[T, W]) Push(value T, weight W) {
	heap.Push(&filter._heap, Elem[T, W]{Value: value, Weight: weight, seq: filter.count})
	filter.count++
	if filter.Len() > filter.k {
		heap.Pop(&filter._heap)
	}
}

// PopAll empties the filter and returns its elements by decreasing weight.
func (filter *TopKFilter[T, W]) PopAll() ([]T, []W) {
	values := make([]T, filter.Len())
	weights := make([]W, filter.Len())
	for i := len(values) - 1; i >= 0; i-- {
		elem := heap.Pop(&filter._heap).(Elem[T, W])
		values[i], weights[i] = elem.Value, elem.Weight
	}
	return values, weights
}
