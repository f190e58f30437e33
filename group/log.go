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

package group

import (
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fairrec/fairrec/dataset"
	"github.com/samber/lo"
)

// Log remembers the items recommended to each group, round by round. Rounds
// are kept for the lifetime of the log.
type Log struct {
	ds     *dataset.Dataset
	mu     sync.RWMutex
	rounds map[Key][]mapset.Set[int]
}

func NewLog(ds *dataset.Dataset) *Log {
	return &Log{
		ds:     ds,
		rounds: make(map[Key][]mapset.Set[int]),
	}
}

// Record appends a round of recommended items for a group.
func (l *Log) Record(g Group, items []int) {
	key := g.Key()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rounds[key] = append(l.rounds[key], mapset.NewThreadUnsafeSet(items...))
}

// Rounds returns the number of rounds recorded for a group.
func (l *Log) Rounds(g Group) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rounds[g.Key()])
}

// History returns the rounds of a group in the order they were recorded. Items
// of a round are sorted in ascending order.
func (l *Log) History(g Group) [][]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return lo.Map(l.rounds[g.Key()], func(round mapset.Set[int], _ int) []int {
		items := round.ToSlice()
		sort.Ints(items)
		return items
	})
}

// Unrecommended returns, in ascending order, the items never recommended to a
// group.
func (l *Log) Unrecommended(g Group) []int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rounds := l.rounds[g.Key()]
	return lo.Filter(l.ds.Items(), func(item int, _ int) bool {
		for _, round := range rounds {
			if round.Contains(item) {
				return false
			}
		}
		return true
	})
}
