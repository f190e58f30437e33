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

package similarity

import (
	"strconv"
	"sync"

	"github.com/juju/errors"
	"golang.org/x/sync/singleflight"
)

type pair struct {
	a int
	b int
}

// Cached memoizes another similarity. A pair is looked up in both orders so
// the wrapped similarity runs at most once per unordered pair. Concurrent
// misses on the same pair share one computation while other pairs proceed.
// Entries are never evicted.
type Cached struct {
	similarity Similarity
	flights    singleflight.Group
	mu         sync.RWMutex
	values     map[pair]float64
}

func NewCached(similarity Similarity) *Cached {
	return &Cached{
		similarity: similarity,
		values:     make(map[pair]float64),
	}
}

func (c *Cached) Name() string {
	return c.similarity.Name()
}

func (c *Cached) Similarity(a, b int) (float64, error) {
	if value, ok := c.lookup(a, b); ok {
		CacheHitTotal.WithLabelValues(c.Name()).Inc()
		return value, nil
	}
	value, err, _ := c.flights.Do(flightKey(a, b), func() (any, error) {
		// an earlier flight may have filled the entry
		if value, ok := c.lookup(a, b); ok {
			CacheHitTotal.WithLabelValues(c.Name()).Inc()
			return value, nil
		}
		CacheMissTotal.WithLabelValues(c.Name()).Inc()
		value, err := c.similarity.Similarity(a, b)
		if err != nil {
			return nil, errors.Trace(err)
		}
		c.mu.Lock()
		c.values[pair{a, b}] = value
		c.mu.Unlock()
		return value, nil
	})
	if err != nil {
		return 0, errors.Trace(err)
	}
	return value.(float64), nil
}

func flightKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return strconv.Itoa(a) + ":" + strconv.Itoa(b)
}

// Len returns the number of memoized pairs.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}

func (c *Cached) lookup(a, b int) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if value, ok := c.values[pair{a, b}]; ok {
		return value, true
	}
	value, ok := c.values[pair{b, a}]
	return value, ok
}
