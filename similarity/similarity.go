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
	"sort"

	"github.com/fairrec/fairrec/dataset"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

const (
	NamePearson = "pearson"
	NameJaccard = "jaccard"
	NameITR     = "itr"
)

// Similarity measures how alike two users rate. Every implementation is
// symmetric.
type Similarity interface {
	Similarity(a, b int) (float64, error)
	Name() string
}

// New creates a cached similarity by name.
func New(name string, ds *dataset.Dataset) (Similarity, error) {
	switch name {
	case NamePearson:
		return NewCached(NewPearson(ds)), nil
	case NameJaccard:
		return NewCached(NewJaccard(ds)), nil
	case NameITR:
		return NewCached(NewITR(ds)), nil
	default:
		return nil, errors.NotSupportedf("similarity %q", name)
	}
}

func checkUsers(ds *dataset.Dataset, users ...int) error {
	for _, user := range users {
		if !ds.HasUser(user) {
			return errors.NotFoundf("user %d", user)
		}
	}
	return nil
}

// pairs flattens rating pairs in item order so that sums are reproducible.
func pairs(items map[int]dataset.RatingPair) []dataset.RatingPair {
	keys := lo.Keys(items)
	sort.Ints(keys)
	return lo.Map(keys, func(item int, _ int) dataset.RatingPair {
		return items[item]
	})
}
