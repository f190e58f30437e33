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

package recommend

import (
	"github.com/fairrec/fairrec/common/heap"
	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/prediction"
	"github.com/juju/errors"
)

// Score is a candidate item and its predicted rating.
type Score struct {
	ItemId int
	Score  float64
}

// Top returns at most limit scores in descending order. Equal scores keep
// their relative order. A negative limit keeps all.
func Top(scores []Score, limit int) []Score {
	if limit < 0 || limit > len(scores) {
		limit = len(scores)
	}
	filter := heap.NewTopKFilter[int, float64](limit)
	for _, s := range scores {
		filter.Push(s.ItemId, s.Score)
	}
	items, values := filter.PopAll()
	top := make([]Score, len(items))
	for i := range items {
		top[i] = Score{ItemId: items[i], Score: values[i]}
	}
	return top
}

// Recommender ranks the items a user has not rated yet.
type Recommender struct {
	ds        *dataset.Dataset
	predictor prediction.Predictor
	filter    *Filter
}

func NewRecommender(ds *dataset.Dataset, predictor prediction.Predictor) *Recommender {
	return &Recommender{ds: ds, predictor: predictor}
}

// WithFilter returns a recommender that only keeps candidates accepted by filter.
func (r *Recommender) WithFilter(filter *Filter) *Recommender {
	return &Recommender{ds: r.ds, predictor: r.predictor, filter: filter}
}

// Recommend returns at most limit unrated items with the highest predictions.
func (r *Recommender) Recommend(user, limit int) ([]Score, error) {
	if !r.ds.HasUser(user) {
		return nil, errors.NotFoundf("user %d", user)
	}
	candidates := r.ds.UnratedItems(user)
	scores := make([]Score, 0, len(candidates))
	for _, item := range candidates {
		score, err := r.predictor.Predict(user, item)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if r.filter != nil {
			ok, err := r.filter.Accept(user, item, score)
			if err != nil {
				return nil, errors.Trace(err)
			}
			if !ok {
				continue
			}
		}
		scores = append(scores, Score{ItemId: item, Score: score})
	}
	return Top(scores, limit), nil
}
