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
	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/recommend"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Recommender ranks items for a group with a single aggregation strategy.
// With ExcludePrevious set, items recommended to the same group before are
// skipped.
type Recommender struct {
	ds              *dataset.Dataset
	predictor       Predictor
	log             *Log
	ExcludePrevious bool
}

func NewRecommender(ds *dataset.Dataset, predictor Predictor, log *Log, excludePrevious bool) *Recommender {
	return &Recommender{ds: ds, predictor: predictor, log: log, ExcludePrevious: excludePrevious}
}

func (r *Recommender) Recommend(g Group, limit int) ([]recommend.Score, error) {
	candidates := r.ds.Items()
	if r.ExcludePrevious {
		candidates = r.log.Unrecommended(g)
	}
	scores := make([]recommend.Score, 0, len(candidates))
	for _, item := range candidates {
		score, err := r.predictor.Predict(g, item)
		if err != nil {
			return nil, errors.Trace(err)
		}
		scores = append(scores, recommend.Score{ItemId: item, Score: score})
	}
	top := recommend.Top(scores, limit)
	if r.ExcludePrevious {
		r.log.Record(g, lo.Map(top, func(s recommend.Score, _ int) int {
			return s.ItemId
		}))
	}
	return top, nil
}
