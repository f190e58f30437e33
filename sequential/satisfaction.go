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

package sequential

import (
	"sync"

	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/group"
	"github.com/fairrec/fairrec/prediction"
	"github.com/fairrec/fairrec/recommend"
	"github.com/juju/errors"
)

// IndividualRecommender produces the personal top-N list of a user.
type IndividualRecommender interface {
	Recommend(user, limit int) ([]recommend.Score, error)
}

// UserSatisfaction measures how happy a user is with a list of items.
type UserSatisfaction interface {
	Satisfaction(user int, items []int) (float64, error)
}

// Satisfaction compares the relevance of a group list for a user with the
// user's own top-N list of the same size:
//
//	sat(u, L) = sum(r(u,i) for i in L) / sum(score of personal top-N)
//
// The personal list is computed the first time a user is seen and reused
// afterwards, whatever the size of later lists.
type Satisfaction struct {
	ds          *dataset.Dataset
	recommender IndividualRecommender
	predictor   prediction.Predictor

	mu        sync.Mutex
	baselines map[int][]recommend.Score
}

func NewSatisfaction(ds *dataset.Dataset, recommender IndividualRecommender, predictor prediction.Predictor) *Satisfaction {
	return &Satisfaction{
		ds:          ds,
		recommender: recommender,
		predictor:   predictor,
		baselines:   make(map[int][]recommend.Score),
	}
}

func (s *Satisfaction) Satisfaction(user int, items []int) (float64, error) {
	groupSum := 0.0
	for _, item := range items {
		value, err := group.Relevance(s.ds, s.predictor, user, item)
		if err != nil {
			return 0, errors.Trace(err)
		}
		groupSum += value
	}
	baseline, err := s.Baseline(user, len(items))
	if err != nil {
		return 0, errors.Trace(err)
	}
	userSum := 0.0
	for _, score := range baseline {
		userSum += score.Score
	}
	if userSum == 0 {
		return 0, errors.NotValidf("empty personal recommendation of user %d", user)
	}
	return groupSum / userSum, nil
}

// Baseline returns the cached personal list of a user, computing it with limit
// on first use. Empty lists are not cached.
func (s *Satisfaction) Baseline(user, limit int) ([]recommend.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if baseline, ok := s.baselines[user]; ok {
		return baseline, nil
	}
	baseline, err := s.recommender.Recommend(user, limit)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(baseline) > 0 {
		s.baselines[user] = baseline
	}
	return baseline, nil
}
