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
	"time"

	"github.com/fairrec/fairrec/base/log"
	"github.com/fairrec/fairrec/group"
	"github.com/fairrec/fairrec/recommend"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Recommender runs rounds of group recommendation. Every round skips the items
// of earlier rounds and is recorded in the log, which the predictor may read
// to adjust the next round. Rounds of the same group are serialized.
type Recommender struct {
	log       *group.Log
	predictor group.Predictor
	locks     sync.Map // group.Key -> *sync.Mutex
}

func NewRecommender(rounds *group.Log, predictor group.Predictor) *Recommender {
	return &Recommender{log: rounds, predictor: predictor}
}

func (r *Recommender) Recommend(g group.Group, limit int) ([]recommend.Score, error) {
	lock, _ := r.locks.LoadOrStore(g.Key(), new(sync.Mutex))
	lock.(*sync.Mutex).Lock()
	defer lock.(*sync.Mutex).Unlock()

	start := time.Now()
	candidates := r.log.Unrecommended(g)
	scores := make([]recommend.Score, 0, len(candidates))
	for _, item := range candidates {
		score, err := r.predictor.Predict(g, item)
		if err != nil {
			return nil, errors.Trace(err)
		}
		scores = append(scores, recommend.Score{ItemId: item, Score: score})
	}
	top := recommend.Top(scores, limit)
	r.log.Record(g, lo.Map(top, func(s recommend.Score, _ int) int {
		return s.ItemId
	}))
	RoundSeconds.Observe(time.Since(start).Seconds())
	RoundsTotal.Inc()
	log.Logger().Debug("complete recommendation round",
		zap.Stringer("group", g.Key()),
		zap.Int("round", r.log.Rounds(g)),
		zap.Int("n_candidates", len(candidates)),
		zap.Int("n_recommended", len(top)))
	return top, nil
}

// PreviousRounds returns the items recommended to a group, round by round.
func (r *Recommender) PreviousRounds(g group.Group) [][]int {
	return r.log.History(g)
}
