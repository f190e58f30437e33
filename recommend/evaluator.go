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
	"context"
	"math"
	"sort"

	"github.com/fairrec/fairrec/common/parallel"
	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/prediction"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// NamedPredictor is a predictor under evaluation.
type NamedPredictor struct {
	Name      string
	Predictor prediction.Predictor
}

// ItemPrediction is the prediction for an item the user actually rated.
type ItemPrediction struct {
	ItemId     int
	Prediction float64
	Actual     float64
}

func (p ItemPrediction) AbsoluteError() float64 {
	return math.Abs(p.Actual - p.Prediction)
}

// Evaluation holds the predictions of one predictor for every item rated by a
// user, in ascending item order.
type Evaluation struct {
	Predictions []ItemPrediction
}

func (e Evaluation) MeanAbsoluteError() float64 {
	if len(e.Predictions) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range e.Predictions {
		sum += p.AbsoluteError()
	}
	return sum / float64(len(e.Predictions))
}

// Comparison is the result of evaluating several predictors on one user.
type Comparison struct {
	User        int
	Names       []string
	Items       []dataset.ItemRating
	Evaluations map[string]Evaluation
}

// Best returns the predictor with the lowest absolute error on item. Ties go
// to the predictor registered first.
func (c *Comparison) Best(item int) (string, error) {
	i := sort.Search(len(c.Items), func(i int) bool {
		return c.Items[i].ItemId >= item
	})
	if i == len(c.Items) || c.Items[i].ItemId != item {
		return "", errors.NotFoundf("item %d rated by user %d", item, c.User)
	}
	return c.best(i), nil
}

func (c *Comparison) best(i int) string {
	best, bestError := "", math.Inf(1)
	for _, name := range c.Names {
		if e := c.Evaluations[name].Predictions[i].AbsoluteError(); e < bestError {
			best, bestError = name, e
		}
	}
	return best
}

// Scores counts the items on which each predictor was the best.
func (c *Comparison) Scores() map[string]int {
	scores := lo.SliceToMap(c.Names, func(name string) (string, int) {
		return name, 0
	})
	for i := range c.Items {
		scores[c.best(i)]++
	}
	return scores
}

// Evaluator compares predictors against the ratings users actually gave.
type Evaluator struct {
	ds         *dataset.Dataset
	predictors []NamedPredictor
	jobs       int
}

func NewEvaluator(ds *dataset.Dataset, jobs int, predictors ...NamedPredictor) *Evaluator {
	return &Evaluator{ds: ds, predictors: predictors, jobs: jobs}
}

func (e *Evaluator) Names() []string {
	return lo.Map(e.predictors, func(p NamedPredictor, _ int) string {
		return p.Name
	})
}

// Compare predicts every item rated by user with every predictor.
func (e *Evaluator) Compare(ctx context.Context, user int) (*Comparison, error) {
	if !e.ds.HasUser(user) {
		return nil, errors.NotFoundf("user %d", user)
	}
	items := e.ds.RatingsOf(user)
	evaluations := make([]Evaluation, len(e.predictors))
	err := parallel.Parallel(ctx, len(e.predictors), e.jobs, func(_, i int) error {
		predictions := make([]ItemPrediction, len(items))
		for j, rating := range items {
			value, err := e.predictors[i].Predictor.Predict(user, rating.ItemId)
			if err != nil {
				return errors.Trace(err)
			}
			predictions[j] = ItemPrediction{ItemId: rating.ItemId, Prediction: value, Actual: rating.Value}
		}
		evaluations[i] = Evaluation{Predictions: predictions}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	comparison := &Comparison{
		User:        user,
		Names:       e.Names(),
		Items:       items,
		Evaluations: make(map[string]Evaluation, len(e.predictors)),
	}
	for i, p := range e.predictors {
		comparison.Evaluations[p.Name] = evaluations[i]
	}
	return comparison, nil
}

// AllPredictions predicts every item for every user.
func (e *Evaluator) AllPredictions(ctx context.Context, predictor prediction.Predictor) (map[int][]Score, error) {
	users, items := e.ds.Users(), e.ds.Items()
	rows := make([][]Score, len(users))
	err := parallel.Parallel(ctx, len(users), e.jobs, func(_, i int) error {
		row := make([]Score, len(items))
		for j, item := range items {
			value, err := predictor.Predict(users[i], item)
			if err != nil {
				return errors.Trace(err)
			}
			row[j] = Score{ItemId: item, Score: value}
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	result := make(map[int][]Score, len(users))
	for i, user := range users {
		result[user] = rows[i]
	}
	return result, nil
}
