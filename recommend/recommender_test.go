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
	"testing"

	"github.com/fairrec/fairrec/dataset"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// predictions maps (user, item) to a fixed prediction.
type predictions map[[2]int]float64

func (p predictions) Predict(user, item int) (float64, error) {
	value, ok := p[[2]int{user, item}]
	if !ok {
		return 0, errors.NotFoundf("prediction (%d, %d)", user, item)
	}
	return value, nil
}

func TestRecommender(t *testing.T) {
	ds := dataset.New([]dataset.Rating{
		{UserId: 0, ItemId: 3, Value: 4},
		{UserId: 1, ItemId: 1, Value: 1}, {UserId: 1, ItemId: 2, Value: 1}, {UserId: 1, ItemId: 4, Value: 1},
	})
	predictor := predictions{{0, 1}: 1, {0, 2}: 5, {0, 4}: 5}
	recommender := NewRecommender(ds, predictor)

	scores, err := recommender.Recommend(0, 2)
	assert.NoError(t, err)
	assert.Equal(t, []Score{{2, 5}, {4, 5}}, scores)

	scores, err = recommender.Recommend(0, 10)
	assert.NoError(t, err)
	assert.Equal(t, []Score{{2, 5}, {4, 5}, {1, 1}}, scores)

	_, err = recommender.Recommend(42, 10)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestRecommenderPredictionError(t *testing.T) {
	ds := dataset.New([]dataset.Rating{{UserId: 0, ItemId: 3, Value: 4}, {UserId: 1, ItemId: 1, Value: 1}})
	_, err := NewRecommender(ds, predictions{}).Recommend(0, 10)
	assert.Error(t, err)
}

func TestRecommenderWithFilter(t *testing.T) {
	ds := dataset.New([]dataset.Rating{
		{UserId: 0, ItemId: 3, Value: 4},
		{UserId: 1, ItemId: 1, Value: 1}, {UserId: 1, ItemId: 2, Value: 1}, {UserId: 1, ItemId: 4, Value: 1},
	})
	predictor := predictions{{0, 1}: 1, {0, 2}: 5, {0, 4}: 4}
	filter, err := NewFilter("score >= 3 && item != 4")
	require.NoError(t, err)
	assert.Equal(t, "score >= 3 && item != 4", filter.String())
	scores, err := NewRecommender(ds, predictor).WithFilter(filter).Recommend(0, 10)
	assert.NoError(t, err)
	assert.Equal(t, []Score{{2, 5}}, scores)
}

func TestNewFilter(t *testing.T) {
	_, err := NewFilter("score + 1")
	assert.True(t, errors.Is(err, errors.NotValid))
	_, err = NewFilter("unknown > 1")
	assert.Error(t, err)
}

func TestTop(t *testing.T) {
	scores := []Score{{1, 3}, {2, 4}, {3, 3}, {4, 5}}
	assert.Equal(t, []Score{{4, 5}, {2, 4}, {1, 3}}, Top(scores, 3))
	assert.Len(t, Top([]Score{{1, 1}}, -1), 1)
}

func TestEvaluator(t *testing.T) {
	ds := dataset.New([]dataset.Rating{
		{UserId: 1, ItemId: 2, Value: 2}, {UserId: 1, ItemId: 1, Value: 4},
		{UserId: 2, ItemId: 3, Value: 5},
	})
	a := predictions{{1, 1}: 3.5, {1, 2}: 3}
	b := predictions{{1, 1}: 5, {1, 2}: 2}
	evaluator := NewEvaluator(ds, 2, NamedPredictor{"a", a}, NamedPredictor{"b", b})
	assert.Equal(t, []string{"a", "b"}, evaluator.Names())

	comparison, err := evaluator.Compare(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []dataset.ItemRating{{ItemId: 1, Value: 4}, {ItemId: 2, Value: 2}}, comparison.Items)
	assert.Equal(t, []ItemPrediction{{1, 3.5, 4}, {2, 3, 2}}, comparison.Evaluations["a"].Predictions)
	assert.Equal(t, 0.75, comparison.Evaluations["a"].MeanAbsoluteError())
	assert.Equal(t, 0.5, comparison.Evaluations["b"].MeanAbsoluteError())

	best, err := comparison.Best(1)
	assert.NoError(t, err)
	assert.Equal(t, "a", best)
	best, err = comparison.Best(2)
	assert.NoError(t, err)
	assert.Equal(t, "b", best)
	_, err = comparison.Best(3)
	assert.True(t, errors.Is(err, errors.NotFound))
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, comparison.Scores())

	_, err = evaluator.Compare(context.Background(), 42)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestEvaluatorTieGoesToFirst(t *testing.T) {
	ds := dataset.New([]dataset.Rating{{UserId: 1, ItemId: 1, Value: 4}})
	same := predictions{{1, 1}: 3}
	comparison, err := NewEvaluator(ds, 1, NamedPredictor{"x", same}, NamedPredictor{"y", same}).
		Compare(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1, "y": 0}, comparison.Scores())
}

func TestEvaluator_AllPredictions(t *testing.T) {
	ds := dataset.New([]dataset.Rating{{UserId: 1, ItemId: 1, Value: 4}, {UserId: 2, ItemId: 2, Value: 3}})
	predictor := predictions{{1, 1}: 4, {1, 2}: 2, {2, 1}: 1, {2, 2}: 3}
	all, err := NewEvaluator(ds, 2).AllPredictions(context.Background(), predictor)
	assert.NoError(t, err)
	assert.Equal(t, map[int][]Score{
		1: {{1, 4}, {2, 2}},
		2: {{1, 1}, {2, 3}},
	}, all)
	assert.Zero(t, ItemPrediction{}.AbsoluteError())
	assert.Zero(t, Evaluation{}.MeanAbsoluteError())
}
