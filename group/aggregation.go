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
	"github.com/fairrec/fairrec/prediction"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

const (
	NameAverage     = "average"
	NameLeastMisery = "least-misery"
	NameConsensus   = "consensus"
)

// Predictor estimates how much a group would like an item.
type Predictor interface {
	Predict(g Group, item int) (float64, error)
}

// Relevance returns the rating of a user for an item, or the individual
// prediction when the user has not rated it.
func Relevance(ds *dataset.Dataset, predictor prediction.Predictor, user, item int) (float64, error) {
	if rating := ds.Rating(user, item); rating != 0 {
		return rating, nil
	}
	value, err := predictor.Predict(user, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return value, nil
}

func relevances(ds *dataset.Dataset, predictor prediction.Predictor, g Group, item int) ([]float64, error) {
	members := g.Members()
	if len(members) == 0 {
		return nil, errors.NotValidf("empty group")
	}
	values := make([]float64, len(members))
	for i, member := range members {
		value, err := Relevance(ds, predictor, member, item)
		if err != nil {
			return nil, errors.Trace(err)
		}
		values[i] = value
	}
	return values, nil
}

// Average is the mean relevance of the members.
type Average struct {
	ds        *dataset.Dataset
	predictor prediction.Predictor
}

func NewAverage(ds *dataset.Dataset, predictor prediction.Predictor) *Average {
	return &Average{ds: ds, predictor: predictor}
}

func (a *Average) Predict(g Group, item int) (float64, error) {
	values, err := relevances(a.ds, a.predictor, g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return lo.Mean(values), nil
}

// LeastMisery is the lowest relevance among the members.
type LeastMisery struct {
	ds        *dataset.Dataset
	predictor prediction.Predictor
}

func NewLeastMisery(ds *dataset.Dataset, predictor prediction.Predictor) *LeastMisery {
	return &LeastMisery{ds: ds, predictor: predictor}
}

func (l *LeastMisery) Predict(g Group, item int) (float64, error) {
	values, err := relevances(l.ds, l.predictor, g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return lo.Min(values), nil
}

// Consensus rewards items the members agree on:
//
//	WeightPrediction * average + WeightDisagreement * (1 - disagreement)
type Consensus struct {
	Prediction         Predictor
	Disagreement       Disagreement
	WeightPrediction   float64
	WeightDisagreement float64
}

// NewConsensus weights the prediction by 1 - weightDisagreement.
func NewConsensus(average Predictor, disagreement Disagreement, weightDisagreement float64) *Consensus {
	return NewConsensusWeighted(average, disagreement, 1-weightDisagreement, weightDisagreement)
}

func NewConsensusWeighted(average Predictor, disagreement Disagreement, weightPrediction, weightDisagreement float64) *Consensus {
	return &Consensus{
		Prediction:         average,
		Disagreement:       disagreement,
		WeightPrediction:   weightPrediction,
		WeightDisagreement: weightDisagreement,
	}
}

func (c *Consensus) Predict(g Group, item int) (float64, error) {
	score, err := c.Prediction.Predict(g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	disagreement, err := c.Disagreement.Disagreement(g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return c.WeightPrediction*score + c.WeightDisagreement*(1-disagreement), nil
}
