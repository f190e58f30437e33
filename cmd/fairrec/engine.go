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

package main

import (
	"github.com/fairrec/fairrec/config"
	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/group"
	"github.com/fairrec/fairrec/prediction"
	"github.com/fairrec/fairrec/recommend"
	"github.com/fairrec/fairrec/sequential"
	"github.com/fairrec/fairrec/similarity"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// evaluatedSimilarities are compared by the evaluate and export commands.
var evaluatedSimilarities = []string{similarity.NamePearson, similarity.NameITR, similarity.NameJaccard}

// engine wires the configured components over one dataset.
type engine struct {
	conf      *config.Config
	ds        *dataset.Dataset
	sim       similarity.Similarity
	predictor *prediction.MeanCentered
	rounds    *group.Log
}

func newEngine(conf *config.Config, progress bool) (*engine, error) {
	ds, err := dataset.LoadCSV(conf.Dataset.Path, dataset.LoadOptions{
		Separator: conf.Dataset.Separator,
		Header:    conf.Dataset.Header,
		Progress:  progress,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	sim, err := similarity.New(conf.Similarity.Function, ds)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &engine{
		conf:      conf,
		ds:        ds,
		sim:       sim,
		predictor: prediction.NewMeanCentered(ds, sim, conf.Prediction.NeighborCount, conf.Prediction.UseAbsoluteValue),
		rounds:    group.NewLog(ds),
	}, nil
}

func (e *engine) stats() *similarity.Stats {
	return similarity.NewStats(e.ds, e.sim)
}

func (e *engine) recommender() *recommend.Recommender {
	return recommend.NewRecommender(e.ds, e.predictor)
}

func (e *engine) evaluator() (*recommend.Evaluator, error) {
	predictors := make([]recommend.NamedPredictor, 0, len(evaluatedSimilarities))
	for _, name := range evaluatedSimilarities {
		sim, err := similarity.New(name, e.ds)
		if err != nil {
			return nil, errors.Trace(err)
		}
		predictors = append(predictors, recommend.NamedPredictor{
			Name:      name,
			Predictor: prediction.NewMeanCentered(e.ds, sim, e.conf.Prediction.NeighborCount, e.conf.Prediction.UseAbsoluteValue),
		})
	}
	return recommend.NewEvaluator(e.ds, e.conf.Jobs, predictors...), nil
}

func (e *engine) disagreement() *group.AveragePairwiseDisagreement {
	return group.NewAveragePairwiseDisagreement(e.ds, e.predictor)
}

func (e *engine) aggregation(strategy string) (group.Predictor, error) {
	switch strategy {
	case group.NameAverage:
		return group.NewAverage(e.ds, e.predictor), nil
	case group.NameLeastMisery:
		return group.NewLeastMisery(e.ds, e.predictor), nil
	case group.NameConsensus:
		return group.NewConsensusWeighted(group.NewAverage(e.ds, e.predictor), e.disagreement(),
			e.conf.Group.WeightPrediction(), e.conf.Group.ConsensusWeightDisagreement), nil
	}
	return nil, errors.NotSupportedf("aggregation strategy %s", strategy)
}

func (e *engine) hybrid() *sequential.HybridAggregation {
	satisfaction := sequential.NewSatisfaction(e.ds, e.recommender(), e.predictor)
	return sequential.NewHybridAggregation(e.rounds,
		group.NewAverage(e.ds, e.predictor),
		group.NewLeastMisery(e.ds, e.predictor),
		satisfaction,
		e.conf.Sequential.IterationsToConsider)
}

// parseGroup checks that every member exists and that the group is large enough.
func (e *engine) parseGroup(args []string) (group.Group, error) {
	ids, err := parseIds(args)
	if err != nil {
		return nil, errors.Trace(err)
	}
	for _, id := range ids {
		if !e.ds.HasUser(id) {
			return nil, errors.NotFoundf("user %d", id)
		}
	}
	g := group.Group(ids)
	if n := len(lo.Uniq(ids)); n < e.conf.Group.GroupSize {
		return nil, errors.NotValidf("group %v of %d distinct members, at least %d required", g, n, e.conf.Group.GroupSize)
	}
	return g, nil
}
