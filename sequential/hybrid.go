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
	"github.com/fairrec/fairrec/group"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// HybridAggregation blends the average and least misery strategies by the
// disagreement the group showed over the last rounds:
//
//	score = (1 - d) * average + d * leastMisery
//
// d is the largest spread (max - min) of member satisfaction over the last
// Iterations rounds, and 0 until that many rounds have been logged.
type HybridAggregation struct {
	log          *group.Log
	average      group.Predictor
	leastMisery  group.Predictor
	satisfaction UserSatisfaction
	Iterations   int
}

func NewHybridAggregation(log *group.Log, average, leastMisery group.Predictor, satisfaction UserSatisfaction, iterations int) *HybridAggregation {
	return &HybridAggregation{
		log:          log,
		average:      average,
		leastMisery:  leastMisery,
		satisfaction: satisfaction,
		Iterations:   iterations,
	}
}

func (h *HybridAggregation) Predict(g group.Group, item int) (float64, error) {
	average, err := h.average.Predict(g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	leastMisery, err := h.leastMisery.Predict(g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	disagreement, err := h.Disagreement(g)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return (1-disagreement)*average + disagreement*leastMisery, nil
}

// Disagreement returns the interpolation weight for the next round of a group.
func (h *HybridAggregation) Disagreement(g group.Group) (float64, error) {
	history := h.log.History(g)
	if len(history) < h.Iterations {
		return 0, nil
	}
	disagreement := 0.0
	for _, round := range history[len(history)-h.Iterations:] {
		// nobody can be unhappy with an empty round
		if len(round) == 0 {
			continue
		}
		satisfactions, err := h.Satisfactions(g, round)
		if err != nil {
			return 0, errors.Trace(err)
		}
		disagreement = max(disagreement, lo.Max(satisfactions)-lo.Min(satisfactions))
	}
	return disagreement, nil
}

// Satisfactions returns the satisfaction of every member with items, in
// ascending member order.
func (h *HybridAggregation) Satisfactions(g group.Group, items []int) ([]float64, error) {
	members := g.Members()
	satisfactions := make([]float64, len(members))
	for i, member := range members {
		value, err := h.satisfaction.Satisfaction(member, items)
		if err != nil {
			return nil, errors.Trace(err)
		}
		satisfactions[i] = value
	}
	return satisfactions, nil
}
