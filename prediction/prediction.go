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

package prediction

import (
	"math"
	"sort"
	"sync"

	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/similarity"
	"github.com/juju/errors"
)

// AllNeighbors makes MeanCentered use every user who rated the item.
const AllNeighbors = -1

// Predictor estimates the rating a user would give to an item.
type Predictor interface {
	Predict(user, item int) (float64, error)
}

type key struct {
	user int
	item int
}

type neighbor struct {
	rating     float64
	similarity float64
	mean       float64
}

// MeanCentered predicts a rating as the user mean plus the similarity weighted
// deviations of the neighbors from their own means:
//
//	r(u,i) = mean(u) + sum(sim(u,v) * (r(v,i) - mean(v))) / sum(w(u,v))
//
// w is |sim| when UseAbsoluteValue is set and sim otherwise. A zero
// denominator falls back to mean(u).
type MeanCentered struct {
	ds               *dataset.Dataset
	similarity       similarity.Similarity
	neighbors        int
	useAbsoluteValue bool

	mu          sync.Mutex
	predictions map[key]float64
}

// NewMeanCentered creates a predictor. neighbors is the number of most similar
// users to consider or AllNeighbors.
func NewMeanCentered(ds *dataset.Dataset, sim similarity.Similarity, neighbors int, useAbsoluteValue bool) *MeanCentered {
	return &MeanCentered{
		ds:               ds,
		similarity:       sim,
		neighbors:        neighbors,
		useAbsoluteValue: useAbsoluteValue,
		predictions:      make(map[key]float64),
	}
}

func (p *MeanCentered) Predict(user, item int) (float64, error) {
	p.mu.Lock()
	prediction, ok := p.predictions[key{user, item}]
	p.mu.Unlock()
	if ok {
		MemoHitTotal.Inc()
		return prediction, nil
	}
	MemoMissTotal.Inc()

	userMean, err := p.ds.AverageRating(user)
	if err != nil {
		return 0, errors.Trace(err)
	}
	if !p.ds.HasItem(item) {
		return 0, errors.NotFoundf("item %d", item)
	}
	neighbors, err := p.neighborsOf(user, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	var numerator, denominator float64
	for _, n := range neighbors {
		numerator += n.similarity * (n.rating - n.mean)
		if p.useAbsoluteValue {
			denominator += math.Abs(n.similarity)
		} else {
			denominator += n.similarity
		}
	}
	prediction = userMean
	if denominator != 0 {
		prediction += numerator / denominator
	}

	p.mu.Lock()
	p.predictions[key{user, item}] = prediction
	p.mu.Unlock()
	return prediction, nil
}

// neighborsOf returns the users whose ratings of item contribute to a
// prediction. In bounded mode the most similar users are picked before
// dropping those who did not rate the item, so fewer than the requested
// number may remain.
func (p *MeanCentered) neighborsOf(user, item int) ([]neighbor, error) {
	if p.neighbors == AllNeighbors {
		raters := p.ds.RatersOf(item)
		neighbors := make([]neighbor, 0, len(raters))
		for _, rater := range raters {
			n, err := p.neighbor(user, rater.UserId, rater.Value)
			if err != nil {
				return nil, errors.Trace(err)
			}
			neighbors = append(neighbors, n)
		}
		return neighbors, nil
	}

	type candidate struct {
		user       int
		similarity float64
	}
	candidates := make([]candidate, 0, len(p.ds.Users()))
	for _, other := range p.ds.Users() {
		if other == user {
			continue
		}
		value, err := p.similarity.Similarity(user, other)
		if err != nil {
			return nil, errors.Trace(err)
		}
		candidates = append(candidates, candidate{user: other, similarity: value})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})
	if p.neighbors < len(candidates) {
		candidates = candidates[:max(p.neighbors, 0)]
	}
	neighbors := make([]neighbor, 0, len(candidates))
	for _, c := range candidates {
		rating := p.ds.Rating(c.user, item)
		if rating == 0 {
			continue
		}
		mean, err := p.ds.AverageRating(c.user)
		if err != nil {
			return nil, errors.Trace(err)
		}
		neighbors = append(neighbors, neighbor{rating: rating, similarity: c.similarity, mean: mean})
	}
	return neighbors, nil
}

func (p *MeanCentered) neighbor(user, other int, rating float64) (neighbor, error) {
	value, err := p.similarity.Similarity(user, other)
	if err != nil {
		return neighbor{}, errors.Trace(err)
	}
	mean, err := p.ds.AverageRating(other)
	if err != nil {
		return neighbor{}, errors.Trace(err)
	}
	return neighbor{rating: rating, similarity: value, mean: mean}, nil
}
