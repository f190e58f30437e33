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

package similarity

import (
	"math"

	"github.com/fairrec/fairrec/dataset"
	"github.com/juju/errors"
)

// ITR combines the improved triangle similarity with the user rating
// preference similarity, both computed over the union of rated items with
// missing ratings taken as 0.
type ITR struct {
	ds *dataset.Dataset
}

func NewITR(ds *dataset.Dataset) *ITR {
	return &ITR{ds: ds}
}

func (s *ITR) Name() string {
	return NameITR
}

func (s *ITR) Similarity(a, b int) (float64, error) {
	if err := checkUsers(s.ds, a, b); err != nil {
		return 0, errors.Trace(err)
	}
	union := pairs(s.ds.UnionItems(a, b))
	if len(union) == 0 {
		return 0, nil
	}
	return Triangle(union) * URP(union), nil
}

// Triangle returns 1 - |a-b| / (|a|+|b|) for the two rating vectors.
func Triangle(union []dataset.RatingPair) float64 {
	var distance, normA, normB float64
	for _, pair := range union {
		distance += (pair.A - pair.B) * (pair.A - pair.B)
		normA += pair.A * pair.A
		normB += pair.B * pair.B
	}
	denominator := math.Sqrt(normA) + math.Sqrt(normB)
	if denominator == 0 {
		return 0
	}
	return 1 - math.Sqrt(distance)/denominator
}

// URP returns 1 - sigmoid(|mean(a)-mean(b)| * |std(a)-std(b)|).
func URP(union []dataset.RatingPair) float64 {
	ratingsA := make([]float64, 0, len(union))
	ratingsB := make([]float64, 0, len(union))
	for _, pair := range union {
		if pair.A != 0 {
			ratingsA = append(ratingsA, pair.A)
		}
		if pair.B != 0 {
			ratingsB = append(ratingsB, pair.B)
		}
	}
	meanA, stdA := preference(ratingsA, len(union))
	meanB, stdB := preference(ratingsB, len(union))
	argument := -math.Abs(meanA-meanB) * math.Abs(stdA-stdB)
	return 1 - 1/(1+math.Exp(argument))
}

// preference returns the mean of the ratings over the union size and the
// square root of the squared summed deviation over the rating count.
func preference(ratings []float64, unionSize int) (mean, std float64) {
	if len(ratings) == 0 {
		return 0, 0
	}
	for _, rating := range ratings {
		mean += rating
	}
	mean /= float64(unionSize)
	deviation := 0.0
	for _, rating := range ratings {
		deviation += rating - mean
	}
	std = math.Sqrt(deviation * deviation / float64(len(ratings)))
	return
}
