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
	"math"

	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/prediction"
	"github.com/juju/errors"
)

// Disagreement measures how much the members of a group disagree on an item.
type Disagreement interface {
	Disagreement(g Group, item int) (float64, error)
}

// AveragePairwiseDisagreement is the mean absolute difference of relevance
// over every unordered pair of members:
//
//	2 * sum(|r(a,i) - r(b,i)|) / (n * (n - 1))
type AveragePairwiseDisagreement struct {
	ds        *dataset.Dataset
	predictor prediction.Predictor
}

func NewAveragePairwiseDisagreement(ds *dataset.Dataset, predictor prediction.Predictor) *AveragePairwiseDisagreement {
	return &AveragePairwiseDisagreement{ds: ds, predictor: predictor}
}

func (d *AveragePairwiseDisagreement) Disagreement(g Group, item int) (float64, error) {
	members := g.Members()
	n := len(members)
	if n < 2 {
		return 0, errors.NotValidf("group %v of size %d", g, n)
	}
	values, err := relevances(d.ds, d.predictor, g, item)
	if err != nil {
		return 0, errors.Trace(err)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += math.Abs(values[i] - values[j])
		}
	}
	return 2 * sum / float64(n*(n-1)), nil
}
