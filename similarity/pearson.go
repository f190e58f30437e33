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

// Pearson is the Pearson correlation over the items two users rated in
// common. Each user is centered on the mean of their full profile.
type Pearson struct {
	ds *dataset.Dataset
}

func NewPearson(ds *dataset.Dataset) *Pearson {
	return &Pearson{ds: ds}
}

func (p *Pearson) Name() string {
	return NamePearson
}

func (p *Pearson) Similarity(a, b int) (float64, error) {
	if a == b {
		return 1, nil
	}
	meanA, err := p.ds.AverageRating(a)
	if err != nil {
		return 0, errors.Trace(err)
	}
	meanB, err := p.ds.AverageRating(b)
	if err != nil {
		return 0, errors.Trace(err)
	}
	var numerator, squaresA, squaresB float64
	for _, pair := range pairs(p.ds.CommonItems(a, b)) {
		devA, devB := pair.A-meanA, pair.B-meanB
		numerator += devA * devB
		squaresA += devA * devA
		squaresB += devB * devB
	}
	if squaresA == 0 || squaresB == 0 {
		return 0, nil
	}
	return numerator / math.Sqrt(squaresA*squaresB), nil
}
