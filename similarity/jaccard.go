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
	"github.com/fairrec/fairrec/dataset"
	"github.com/juju/errors"
)

// Jaccard is the share of items rated by both users among the items rated by
// either.
type Jaccard struct {
	ds *dataset.Dataset
}

func NewJaccard(ds *dataset.Dataset) *Jaccard {
	return &Jaccard{ds: ds}
}

func (j *Jaccard) Name() string {
	return NameJaccard
}

func (j *Jaccard) Similarity(a, b int) (float64, error) {
	if err := checkUsers(j.ds, a, b); err != nil {
		return 0, errors.Trace(err)
	}
	union := j.ds.UnionItems(a, b)
	if len(union) == 0 {
		return 0, nil
	}
	common := j.ds.CommonItems(a, b)
	return float64(len(common)) / float64(len(union)), nil
}
