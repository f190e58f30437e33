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
	"context"
	"sort"

	"github.com/fairrec/fairrec/common/parallel"
	"github.com/fairrec/fairrec/dataset"
	"github.com/juju/errors"
)

// Neighbor is another user and its similarity to a target user.
type Neighbor struct {
	UserId     int
	Similarity float64
}

// Entry is a cell of the user similarity matrix.
type Entry struct {
	A          int
	B          int
	Similarity float64
}

// Stats answers questions about the whole user population.
type Stats struct {
	ds         *dataset.Dataset
	similarity Similarity
}

func NewStats(ds *dataset.Dataset, similarity Similarity) *Stats {
	return &Stats{ds: ds, similarity: similarity}
}

// Neighbors returns every other user sorted by similarity in descending order.
// Users with equal similarity keep ascending id order.
func Neighbors(ds *dataset.Dataset, similarity Similarity, user int) ([]Neighbor, error) {
	neighbors := make([]Neighbor, 0, len(ds.Users()))
	for _, other := range ds.Users() {
		if other == user {
			continue
		}
		value, err := similarity.Similarity(user, other)
		if err != nil {
			return nil, errors.Trace(err)
		}
		neighbors = append(neighbors, Neighbor{UserId: other, Similarity: value})
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	return neighbors, nil
}

// MostSimilar returns at most limit users most similar to user.
func (s *Stats) MostSimilar(user, limit int) ([]Neighbor, error) {
	neighbors, err := Neighbors(s.ds, s.similarity, user)
	if err != nil {
		return nil, errors.Trace(err)
	}
	if limit >= 0 && limit < len(neighbors) {
		neighbors = neighbors[:limit]
	}
	return neighbors, nil
}

// Matrix computes the similarity of every ordered pair of users. Rows are
// spread over jobs workers and the result is ordered by (A, B).
func (s *Stats) Matrix(ctx context.Context, jobs int) ([]Entry, error) {
	users := s.ds.Users()
	rows := make([][]Entry, len(users))
	err := parallel.Parallel(ctx, len(users), jobs, func(_, i int) error {
		row := make([]Entry, len(users))
		for j, other := range users {
			value, err := s.similarity.Similarity(users[i], other)
			if err != nil {
				return errors.Trace(err)
			}
			row[j] = Entry{A: users[i], B: other, Similarity: value}
		}
		rows[i] = row
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	matrix := make([]Entry, 0, len(users)*len(users))
	for _, row := range rows {
		matrix = append(matrix, row...)
	}
	return matrix, nil
}
