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

package dataset

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestDataset_AverageRating(t *testing.T) {
	ds := New([]Rating{
		{1, 1, 5}, {1, 2, 4}, {1, 3, 3},
		{2, 1, 1}, {2, 2, 2},
	})
	mean, err := ds.AverageRating(1)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, mean)
	mean, err = ds.AverageRating(2)
	assert.NoError(t, err)
	assert.InDelta(t, 1.5, mean, 1e-9)
	_, err = ds.AverageRating(3)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestDataset_CommonItems(t *testing.T) {
	ds := New([]Rating{
		{1, 1, 5}, {1, 2, 4},
		{2, 1, 1}, {2, 3, 1},
	})
	assert.Equal(t, map[int]RatingPair{1: {5, 1}}, ds.CommonItems(1, 2))
	assert.Empty(t, ds.CommonItems(1, 42))
}

func TestDataset_UnionItems(t *testing.T) {
	ds := New([]Rating{
		{1, 1, 5}, {1, 2, 4}, {1, 4, 1},
		{2, 1, 1}, {2, 3, 3}, {2, 4, 1},
	})
	assert.Equal(t, map[int]RatingPair{
		1: {5, 1},
		2: {4, 0},
		3: {0, 3},
		4: {1, 1},
	}, ds.UnionItems(1, 2))
}

func TestDataset_RatersOf(t *testing.T) {
	ds := New([]Rating{
		{1, 1, 5}, {1, 2, 5},
		{2, 1, 1},
	})
	assert.Empty(t, ds.RatersOf(0))
	assert.Equal(t, []UserRating{{1, 5}}, ds.RatersOf(2))
	assert.Equal(t, []UserRating{{1, 5}, {2, 1}}, ds.RatersOf(1))
}

func TestDataset_RatingsOf(t *testing.T) {
	ds := New([]Rating{{1, 3, 2}, {1, 1, 5}, {1, 2, 4}})
	assert.Equal(t, []ItemRating{{1, 5}, {2, 4}, {3, 2}}, ds.RatingsOf(1))
	assert.Empty(t, ds.RatingsOf(2))
}

func TestDataset_UnratedItems(t *testing.T) {
	ds := New([]Rating{
		{1, 1, 5}, {1, 2, 5}, {1, 3, 5},
		{2, 1, 1},
	})
	assert.Equal(t, []int{2, 3}, ds.UnratedItems(2))
	assert.Empty(t, ds.UnratedItems(1))
	assert.Equal(t, []int{1, 2, 3}, ds.UnratedItems(42))
}

func TestDataset_UsersAndItems(t *testing.T) {
	ds := New([]Rating{{2, 7, 1}, {1, 2, 5}, {1, 7, 5}})
	assert.Equal(t, []int{1, 2}, ds.Users())
	assert.Equal(t, []int{2, 7}, ds.Items())
	assert.True(t, ds.HasUser(2))
	assert.False(t, ds.HasUser(3))
	assert.True(t, ds.HasItem(7))
	assert.False(t, ds.HasItem(1))
}

func TestDataset_Rows(t *testing.T) {
	ds := New([]Rating{{1, 1, 5}, {1, 2, 5}, {2, 1, 1}})
	assert.Equal(t, 3, ds.Count())
	assert.Equal(t, []Rating{{1, 1, 5}, {1, 2, 5}}, ds.First(2))
	assert.Len(t, ds.First(10), 3)
	assert.Empty(t, ds.First(-1))
}

func TestDataset_Rating(t *testing.T) {
	ds := New([]Rating{{1, 1, 5}, {2, 1, 1}})
	assert.Equal(t, 5.0, ds.Rating(1, 1))
	assert.Equal(t, 1.0, ds.Rating(2, 1))
	assert.Equal(t, 0.0, ds.Rating(1, 3))
	assert.Equal(t, 0.0, ds.Rating(3, 1))
}

func TestDataset_Duplicates(t *testing.T) {
	ds := New([]Rating{{1, 1, 5}, {1, 1, 3}})
	assert.Equal(t, 3.0, ds.Rating(1, 1))
	mean, err := ds.AverageRating(1)
	assert.NoError(t, err)
	assert.Equal(t, 3.0, mean)
	assert.Len(t, ds.RatersOf(1), 2)
}
