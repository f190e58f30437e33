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
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// Rating is a single (user, item, value) row of the rating feed.
type Rating struct {
	UserId int
	ItemId int
	Value  float64
}

type ItemRating struct {
	ItemId int
	Value  float64
}

type UserRating struct {
	UserId int
	Value  float64
}

// RatingPair holds the ratings of two users for the same item. A missing
// rating is 0.
type RatingPair struct {
	A float64
	B float64
}

// Dataset indexes a list of ratings by user and by item. It never changes
// after New returns, so it is safe for concurrent readers.
type Dataset struct {
	rows        []Rating
	userRatings map[int]map[int]float64
	itemRaters  map[int][]UserRating
	userMeans   map[int]float64
	users       []int
	items       []int
}

// New builds the index. When the same (user, item) pair appears more than once
// the last row wins in per-user lookups, while RatersOf keeps every row.
func New(rows []Rating) *Dataset {
	d := &Dataset{
		rows:        rows,
		userRatings: make(map[int]map[int]float64),
		itemRaters:  make(map[int][]UserRating),
		userMeans:   make(map[int]float64),
	}
	items := mapset.NewThreadUnsafeSet[int]()
	for _, row := range rows {
		ratings, exist := d.userRatings[row.UserId]
		if !exist {
			ratings = make(map[int]float64)
			d.userRatings[row.UserId] = ratings
		}
		ratings[row.ItemId] = row.Value
		d.itemRaters[row.ItemId] = append(d.itemRaters[row.ItemId], UserRating{UserId: row.UserId, Value: row.Value})
		items.Add(row.ItemId)
	}
	for user, ratings := range d.userRatings {
		sum := 0.0
		for _, value := range ratings {
			sum += value
		}
		d.userMeans[user] = sum / float64(len(ratings))
	}
	d.users = lo.Keys(d.userRatings)
	sort.Ints(d.users)
	d.items = items.ToSlice()
	sort.Ints(d.items)
	return d
}

// Count returns the number of rows.
func (d *Dataset) Count() int {
	return len(d.rows)
}

// Rows returns every row in input order.
func (d *Dataset) Rows() []Rating {
	return d.rows
}

// First returns at most n leading rows.
func (d *Dataset) First(n int) []Rating {
	return d.rows[:lo.Clamp(n, 0, len(d.rows))]
}

func (d *Dataset) HasUser(user int) bool {
	_, exist := d.userRatings[user]
	return exist
}

func (d *Dataset) HasItem(item int) bool {
	_, exist := d.itemRaters[item]
	return exist
}

// Users returns every user in ascending order.
func (d *Dataset) Users() []int {
	return d.users
}

// Items returns every item in ascending order.
func (d *Dataset) Items() []int {
	return d.items
}

// AverageRating returns the mean rating of a user.
func (d *Dataset) AverageRating(user int) (float64, error) {
	mean, exist := d.userMeans[user]
	if !exist {
		return 0, errors.NotFoundf("user %d", user)
	}
	return mean, nil
}

// Rating returns the rating of a user for an item, or 0 if there is none.
func (d *Dataset) Rating(user, item int) float64 {
	return d.userRatings[user][item]
}

// RatingsOf returns the ratings of a user sorted by item id.
func (d *Dataset) RatingsOf(user int) []ItemRating {
	ratings := d.userRatings[user]
	result := make([]ItemRating, 0, len(ratings))
	for item, value := range ratings {
		result = append(result, ItemRating{ItemId: item, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ItemId < result[j].ItemId
	})
	return result
}

// RatersOf returns the users who rated an item in input order.
func (d *Dataset) RatersOf(item int) []UserRating {
	return d.itemRaters[item]
}

// CommonItems returns the items rated by both users.
func (d *Dataset) CommonItems(a, b int) map[int]RatingPair {
	ratingsA, ratingsB := d.userRatings[a], d.userRatings[b]
	result := make(map[int]RatingPair)
	for item, valueA := range ratingsA {
		if valueB, exist := ratingsB[item]; exist {
			result[item] = RatingPair{A: valueA, B: valueB}
		}
	}
	return result
}

// UnionItems returns the items rated by either user. The missing side is 0.
func (d *Dataset) UnionItems(a, b int) map[int]RatingPair {
	ratingsA, ratingsB := d.userRatings[a], d.userRatings[b]
	result := make(map[int]RatingPair, len(ratingsA)+len(ratingsB))
	for item, value := range ratingsA {
		result[item] = RatingPair{A: value, B: ratingsB[item]}
	}
	for item, value := range ratingsB {
		if _, exist := ratingsA[item]; !exist {
			result[item] = RatingPair{B: value}
		}
	}
	return result
}

// UnratedItems returns the items a user has not rated in ascending order.
func (d *Dataset) UnratedItems(user int) []int {
	ratings := d.userRatings[user]
	return lo.Filter(d.items, func(item int, _ int) bool {
		_, rated := ratings[item]
		return !rated
	})
}
