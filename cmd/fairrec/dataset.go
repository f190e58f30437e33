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
	"fmt"
	"sort"
	"strconv"

	"github.com/fairrec/fairrec/dataset"
	"github.com/fairrec/fairrec/export"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func formatRating(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.8f", f)
}

var infoCommand = &cobra.Command{
	Use:   "info",
	Short: "Show the first rows and the size of the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := &export.Table{
			Header: []string{"User ID", "Item ID", "Rating"},
			Rows: lo.Map(eng.ds.First(eng.conf.Output.TableLimit), func(r dataset.Rating, _ int) []string {
				return []string{strconv.Itoa(r.UserId), strconv.Itoa(r.ItemId), formatRating(r.Value)}
			}),
		}
		if err := table.Render(cmd.OutOrStdout()); err != nil {
			return errors.Trace(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ratings: %d, users: %d, items: %d\n",
			eng.ds.Count(), len(eng.ds.Users()), len(eng.ds.Items()))
		return nil
	},
}

var ratingsCommand = &cobra.Command{
	Use:   "ratings <user>",
	Short: "Show the ratings of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := parseId(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		if !eng.ds.HasUser(user) {
			return errors.NotFoundf("user %d", user)
		}
		table := &export.Table{
			Header: []string{"Item", "Rating"},
			Rows: lo.Map(eng.ds.RatingsOf(user), func(r dataset.ItemRating, _ int) []string {
				return []string{strconv.Itoa(r.ItemId), formatRating(r.Value)}
			}),
		}
		return errors.Trace(table.Render(cmd.OutOrStdout()))
	},
}

var commonCommand = &cobra.Command{
	Use:   "common <user> <user>",
	Short: "Show the items rated by both users",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := parseIds(args)
		if err != nil {
			return errors.Trace(err)
		}
		common := eng.ds.CommonItems(users[0], users[1])
		items := lo.Keys(common)
		sort.Ints(items)
		table := &export.Table{
			Header: []string{"Item", fmt.Sprintf("Rating of User %d", users[0]), fmt.Sprintf("Rating of User %d", users[1])},
			Rows: lo.Map(items, func(item int, _ int) []string {
				return []string{strconv.Itoa(item), formatRating(common[item].A), formatRating(common[item].B)}
			}),
		}
		return errors.Trace(table.Render(cmd.OutOrStdout()))
	},
}
